package service

import (
	"log/slog"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

// ReportService runs the whole pipeline: ingest, join, aggregate, project.
type ReportService struct {
	Logger *slog.Logger
	Now    func() time.Time
}

func NewReportService(logger *slog.Logger) *ReportService {
	return &ReportService{Logger: logger, Now: time.Now}
}

// Build produces the unified user index and the report for window w. Every
// call starts from a fresh index, so identical input gives identical output.
func (s *ReportService) Build(c domain.Collections, w domain.Window) (*UserIndex, domain.Report) {
	index := Ingest(c.Users, s.Now(), s.Logger)
	ingested := index.Len()

	joiner := &Joiner{Index: index, Logger: s.Logger}
	joiner.Join(c)

	Aggregate(index, w)

	report := NewProjector(s.Logger).Project(index.Users())

	s.Logger.Info("report built",
		"users", ingested,
		"placeholders", index.Len()-ingested,
		"rows", len(report.Rows),
		"skipped", len(report.Skipped),
		"window_start", w.Start,
		"window_end", w.End,
	)

	return index, report
}
