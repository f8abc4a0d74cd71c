package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

const baseReportName = "user_metrics"

// ReportName names the report after its date bounds. Both bounds must be
// given for them to appear in the name.
func ReportName(startDate, endDate string) string {
	if startDate != "" && endDate != "" {
		return fmt.Sprintf("%s_%s_to_%s", baseReportName, startDate, endDate)
	}
	return baseReportName
}

// CSVFileName prefixes name with the local date of now.
func CSVFileName(now time.Time, name string) string {
	return now.Format("2006-01-02") + "_" + name + ".csv"
}

// WriteCSV writes the report to dir and returns the file path.
func WriteCSV(dir, name string, now time.Time, r domain.Report) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, CSVFileName(now, name))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := EncodeCSV(f, r); err != nil {
		_ = f.Close()
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}

// EncodeCSV writes the header and every row of r.
func EncodeCSV(w io.Writer, r domain.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(r.Header); err != nil {
		return err
	}

	record := make([]string, len(r.Header))
	for _, row := range r.Rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, sanitizeCSVField(cell))
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// sanitizeCSVField prevents formula injection when the file is opened in a
// spreadsheet. Numbers are left alone so negative values stay numeric.
func sanitizeCSVField(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@':
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			return s
		}
		return "'" + s
	}
	return s
}
