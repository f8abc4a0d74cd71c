package service

import (
	"cmp"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
)

// Column is one field of the flat report. Value reports false when the
// attribute is absent on the user.
type Column struct {
	Name  string
	Value func(u *domain.UserAggregate) (string, bool)
}

func itoa(v int) (string, bool) { return strconv.Itoa(v), true }

func attrString(a domain.Attr[string]) (string, bool) {
	return a.Format(func(s string) string { return s })
}

func attrInt(a domain.Attr[int]) (string, bool) { return a.Format(strconv.Itoa) }

// formatFlag renders booleans the way existing report consumers expect them.
func formatFlag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ReportColumns is the fixed, ordered field set of the user report.
var ReportColumns = []Column{
	{"User ID", func(u *domain.UserAggregate) (string, bool) { return u.Key.String(), true }},
	{"Display Name", func(u *domain.UserAggregate) (string, bool) { return u.DisplayName, true }},
	{"Net Reputation", func(u *domain.UserAggregate) (string, bool) { return itoa(u.NetReputation) }},
	{"Account Longevity (Days)", func(u *domain.UserAggregate) (string, bool) { return attrInt(u.AccountLongevityDays) }},
	{"Account Inactivity (Days)", func(u *domain.UserAggregate) (string, bool) { return attrInt(u.AccountInactivityDays) }},

	{"Questions", func(u *domain.UserAggregate) (string, bool) { return itoa(u.QuestionCount) }},
	{"Questions With No Answers", func(u *domain.UserAggregate) (string, bool) { return itoa(u.QuestionsWithNoAnswers) }},

	{"Answers", func(u *domain.UserAggregate) (string, bool) { return itoa(u.AnswerCount) }},
	{"Answers Accepted", func(u *domain.UserAggregate) (string, bool) { return itoa(u.AnswersAccepted) }},
	{"Median Answer Time (Hours)", func(u *domain.UserAggregate) (string, bool) {
		if u.AnswerResponseTimeMedian == nil {
			return "", true
		}
		return strconv.FormatFloat(*u.AnswerResponseTimeMedian, 'f', -1, 64), true
	}},

	{"Articles", func(u *domain.UserAggregate) (string, bool) { return itoa(u.ArticleCount) }},
	{"Comments", func(u *domain.UserAggregate) (string, bool) { return itoa(u.CommentCount) }},

	{"Total Upvotes", func(u *domain.UserAggregate) (string, bool) { return itoa(u.TotalUpvotes) }},
	{"Total Downvotes", func(u *domain.UserAggregate) (string, bool) { return itoa(u.TotalDownvotes) }},

	{"SME Tags", func(u *domain.UserAggregate) (string, bool) { return strings.Join(u.SMETags, ", "), true }},

	{"Account Status", func(u *domain.UserAggregate) (string, bool) { return string(u.AccountStatus), true }},
	{"Moderator", func(u *domain.UserAggregate) (string, bool) { return u.Moderator.Format(formatFlag) }},

	{"Email", func(u *domain.UserAggregate) (string, bool) { return attrString(u.Email) }},
	{"Title", func(u *domain.UserAggregate) (string, bool) { return attrString(u.Title) }},
	{"Department", func(u *domain.UserAggregate) (string, bool) { return attrString(u.Department) }},
	{"External ID", func(u *domain.UserAggregate) (string, bool) { return attrString(u.ExternalID) }},
	{"Account ID", func(u *domain.UserAggregate) (string, bool) {
		return u.AccountID.Format(func(v int64) string { return strconv.FormatInt(v, 10) })
	}},
}

// Projector turns aggregates into report rows.
type Projector struct {
	Columns []Column
	Logger  *slog.Logger
}

func NewProjector(logger *slog.Logger) *Projector {
	return &Projector{Columns: ReportColumns, Logger: logger}
}

// SortByNetReputation returns a copy of users ordered by net reputation,
// highest first. Ties keep their index order.
func SortByNetReputation(users []*domain.UserAggregate) []*domain.UserAggregate {
	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b *domain.UserAggregate) int {
		return cmp.Compare(b.NetReputation, a.NetReputation)
	})
	return sorted
}

// Project sorts users and renders one row per user. A user missing any
// projected attribute is skipped and reported; the rest still render.
func (p *Projector) Project(users []*domain.UserAggregate) domain.Report {
	report := domain.Report{
		Header: make([]string, len(p.Columns)),
		Rows:   make([][]string, 0, len(users)),
	}
	for i, c := range p.Columns {
		report.Header[i] = c.Name
	}

	for _, u := range SortByNetReputation(users) {
		row, missing := p.row(u)
		if missing != "" {
			p.Logger.Warn("user left out of report: missing field",
				"field", missing,
				"user_id", u.Key.String(),
				"link", u.Link,
			)
			report.Skipped = append(report.Skipped, domain.SkippedUser{Key: u.Key, Link: u.Link, Column: missing})
			continue
		}
		report.Rows = append(report.Rows, row)
	}

	return report
}

func (p *Projector) row(u *domain.UserAggregate) ([]string, string) {
	row := make([]string, len(p.Columns))
	for i, c := range p.Columns {
		v, ok := c.Value(u)
		if !ok {
			return nil, c.Name
		}
		row[i] = v
	}
	return row, ""
}
