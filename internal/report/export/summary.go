package export

import (
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/aussiebroadwan/userreport/internal/report/domain"
	"github.com/olekukonko/tablewriter"
)

// SummaryColumns are the report columns shown on the console.
var SummaryColumns = []string{
	"User ID",
	"Display Name",
	"Net Reputation",
	"Questions",
	"Answers",
	"Articles",
	"Comments",
	"Account Status",
}

func defaultTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	return table
}

// Summary renders the first top rows of r, restricted to SummaryColumns.
// top <= 0 renders every row.
func Summary(w io.Writer, r domain.Report, top int) {
	var (
		header []string
		pick   []int
	)
	for _, name := range SummaryColumns {
		if i := slices.Index(r.Header, name); i >= 0 {
			header = append(header, name)
			pick = append(pick, i)
		}
	}

	rows := r.Rows
	if top > 0 && len(rows) > top {
		rows = rows[:top]
	}

	data := make([][]string, 0, len(rows))
	for _, row := range rows {
		line := make([]string, 0, len(pick))
		for _, i := range pick {
			line = append(line, row[i])
		}
		data = append(data, line)
	}

	table := defaultTable(w)
	table.SetHeader(header)
	table.AppendBulk(data)
	table.SetFooter(footer(len(header), len(r.Rows), len(r.Skipped)))
	table.Render()
}

func footer(width, rows, skipped int) []string {
	out := make([]string, width)
	if width == 0 {
		return out
	}
	out[0] = strconv.Itoa(rows) + " users"
	if width > 1 && skipped > 0 {
		out[1] = strconv.Itoa(skipped) + " skipped"
	}
	return out
}

// Runs renders the stored report runs, newest first.
func Runs(w io.Writer, runs []domain.Run) {
	table := defaultTable(w)
	table.SetHeader([]string{"Run", "Created", "Snapshot", "Window", "Users", "Rows", "Skipped", "Output"})
	for _, run := range runs {
		table.Append([]string{
			run.ID,
			run.CreatedAt.Local().Format(time.DateTime),
			run.SnapshotID,
			formatWindow(run.WindowStart, run.WindowEnd),
			strconv.Itoa(run.Users),
			strconv.Itoa(run.Rows),
			strconv.Itoa(run.Skipped),
			run.OutputPath,
		})
	}
	table.Render()
}

// Snapshots renders stored snapshot summaries.
func Snapshots(w io.Writer, snaps []domain.SnapshotSummary) {
	table := defaultTable(w)
	table.SetHeader([]string{"Snapshot", "Created", "Source", "Users", "Questions", "Articles", "Tags", "Reputation Events"})
	for _, s := range snaps {
		table.Append([]string{
			s.ID,
			s.CreatedAt.Local().Format(time.DateTime),
			s.Source,
			strconv.Itoa(s.Users),
			strconv.Itoa(s.Questions),
			strconv.Itoa(s.Articles),
			strconv.Itoa(s.Tags),
			strconv.Itoa(s.ReputationEvents),
		})
	}
	table.Render()
}

func formatWindow(start, end int64) string {
	if start <= 0 && end >= domain.FarFuture {
		return "all time"
	}
	return formatDay(start) + " to " + formatDay(end)
}

func formatDay(ts int64) string {
	return time.Unix(ts, 0).Local().Format(time.DateOnly)
}
