package report

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"recap/internal/deps"
	"recap/internal/session"
	"recap/internal/timeline"
)

const (
	transcriptPreviewLen = 60
	sessionIDPreviewLen  = 8
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// RenderTimelineTable renders the analyzed timeline for terminal display.
func RenderTimelineTable(segments []timeline.TimelineSegment) string {
	rows := make([][]string, 0, len(segments))
	for _, segment := range segments {
		rows = append(rows, []string{
			fmt.Sprintf("%d", segment.ID),
			segment.FormattedTimeRange(),
			segment.ScreenDescription,
			strings.Join(segment.KeyTopics, ", "),
			truncate(segment.Summary, transcriptPreviewLen),
			fmt.Sprintf("%.2f", segment.ConfidenceScore),
		})
	}
	return renderTable(
		[]string{"#", "Time", "Screen", "Topics", "Summary", "Conf"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

// RenderSessionsTable renders stored sessions newest first.
func RenderSessionsTable(sessions []*session.Session) string {
	rows := make([][]string, 0, len(sessions))
	for _, sess := range sessions {
		rows = append(rows, []string{
			truncate(sess.ID, sessionIDPreviewLen),
			truncate(sess.Title, 40),
			string(sess.Status),
			fmt.Sprintf("%d", sess.SegmentCount),
			sess.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return renderTable(
		[]string{"ID", "Title", "Status", "Segments", "Created"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
	)
}

// RenderDepsTable renders external dependency availability.
func RenderDepsTable(statuses []deps.Status) string {
	rows := make([][]string, 0, len(statuses))
	for _, status := range statuses {
		state := "ok"
		if !status.Available {
			if status.Optional {
				state = "missing (optional)"
			} else {
				state = "missing"
			}
		}
		detail := status.Description
		if status.Detail != "" {
			detail = status.Detail
		}
		rows = append(rows, []string{status.Name, status.Command, state, detail})
	}
	return renderTable(
		[]string{"Dependency", "Command", "Status", "Detail"},
		rows,
		nil,
	)
}

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func truncate(value string, limit int) string {
	if limit <= 3 || len(value) <= limit {
		return value
	}
	return value[:limit-3] + "..."
}
