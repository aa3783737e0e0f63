package export

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/attrigate/attrigate/internal/analyzer"
	"github.com/attrigate/attrigate/internal/threshold"
)

// Status markers rendered in the job summary.
const (
	markerPassed  = "✅"
	markerWarning = "⚠️"
)

// renderSummary builds the markdown appended to the CI job summary:
// a heading, a metric/value table, and the pass/warning status line.
func renderSummary(res *analyzer.Result, out threshold.Outcome) string {
	var sb strings.Builder

	sb.WriteString("## AI Commit Attribution\n\n")
	sb.WriteString(metricsTable(res))
	sb.WriteString("\n\n")
	sb.WriteString(statusLine(out))
	sb.WriteString("\n")

	return sb.String()
}

func metricsTable(res *analyzer.Result) string {
	tw := table.NewWriter()
	tw.AppendHeader(table.Row{"Metric", "Value"})
	tw.AppendRows([]table.Row{
		{"Total commits", res.TotalCommits},
		{"AI-likely commits", res.AILikelyCommits},
		{"AI percentage", fmt.Sprintf("%.1f%%", res.AIPercentage)},
		{"Average score", fmt.Sprintf("%.2f", res.AverageScore)},
	})

	return tw.RenderMarkdown()
}

func statusLine(out threshold.Outcome) string {
	marker := markerPassed
	if out.Status != threshold.Passed {
		marker = markerWarning
	}

	name := out.Status.String()
	name = strings.ToUpper(name[:1]) + name[1:]

	return fmt.Sprintf("%s **%s**: %s", marker, name, out.Message)
}
