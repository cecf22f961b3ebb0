// Package report renders check outcomes as a markdown summary and an HTML
// page for humans; the JSON diagnostic records stay the machine-readable
// artifact.
package report

import (
	"fmt"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"investigator/app"
)

// VariableOutcome groups the per-strategy results for one checked variable.
type VariableOutcome struct {
	Variable string
	Value    float64
	Results  []app.Result
}

// BuildMarkdown renders a run summary: one table row per strategy run,
// followed by the full diagnostic record of every run.
func BuildMarkdown(runID string, outcomes []VariableOutcome) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Investigation %s\n\n", runID)
	b.WriteString("| Variable | Method | Result | Lower | Value | Upper |\n")
	b.WriteString("|---|---|---|---|---|---|\n")

	for _, outcome := range outcomes {
		for _, r := range outcome.Results {
			lower, upper := "-", "-"
			if r.Err == nil {
				if v, ok := r.Record.Get("lower_boundary"); ok {
					lower = fmt.Sprintf("%.3f", v)
				}
				if v, ok := r.Record.Get("upper_boundary"); ok {
					upper = fmt.Sprintf("%.3f", v)
				}
			}
			result := r.Verdict.String()
			if r.Err != nil {
				result = "ERROR"
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %.3f | %s |\n",
				outcome.Variable, r.Strategy, result, lower, outcome.Value, upper)
		}
	}

	b.WriteString("\n## Diagnostic records\n")
	for _, outcome := range outcomes {
		for _, r := range outcome.Results {
			fmt.Fprintf(&b, "\n### %s / %s\n\n", outcome.Variable, r.Strategy)
			for _, f := range r.Record.Fields() {
				fmt.Fprintf(&b, "- %s: %v\n", f.Name, f.Value)
			}
		}
	}

	return b.String()
}

// RenderHTML converts the markdown summary into a standalone HTML page
func RenderHTML(md string) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.Tables)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	return markdown.ToHTML([]byte(md), p, renderer)
}
