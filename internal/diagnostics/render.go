package diagnostics

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/standardbeagle/typofix/internal/suggest"
)

// Renderer formats diagnostic reports for display
type Renderer struct {
	options RenderOptions
}

// RenderOptions controls report formatting
type RenderOptions struct {
	Format          string // "text", "json", "compact"
	ShowSuggestions bool   // Show all ranked alternatives, not just the top fix
	Indent          string // Indentation string for suggestion lines
}

// NewRenderer creates a new report renderer
func NewRenderer(options RenderOptions) *Renderer {
	if options.Indent == "" {
		options.Indent = "  "
	}
	return &Renderer{options: options}
}

// Render formats a report for display
func (r *Renderer) Render(report *Report) string {
	if report == nil {
		return ""
	}

	switch r.options.Format {
	case "json":
		return r.renderJSON(report)
	case "compact":
		return r.renderCompact(report)
	default:
		return r.renderText(report)
	}
}

// renderText formats the report as human-readable lines, one diagnostic per
// block. Suggestion lines come straight from the ranked message so the order
// the ranker produced is preserved.
func (r *Renderer) renderText(report *Report) string {
	if len(report.Diagnostics) == 0 {
		return "No problems found\n"
	}

	var sb strings.Builder
	for _, d := range report.Diagnostics {
		sb.WriteString(fmt.Sprintf("%s:%d:%d: %s", d.File, d.Line, d.Column, d.Headline()))

		if r.options.ShowSuggestions && len(d.Suggestions) > 0 {
			sb.WriteString("\n")
			sb.WriteString(r.options.Indent)
			sb.WriteString("did you mean:\n")
			msg := suggest.FormatMessage(suggest.ToOutcome(d.Target, d.Suggestions, nil))
			for _, line := range strings.Split(msg, "\n") {
				sb.WriteString(r.options.Indent)
				sb.WriteString(r.options.Indent)
				sb.WriteString(line)
				sb.WriteString("\n")
			}
		} else if d.Fix != "" {
			sb.WriteString(fmt.Sprintf(" (did you mean %q?)\n", d.Fix))
		} else {
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	sb.WriteString(plural(len(report.Diagnostics), "problem"))
	sb.WriteString(" found\n")
	return sb.String()
}

// renderCompact formats one diagnostic per line for grep-friendly output
func (r *Renderer) renderCompact(report *Report) string {
	var sb strings.Builder
	for _, d := range report.Diagnostics {
		sb.WriteString(fmt.Sprintf("%s:%d:%d %s %s", d.File, d.Line, d.Column, d.Kind, d.Target))
		if d.Fix != "" {
			sb.WriteString(" -> ")
			sb.WriteString(d.Fix)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// renderJSON formats the full report as indented JSON
func (r *Renderer) renderJSON(report *Report) string {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data) + "\n"
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
