// Package report renders analysis reports as markdown, HTML and terminal text.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ternarybob/finhealth/internal/services/analysis"
	"github.com/ternarybob/finhealth/internal/services/scoring"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

const notAvailable = "N/A"

// Render formats an analysis report as markdown.
func Render(r *analysis.Report) string {
	var content strings.Builder

	if r == nil {
		return ""
	}

	if r.Failed() {
		title := r.Symbol
		if title == "" {
			title = "Analysis"
		}
		fmt.Fprintf(&content, "# %s\n\n", title)
		fmt.Fprintf(&content, "**%s**\n\n", r.Error)
		content.WriteString("## Troubleshooting Tips\n\n")
		for _, hint := range r.Hints {
			fmt.Fprintf(&content, "- %s\n", hint)
		}
		return content.String()
	}

	writeHeader(&content, r)
	if r.Scores != nil {
		writeScores(&content, r.Scores)
	}
	writeMetrics(&content, r)
	writeOverview(&content, r)
	if r.HasNotes() {
		writeNotes(&content, r.Scores)
	}

	return content.String()
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func writeHeader(content *strings.Builder, r *analysis.Report) {
	name := r.Symbol
	if r.Info != nil && r.Info.LongName != "" {
		name = r.Info.LongName
	}
	fmt.Fprintf(content, "# %s (%s)\n\n", name, r.Symbol)

	if r.Info == nil {
		return
	}
	fmt.Fprintf(content, "%s | %s\n\n", orNA(r.Info.Sector), orNA(r.Info.Industry))
	fmt.Fprintf(content, "**Market Cap:** %s\n\n", FormatMoney(r.Info.MarketCap, r.Info.Currency))
}

func writeScores(content *strings.Builder, s *scoring.Scores) {
	content.WriteString("## Risk Assessment\n\n")

	if !s.Available() {
		content.WriteString("No score could be calculated from the available data.\n\n")
		return
	}

	content.WriteString("| Model | Result | Status |\n")
	content.WriteString("|-------|--------|--------|\n")

	z := s.ZScore
	if z.Score != nil {
		fmt.Fprintf(content, "| Altman Z-Score | %.2f | %s |\n", *z.Score, z.Status.Label)
	} else {
		content.WriteString("| Altman Z-Score | N/A | Not available |\n")
	}

	o := s.OScore
	if o.Probability != nil {
		fmt.Fprintf(content, "| Ohlson O-Score | %s default probability (O = %.2f) | %s |\n",
			FormatPercent(*o.Probability), *o.Score, o.Status.Label)
	} else {
		content.WriteString("| Ohlson O-Score | N/A | Not available |\n")
	}

	m := s.Merton
	if m.Score != nil {
		fmt.Fprintf(content, "| Merton Model | %s default probability (DD = %.2f) | %s |\n",
			FormatPercent(*m.Score), *m.DistanceToDefault, m.Status.Label)
	} else {
		content.WriteString("| Merton Model | N/A | Not available |\n")
	}
	content.WriteString("\n")

	for _, line := range []struct {
		title  string
		status *scoring.Status
	}{
		{"Z-Score", z.Status},
		{"Default Risk", o.Status},
		{"Merton", m.Status},
	} {
		if line.status != nil {
			fmt.Fprintf(content, "- **%s:** %s\n", line.title, line.status.Description)
		}
	}
	content.WriteString("\n")
}

func writeMetrics(content *strings.Builder, r *analysis.Report) {
	if r.Info == nil {
		return
	}
	content.WriteString("## Key Financial Metrics\n\n")
	fmt.Fprintf(content, "- Revenue Growth: %s\n", FormatPercent(r.Info.RevenueGrowth))
	fmt.Fprintf(content, "- Profit Margin: %s\n", FormatPercent(r.Info.ProfitMargins))
	fmt.Fprintf(content, "- Debt to Equity: %.2f\n\n", r.Info.DebtToEquity)
}

func writeOverview(content *strings.Builder, r *analysis.Report) {
	if r.Info == nil {
		return
	}
	summary := r.Info.Summary
	if summary == "" {
		summary = "No description available."
	}

	content.WriteString("## Company Overview\n\n")
	content.WriteString(summary + "\n\n")
	fmt.Fprintf(content, "- Exchange: %s\n", orNA(r.Info.Exchange))
	fmt.Fprintf(content, "- Industry: %s\n", orNA(r.Info.Industry))
	fmt.Fprintf(content, "- Sector: %s\n", orNA(r.Info.Sector))
	fmt.Fprintf(content, "- Website: %s\n\n", orNA(r.Info.Website))
}

func writeNotes(content *strings.Builder, s *scoring.Scores) {
	content.WriteString("## Data Quality Notes\n\n")
	for _, section := range []struct {
		title string
		notes scoring.Notes
	}{
		{"Z-Score Data Notes", s.ZScore.Notes},
		{"O-Score Data Notes", s.OScore.Notes},
		{"Merton Model Data Notes", s.Merton.Notes},
	} {
		if !section.notes.HasNotes() {
			continue
		}
		fmt.Fprintf(content, "### %s\n\n", section.title)
		for _, p := range section.notes.Problematic {
			fmt.Fprintf(content, "- ⚠️ %s\n", p)
		}
		for _, sub := range section.notes.Substituted {
			fmt.Fprintf(content, "- ℹ️ %s\n", sub)
		}
		content.WriteString("\n")
	}
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough, extension.Linkify),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// ToHTML converts markdown to an HTML fragment.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders markdown for a terminal of the given width.
func Terminal(source string, width int) (string, error) {
	if width <= 0 {
		width = 100
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create terminal renderer: %w", err)
	}
	out, err := renderer.Render(source)
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return out, nil
}
