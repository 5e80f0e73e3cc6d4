package report

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ppiankov/pagelint/internal/model"
)

// severityOrder ranks severities for display, worst first.
var severityOrder = map[model.Severity]int{
	model.SeverityCritical: 0,
	model.SeverityHigh:     1,
	model.SeverityMedium:   2,
	model.SeverityLow:      3,
}

// Renderer writes audit reports to files and a summary to stdout.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full report as indented JSON.
func (r *Renderer) RenderJSON(rep *model.Report, path string) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(rep *model.Report, path string) error {
	var b strings.Builder

	b.WriteString("# Pagelint Audit\n\n")
	fmt.Fprintf(&b, "- **URL**: %s\n", rep.PageURL)
	fmt.Fprintf(&b, "- **Fetched**: %s\n", rep.FetchedAt.Format("2006-01-02 15:04:05 UTC"))
	if rep.Analysis != nil {
		fmt.Fprintf(&b, "- **Analyzer**: %s\n", rep.Analysis.Version)
		fmt.Fprintf(&b, "- **Main content words**: %d\n", rep.Analysis.MainContentWordCount)
		fmt.Fprintf(&b, "- **DOM nodes**: %d (depth %d)\n",
			rep.Analysis.DOMMetrics.TotalNodes, rep.Analysis.DOMMetrics.NestingDepth)
		if rep.Analysis.SkippedFragments > 0 {
			fmt.Fprintf(&b, "- **Skipped fragments**: %d\n", rep.Analysis.SkippedFragments)
		}
	}
	b.WriteString("\n## Findings\n\n")

	if len(rep.Findings) == 0 {
		b.WriteString("No defects found.\n")
	}

	sorted := make([]model.Finding, len(rep.Findings))
	copy(sorted, rep.Findings)
	sort.SliceStable(sorted, func(i, j int) bool {
		return severityOrder[sorted[i].Severity] < severityOrder[sorted[j].Severity]
	})

	for _, f := range sorted {
		fmt.Fprintf(&b, "### [%s] %s\n\n", strings.ToUpper(string(f.Severity)), f.Title)
		fmt.Fprintf(&b, "Rule: `%s`\n\n", f.RuleID)
		b.WriteString(f.Description)
		b.WriteString("\n")
		if f.Element != "" {
			fmt.Fprintf(&b, "\nAffected element:\n\n```html\n%s\n```\n", f.Element)
		}
		if f.ExampleFix != "" {
			fmt.Fprintf(&b, "\nExample fix:\n\n```html\n%s\n```\n", f.ExampleFix)
		}
		b.WriteString("\n")
	}

	if rep.LLM != nil && rep.LLM.SummaryMD != "" {
		b.WriteString("## Summary (generated)\n\n")
		b.WriteString(rep.LLM.SummaryMD)
		b.WriteString("\n\n")
	}

	if r.includeFooter {
		b.WriteString("---\n*Generated by pagelint. Findings describe crawl/index signals, not rankings.*\n")
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// RenderSummary prints a per-severity tally to stdout.
func (r *Renderer) RenderSummary(rep *model.Report) {
	counts := rep.CountBySeverity()

	fmt.Println()
	fmt.Printf("Audit: %s\n", rep.PageURL)
	fmt.Printf("Findings: %d", len(rep.Findings))
	if len(rep.Findings) > 0 {
		parts := make([]string, 0, 4)
		for _, sev := range []model.Severity{
			model.SeverityCritical, model.SeverityHigh, model.SeverityMedium, model.SeverityLow,
		} {
			if counts[sev] > 0 {
				parts = append(parts, fmt.Sprintf("%d %s", counts[sev], sev))
			}
		}
		fmt.Printf(" (%s)", strings.Join(parts, ", "))
	}
	fmt.Println()
}
