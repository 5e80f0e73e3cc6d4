package checks

import (
	"fmt"

	"github.com/ppiankov/pagelint/internal/model"
)

// HeadingStructureChecker derives outline defects from the heading tree:
// missing H1, multiple H1s, and skipped levels between parent and child.
type HeadingStructureChecker struct{}

func (c *HeadingStructureChecker) Name() string { return "heading-structure" }

func (c *HeadingStructureChecker) Check(page PageContext) []model.Finding {
	if page.Analysis == nil {
		return nil
	}
	tree := page.Analysis.HeadingTree

	var findings []model.Finding

	h1s := 0
	var countH1 func(nodes []*model.HeadingNode)
	countH1 = func(nodes []*model.HeadingNode) {
		for _, n := range nodes {
			if n.Level == 1 {
				h1s++
			}
			countH1(n.Children)
		}
	}
	countH1(tree)

	switch {
	case h1s == 0 && len(tree) > 0:
		findings = append(findings, model.Finding{
			RuleID:      "heading-missing-h1",
			Severity:    model.SeverityHigh,
			Title:       "No H1 heading",
			Description: "The page has headings but no H1, leaving its primary topic undeclared.",
			ExampleFix:  "<h1>Primary page topic</h1>",
		})
	case h1s > 1:
		findings = append(findings, model.Finding{
			RuleID:      "heading-multiple-h1",
			Severity:    model.SeverityMedium,
			Title:       "Multiple H1 headings",
			Description: fmt.Sprintf("The page declares %d H1 headings; one per page keeps the topic unambiguous.", h1s),
		})
	}

	var checkSkips func(nodes []*model.HeadingNode)
	checkSkips = func(nodes []*model.HeadingNode) {
		for _, n := range nodes {
			for _, child := range n.Children {
				if child.Level > n.Level+1 {
					findings = append(findings, model.Finding{
						RuleID:   "heading-level-skip",
						Severity: model.SeverityLow,
						Title:    "Skipped heading level",
						Description: fmt.Sprintf("Heading %q (H%d) sits directly under %q (H%d), skipping %d level(s).",
							child.Text, child.Level, n.Text, n.Level, child.Level-n.Level-1),
						Element: child.Text,
					})
				}
			}
			checkSkips(n.Children)
		}
	}
	checkSkips(tree)

	return findings
}
