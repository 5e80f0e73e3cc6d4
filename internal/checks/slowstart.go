package checks

import (
	"fmt"
	"strings"

	"github.com/ppiankov/pagelint/internal/model"
)

// SlowStartWindowBytes is the portion of the response a crawler receives in
// the first network round trip (TCP slow start). Critical head elements
// should begin inside it.
const SlowStartWindowBytes = 14336

// SlowStartChecker verifies that the title, meta description and first H1
// all start within the first 14 KB of the document.
type SlowStartChecker struct{}

func (c *SlowStartChecker) Name() string { return "slow-start" }

func (c *SlowStartChecker) Check(page PageContext) []model.Finding {
	if len(page.HTML) <= SlowStartWindowBytes {
		return nil
	}

	var findings []model.Finding
	lower := strings.ToLower(page.HTML)

	for _, probe := range []struct {
		marker string
		what   string
	}{
		{"<title", "title tag"},
		{`name="description"`, "meta description"},
		{"<h1", "first H1"},
	} {
		idx := strings.Index(lower, probe.marker)
		if idx < 0 || idx < SlowStartWindowBytes {
			continue
		}
		findings = append(findings, model.Finding{
			RuleID:   "slow-start-window",
			Severity: model.SeverityCritical,
			Title:    "Critical content outside the first 14 KB",
			Description: fmt.Sprintf("The %s begins at byte %d, beyond the %d-byte TCP "+
				"slow-start window, so crawlers need an extra round trip before seeing it.",
				probe.what, idx, SlowStartWindowBytes),
			ExampleFix: "Move critical head elements before inlined styles and scripts.",
		})
	}

	return findings
}
