package checks

import (
	"fmt"

	"github.com/ppiankov/pagelint/internal/model"
)

// Fixed public thresholds; silently drifting them would change audit
// results for every consumer.
const (
	DOMNodesWarn     = 1000
	DOMNodesCritical = 1500
)

// DOMSizeChecker flags documents whose element count slows rendering and
// crawling.
type DOMSizeChecker struct{}

func (c *DOMSizeChecker) Name() string { return "dom-size" }

func (c *DOMSizeChecker) Check(page PageContext) []model.Finding {
	if page.Analysis == nil {
		return nil
	}
	total := page.Analysis.DOMMetrics.TotalNodes
	if total <= DOMNodesWarn {
		return nil
	}

	severity := model.SeverityMedium
	threshold := DOMNodesWarn
	if total > DOMNodesCritical {
		severity = model.SeverityCritical
		threshold = DOMNodesCritical
	}

	return []model.Finding{{
		RuleID:   "dom-size-excessive",
		Severity: severity,
		Title:    "Excessive DOM size",
		Description: fmt.Sprintf("The document contains %d element nodes (threshold %d). "+
			"Large DOM trees increase memory use, style recalculation cost and crawl "+
			"rendering time.", total, threshold),
		ExampleFix: "Flatten wrapper markup and paginate or lazy-render long lists.",
	}}
}
