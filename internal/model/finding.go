package model

// Severity grades a finding. Exactly four levels.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Finding is one reported defect. RuleID is unique per check site; the
// aggregator does not dedupe, so the same rule may appear more than once
// when several elements trigger it.
type Finding struct {
	RuleID      string   `json:"rule_id"`
	Severity    Severity `json:"severity"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Element     string   `json:"element,omitempty"`     // affected markup, verbatim
	ExampleFix  string   `json:"example_fix,omitempty"` // suggested replacement
}
