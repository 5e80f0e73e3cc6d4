package report

import (
	"testing"

	"github.com/ppiankov/pagelint/internal/model"
)

func TestAggregate_PreservesOrderAndDuplicates(t *testing.T) {
	a := []model.Finding{
		{RuleID: "r1", Severity: model.SeverityLow},
		{RuleID: "r2", Severity: model.SeverityHigh},
	}
	b := []model.Finding{
		{RuleID: "r1", Severity: model.SeverityLow}, // duplicate rule id is allowed
	}
	var empty []model.Finding

	merged := Aggregate(a, empty, b)

	want := []string{"r1", "r2", "r1"}
	if len(merged) != len(want) {
		t.Fatalf("Expected %d findings, got %d", len(want), len(merged))
	}
	for i, id := range want {
		if merged[i].RuleID != id {
			t.Errorf("Position %d: got %s, want %s", i, merged[i].RuleID, id)
		}
	}
}

func TestAggregate_Empty(t *testing.T) {
	merged := Aggregate()
	if len(merged) != 0 {
		t.Errorf("Expected empty result, got %+v", merged)
	}
	if merged == nil {
		t.Error("Expected non-nil slice for JSON rendering")
	}
}
