// Package report merges findings from all checkers into one ordered list
// and renders audit reports.
package report

import "github.com/ppiankov/pagelint/internal/model"

// Aggregate concatenates finding lists in invocation order. There is no
// dedup and no precedence logic: duplicate rule IDs across sources are
// allowed and are the caller's concern.
func Aggregate(lists ...[]model.Finding) []model.Finding {
	total := 0
	for _, l := range lists {
		total += len(l)
	}

	merged := make([]model.Finding, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}
