// Package checks holds the built-in single-pass rule checkers. Each one
// consumes the structural analysis and/or raw markup and emits findings in
// the shared shape; the aggregator concatenates their output without dedup
// or precedence logic.
package checks

import (
	"github.com/ppiankov/pagelint/internal/model"
)

// PageContext is the input every checker receives.
type PageContext struct {
	Analysis *model.StructuralAnalysis
	HTML     string
	Headers  map[string]string
}

// Checker is the collaborator contract: any rule source, built-in or
// external, implements it and returns findings for one page.
type Checker interface {
	Name() string
	Check(page PageContext) []model.Finding
}

// BuiltIn returns the default checker set in invocation order.
func BuiltIn() []Checker {
	return []Checker{
		&DOMSizeChecker{},
		&SlowStartChecker{},
		&HeadingStructureChecker{},
	}
}
