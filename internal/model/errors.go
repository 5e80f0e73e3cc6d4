package model

import "fmt"

// ParseError reports that an input could not be interpreted as markup at
// all. Fragment-level problems (one bad JSON-LD block, one malformed
// robots line) are never ParseErrors; they are skipped and counted.
type ParseError struct {
	Input string // "html", "json-ld", ...
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
