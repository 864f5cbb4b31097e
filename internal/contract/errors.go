package contract

import (
	"fmt"
	"strings"
)

// NotFoundError indicates a requested configuration file or record ID does
// not exist. It is never retried automatically.
type NotFoundError struct {
	Path string // resolved file path
	Key  string // record ID, empty for whole-document lookups
}

func (e *NotFoundError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("record %q not found in %s", e.Key, e.Path)
	}
	return fmt.Sprintf("configuration file not found: %s", e.Path)
}

// ParseError indicates a file's content is not well-formed YAML.
// The load is fatal; no partial result is returned.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates content failed schema checks. It lists every
// violation found, not just the first, so a caller can fix all issues in
// one pass.
type ValidationError struct {
	Path       string
	Violations []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s: %s", e.Path, strings.Join(e.Violations, "; "))
}
