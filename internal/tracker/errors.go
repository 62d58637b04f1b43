// Package tracker implements the deletion, impact-analysis and template
// operations against a Huly workspace.
//
// Every operation takes the client explicitly (no shared state between
// calls), issues its remote calls strictly sequentially, and never
// retries or logs: transient failures propagate to the caller, and
// retry policy lives in the client transport.
package tracker

import (
	"fmt"
	"strings"
)

// NotFoundError reports that an identifier did not resolve to a
// document. Force-delete never bypasses this condition.
type NotFoundError struct {
	Kind       string // "project", "issue", "component", ...
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Identifier)
}

// ValidationError reports a missing or invalid required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// BlockedError reports that impact analysis found conditions that block
// a deletion. Retrying the same call with force set bypasses it.
type BlockedError struct {
	Identifier string
	Blockers   []string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("deletion of %q blocked: %s", e.Identifier, strings.Join(e.Blockers, "; "))
}

// InvalidFieldError reports an update target outside the allow-list.
type InvalidFieldError struct {
	Field   string
	Allowed []string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("field %q cannot be updated (allowed: %s)", e.Field, strings.Join(e.Allowed, ", "))
}

// InvalidIndexError reports an out-of-range positional index.
type InvalidIndexError struct {
	Index  int
	Length int
}

func (e *InvalidIndexError) Error() string {
	return fmt.Sprintf("index %d out of range (have %d)", e.Index, e.Length)
}
