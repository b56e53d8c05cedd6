// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package outputs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Error kinds. Every failure returned by this package is marked with
// ErrOutputParsing and with exactly one of the specific kinds below; test
// for them with errors.Is from github.com/cockroachdb/errors.
var (
	ErrOutputParsing   = errors.New("output parsing error")
	ErrRunFailed       = errors.New("6S run reported an error")
	ErrExtraction      = errors.New("extraction rule failed")
	ErrUnknownVariable = errors.New("unknown output variable")
	ErrInvalidRules    = errors.New("invalid rule table")
)

// Reason says which step of applying a rule failed.
type Reason string

const (
	ReasonLineOffset Reason = "line offset out of range"
	ReasonTokenIndex Reason = "token index out of range"
	ReasonCoercion   Reason = "token coercion failed"
)

// ExtractionError describes a rule that matched but could not produce a value.
// Line numbers are zero-based indices into the normalized report lines.
type ExtractionError struct {
	Rule Rule

	// Line is the line that contained the search term.
	Line int

	// TargetLine is Line plus the rule's offset.
	TargetLine int

	// Token is the token handed to the coercion; empty unless Reason is
	// ReasonCoercion.
	Token string

	Reason Reason
	Err    error
}

func (e *ExtractionError) Error() string {
	msg := fmt.Sprintf("extracting %s (search term %q, matched line %d, extracting line %d): %s",
		e.Rule.Key, e.Rule.SearchTerm, e.Line+1, e.TargetLine+1, e.Reason)
	if e.Token != "" {
		msg += fmt.Sprintf(" for token %q", e.Token)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExtractionError) Unwrap() error { return e.Err }

func mark(err, kind error) error {
	return errors.Mark(errors.Mark(err, kind), ErrOutputParsing)
}

// runFailed builds the error returned when the run wrote to stderr. The
// stderr text is attached as a detail since it is the only diagnostic.
func runFailed(stderr string) error {
	err := errors.New("6S returned an error - check for invalid parameter inputs")
	err = errors.WithDetail(err, stderr)
	err = errors.WithHint(err, "inspect the stderr output of the run for the offending parameter")
	return mark(err, ErrRunFailed)
}

func extractionFailed(e *ExtractionError) error {
	return mark(e, ErrExtraction)
}

func invalidRules(err error) error {
	return mark(err, ErrInvalidRules)
}

func unknownVariable(name string) error {
	err := errors.Newf("the specified output variable %q does not exist", name)
	return mark(err, ErrUnknownVariable)
}
