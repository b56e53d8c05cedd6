// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package outputs extracts numerical results from the console report of a
// 6S radiative-transfer run.
//
// A report is scanned line by line against a static table of extraction
// rules (see Rules). Each rule names a search term, the line offset and
// token index of its value, the output variable it fills, and the coercion
// applied to the token. Parse returns an *Outputs whose values are read
// through Get or one of the named accessors such as AOT550.
package outputs

import (
	"io"
	"os"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Outputs holds one run's normalized report and the values extracted from it.
// It is read-only after Parse returns.
type Outputs struct {
	fulltext string
	stderr   string
	lines    []string
	values   map[string]Value
}

type parseOptions struct {
	logger *zap.SugaredLogger
	rules  []Rule
	custom bool
}

// Option configures Parse.
type Option func(*parseOptions)

// WithLogger sets the logger used to surface stderr and the extracted values.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(o *parseOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithRules replaces the built-in rule table. Parse rejects a table that
// fails ValidateRules with ErrInvalidRules.
func WithRules(table []Rule) Option {
	return func(o *parseOptions) {
		o.rules = table
		o.custom = true
	}
}

// Parse validates and scans the output of one 6S run. Any text on stderr,
// even whitespace, fails with ErrRunFailed before scanning starts. A rule
// that matches but cannot produce a value fails with ErrExtraction and an
// *ExtractionError naming the rule and lines involved.
func Parse(stdout, stderr string, opts ...Option) (*Outputs, error) {
	o := parseOptions{
		logger: zap.NewNop().Sugar(),
		rules:  rules,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.custom {
		if err := ValidateRules(o.rules); err != nil {
			return nil, invalidRules(err)
		}
	}

	if len(stderr) > 0 {
		o.logger.Errorw("6S returned an error", "stderr", stderr)
		return nil, runFailed(stderr)
	}

	fulltext := Normalize(stdout)
	lines := splitLines(fulltext)

	values, err := extract(lines, o.rules)
	if err != nil {
		return nil, err
	}

	o.logger.Debugw("extracted 6S outputs", "count", len(values), "values", valueStrings(values))

	return &Outputs{
		fulltext: fulltext,
		stderr:   stderr,
		lines:    lines,
		values:   values,
	}, nil
}

// Normalize removes every '*' from text. The report uses asterisks only as
// framing; all other characters, whitespace included, are kept.
func Normalize(text string) string {
	return strings.ReplaceAll(text, "*", "")
}

// splitLines splits text on \n, \r\n and \r. A final line terminator does
// not produce a trailing empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// extract applies every rule to every line, lines in ascending order and
// rules in table order. A later match overwrites an earlier one for the
// same key.
func extract(lines []string, table []Rule) (map[string]Value, error) {
	values := make(map[string]Value)
	for i, line := range lines {
		for _, r := range table {
			if !strings.Contains(line, r.SearchTerm) {
				continue
			}
			v, err := apply(lines, i, r)
			if err != nil {
				return nil, err
			}
			values[r.Key] = v
		}
	}
	return values, nil
}

func apply(lines []string, i int, r Rule) (Value, error) {
	target := i + r.LineOffset
	if target < 0 || target >= len(lines) {
		return Value{}, extractionFailed(&ExtractionError{
			Rule: r, Line: i, TargetLine: target, Reason: ReasonLineOffset,
			Err: errors.Newf("report has %d lines", len(lines)),
		})
	}

	tokens := strings.Fields(lines[target])
	if r.TokenIndex < 0 || r.TokenIndex >= len(tokens) {
		return Value{}, extractionFailed(&ExtractionError{
			Rule: r, Line: i, TargetLine: target, Reason: ReasonTokenIndex,
			Err: errors.Newf("extracting line has %d tokens", len(tokens)),
		})
	}

	token := tokens[r.TokenIndex]
	v, err := r.Coerce.Fn(token)
	if err != nil {
		return Value{}, extractionFailed(&ExtractionError{
			Rule: r, Line: i, TargetLine: target, Token: token, Reason: ReasonCoercion,
			Err: err,
		})
	}
	return v, nil
}

func valueStrings(values map[string]Value) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v.String()
	}
	return out
}

// Get returns the value extracted for the named output variable, or an
// ErrUnknownVariable error when the report did not produce it.
func (o *Outputs) Get(name string) (Value, error) {
	v, ok := o.values[name]
	if !ok {
		return Value{}, unknownVariable(name)
	}
	return v, nil
}

// Float returns the named variable as a float64.
func (o *Outputs) Float(name string) (float64, error) {
	v, err := o.Get(name)
	if err != nil {
		return 0, err
	}
	return v.Float(), nil
}

// Int returns the named variable as an int64, truncating float values.
func (o *Outputs) Int(name string) (int64, error) {
	v, err := o.Get(name)
	if err != nil {
		return 0, err
	}
	return v.Int(), nil
}

// Has reports whether the named variable was extracted.
func (o *Outputs) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

// Keys returns the extracted variable names in sorted order.
func (o *Outputs) Keys() []string {
	keys := make([]string, 0, len(o.values))
	for k := range o.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Values returns a copy of the extracted values.
func (o *Outputs) Values() map[string]Value {
	out := make(map[string]Value, len(o.values))
	for k, v := range o.values {
		out[k] = v
	}
	return out
}

// Fulltext returns the normalized report.
func (o *Outputs) Fulltext() string { return o.fulltext }

// Stderr returns the raw error text of the run.
func (o *Outputs) Stderr() string { return o.stderr }

// Lines returns a copy of the normalized report lines.
func (o *Outputs) Lines() []string {
	out := make([]string, len(o.lines))
	copy(out, o.lines)
	return out
}

// WriteOutputFile writes the normalized report to path, creating or
// truncating the file. The file is closed on every path; a close error is
// reported when the write itself succeeded.
func (o *Outputs) WriteOutputFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating output file %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "closing output file %s", path)
		}
	}()

	if _, err := io.WriteString(f, o.fulltext); err != nil {
		return errors.Wrapf(err, "writing output file %s", path)
	}
	return nil
}
