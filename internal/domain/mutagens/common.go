// Package mutagens provides the catalog of field mutators applied to query documents.
package mutagens

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Result is the outcome of applying a mutator to one field.
// A skipped result carries no text and must not produce a mutant.
type Result struct {
	text    string
	applied bool
}

// Applied returns a Result replacing the field text with text.
func Applied(text string) Result {
	return Result{text: text, applied: true}
}

// Skipped returns a Result signalling the mutator does not apply to the field.
func Skipped() Result {
	return Result{}
}

// Text returns the replacement text and whether the mutator applied.
func (r Result) Text() (string, bool) {
	return r.text, r.applied
}

// Func mutates the text of a field identified by its tag.
// Implementations must be pure.
type Func func(tag, text string) Result

// Mutator is a named entry of the catalog.
type Mutator struct {
	Name        string
	Description string
	Apply       Func
}

var catalog = []Mutator{
	{Name: "zero-numeric", Description: "replace a numeric value with 0", Apply: zeroNumeric},
	{Name: "negate-numeric", Description: "negate a numeric value", Apply: negateNumeric},
	{Name: "scale-numeric", Description: "multiply a numeric value by 1000", Apply: scaleNumeric},
	{Name: "swap-unit", Description: "swap a unit for a structurally similar one", Apply: swapUnit},
	{Name: "inject-nan", Description: "inject the non-numeric token NaN", Apply: injectNaN},
	{Name: "inject-extreme", Description: "inject a value near the largest float64", Apply: injectExtreme},
	{Name: "inject-malformed-numeric", Description: "inject a numeric literal with two decimal points", Apply: injectMalformedNumeric},
	{Name: "inject-invalid-date", Description: "inject a calendar-invalid date", Apply: injectInvalidDate},
	{Name: "inject-ambiguous-date", Description: "inject a date with out-of-range components", Apply: injectAmbiguousDate},
	{Name: "inject-bad-timezone", Description: "inject a timestamp with an out-of-range UTC offset", Apply: injectBadTimezone},
	{Name: "inject-invalid-boolean", Description: "inject a boolean-looking token wrong for the field", Apply: injectInvalidBoolean},
	{Name: "inject-long-text", Description: "inject a very long repeated-character string", Apply: injectLongText},
	{Name: "inject-special-chars", Description: "inject markup-significant and control characters", Apply: injectSpecialChars},
	{Name: "inject-unicode", Description: "inject multi-byte emoji characters", Apply: injectUnicode},
	{Name: "inject-invalid-unit", Description: "inject a plausible but undefined unit", Apply: injectInvalidUnit},
	{Name: "inject-empty-unit", Description: "replace the value with an empty string", Apply: injectEmpty},
}

// Catalog returns every mutator in a stable order.
func Catalog() []Mutator {
	out := make([]Mutator, len(catalog))
	copy(out, catalog)

	return out
}

// Lookup finds a mutator by name.
func Lookup(name string) (Mutator, bool) {
	for _, mut := range catalog {
		if mut.Name == name {
			return mut, true
		}
	}

	return Mutator{}, false
}

// Select returns the named mutators in catalog order, or the whole catalog
// when names is empty.
func Select(names []string) ([]Mutator, error) {
	if len(names) == 0 {
		return Catalog(), nil
	}

	wanted := make(map[string]struct{}, len(names))

	for _, name := range names {
		if _, ok := Lookup(name); !ok {
			return nil, fmt.Errorf("unknown mutator %q", name)
		}

		wanted[name] = struct{}{}
	}

	selected := make([]Mutator, 0, len(wanted))

	for _, mut := range catalog {
		if _, ok := wanted[mut.Name]; ok {
			selected = append(selected, mut)
		}
	}

	return selected, nil
}

// parseNumber accepts anything ParseFloat reads. Out-of-range literals such
// as 1e400 parse to ±Inf and stay mutable.
func parseNumber(text string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}

	return v, true
}

// Magnitudes in [1e-4, 1e16) are written positionally so a mutant changes
// the value and never its notation.
const (
	minPositional = 1e-4
	maxPositional = 1e16
)

func formatNumber(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	if abs := math.Abs(v); abs == 0 || (abs >= minPositional && abs < maxPositional) {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}

	return strconv.FormatFloat(v, 'g', -1, 64)
}
