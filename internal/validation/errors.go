package validation

import (
	"fmt"
	"sort"
	"strings"
)

// FieldError is implemented by every error that can be attributed to a single input field.
type FieldError interface {
	error
	FieldName() string
}

type FormatError struct {
	Field    string
	Expected string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s must be in the format %s", e.Field, e.Expected)
}

func (e *FormatError) FieldName() string { return e.Field }

type MismatchError struct {
	Field string
	Other string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s does not match %s", e.Field, e.Other)
}

func (e *MismatchError) FieldName() string { return e.Field }

type MissingFieldError struct {
	Field  string
	Reason string
}

func (e *MissingFieldError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s is required %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *MissingFieldError) FieldName() string { return e.Field }

type LengthError struct {
	Field string
	Want  int
	Got   int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("%s must contain exactly %d digits, got %d", e.Field, e.Want, e.Got)
}

func (e *LengthError) FieldName() string { return e.Field }

// RangeError reports a numeric value outside its accepted bounds.
type RangeError struct {
	Field string
	Min   float64
	Max   float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s must be between %g and %g", e.Field, e.Min, e.Max)
}

func (e *RangeError) FieldName() string { return e.Field }

// Errors collects every violation found in one input. The zero value is ready to use.
type Errors []FieldError

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}
	if fe, ok := err.(FieldError); ok {
		*e = append(*e, fe)
		return
	}
	*e = append(*e, &FormatError{Field: "_", Expected: err.Error()})
}

// Err returns nil when nothing was collected.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

func (e Errors) Error() string {
	parts := make([]string, 0, len(e))
	for _, fe := range e {
		parts = append(parts, fe.Error())
	}
	return strings.Join(parts, "; ")
}

func (e Errors) Has(field string) bool {
	for _, fe := range e {
		if fe.FieldName() == field {
			return true
		}
	}
	return false
}

// ByField groups messages per field for rendering back to the client.
func (e Errors) ByField() map[string][]string {
	out := make(map[string][]string, len(e))
	for _, fe := range e {
		out[fe.FieldName()] = append(out[fe.FieldName()], fe.Error())
	}
	for k := range out {
		sort.Strings(out[k])
	}
	return out
}
