// Package validator collects field-level validation errors for incoming listing data.
// Validation never stops at the first failure - every problem is gathered so the caller can report them in one go.
package validator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/asaskevich/govalidator"
)

// Kind classifies a field error
type Kind string

const (
	// MissingField is reported when a mandatory value is empty or absent
	MissingField Kind = "MISSING_FIELD"
	// InvalidEnumValue is reported when a value is not part of its enumeration
	InvalidEnumValue Kind = "INVALID_ENUM_VALUE"
	// InvalidFormat is reported when a value does not have the expected shape (e.g. an URL)
	InvalidFormat Kind = "INVALID_FORMAT"
	// InvalidReference is reported when an ID points to an entity that does not exist
	InvalidReference Kind = "INVALID_REFERENCE"
)

// FieldError describes a single problem with one field of the input
type FieldError struct {
	Field  string   `json:"field"`
	Kind   Kind     `json:"error"`
	Values []string `json:"values,omitempty"`
}

// Error implements the error interface
func (e FieldError) Error() string {
	if len(e.Values) > 0 {
		return fmt.Sprintf("%s: %s (%s)", e.Field, e.Kind, strings.Join(e.Values, ", "))
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Kind)
}

// Errors is the list of all field errors found in one validation run
type Errors []FieldError

// Error implements the error interface
func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has checks if there is an error of the given kind for the given field
func (e Errors) Has(field string, kind Kind) bool {
	for _, fe := range e {
		if fe.Field == field && fe.Kind == kind {
			return true
		}
	}
	return false
}

// Validator accumulates field errors. Only the first error per field is kept.
// A Validator without errors is considered valid.
type Validator struct {
	errs   Errors
	failed map[string]bool
}

// New creates an empty Validator
func New() *Validator {
	return &Validator{failed: make(map[string]bool)}
}

// Valid returns true if no error has been recorded
func (v *Validator) Valid() bool {
	return len(v.errs) == 0
}

// Errors returns the recorded errors or nil if the input was valid
func (v *Validator) Errors() Errors {
	if v.Valid() {
		return nil
	}
	return v.errs
}

// Add records an error for the field unless the field already failed
func (v *Validator) Add(field string, kind Kind, values ...string) {
	if v.failed[field] {
		return
	}
	v.failed[field] = true
	v.errs = append(v.errs, FieldError{Field: field, Kind: kind, Values: values})
}

// Required checks that the string is not empty after trimming whitespace
func (v *Validator) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		v.Add(field, MissingField)
		return false
	}
	return true
}

// RequiredList checks that at least one value has been given
func (v *Validator) RequiredList(field string, values []string) bool {
	if len(values) == 0 {
		v.Add(field, MissingField)
		return false
	}
	return true
}

// RequiredID checks that an ID reference has been set
func (v *Validator) RequiredID(field string, id uint) bool {
	if id == 0 {
		v.Add(field, MissingField)
		return false
	}
	return true
}

// In checks that the value is an element of the set
func (v *Validator) In(field, value string, set map[string]bool) bool {
	if !set[value] {
		v.Add(field, InvalidEnumValue, value)
		return false
	}
	return true
}

// Subset checks that every value is an element of the set. All offending values are reported in sorted order.
func (v *Validator) Subset(field string, values []string, set map[string]bool) bool {
	var bad []string
	seen := make(map[string]bool)
	for _, val := range values {
		if !set[val] && !seen[val] {
			seen[val] = true
			bad = append(bad, val)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		v.Add(field, InvalidEnumValue, bad...)
		return false
	}
	return true
}

// URL checks that a non-empty value is an absolute URL with scheme and host. Empty values pass.
func (v *Validator) URL(field, value string) bool {
	if value == "" {
		return true
	}
	if !IsURL(value) {
		v.Add(field, InvalidFormat)
		return false
	}
	return true
}

// IsURL returns true if the string is an absolute URL like "https://www.facebook.com/thehall"
func IsURL(s string) bool {
	return strings.Contains(s, "://") && govalidator.IsRequestURL(s) && govalidator.IsURL(s)
}
