package validation

import (
	"fmt"
	"math"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// validate backs the format-level constraints (currently just URL).
var validate = validator.New()

// Constraint checks a single present, non-null value and returns an error
// message, or "" when the value passes.
type Constraint interface {
	Check(field string, value interface{}) string
}

// Field is one entry of a validation schema: a payload key plus the
// constraints applied to its value. Required fields must be present and
// non-null; Nullable fields skip their constraints when the value is null.
type Field struct {
	Name        string
	Required    bool
	Nullable    bool
	Constraints []Constraint
}

// Schema is an ordered list of field rules evaluated against a decoded
// JSON object. Evaluation order is schema order, so error messages come
// back in a deterministic order.
type Schema []Field

// Validate runs the schema against data and returns all error messages.
// An empty slice means the payload is valid.
func (s Schema) Validate(data map[string]interface{}) []string {
	var errs []string
	for _, f := range s {
		value, present := data[f.Name]
		if !present || value == nil {
			if f.Required && !f.Nullable {
				errs = append(errs, fmt.Sprintf("The %s field is required.", f.Name))
			}
			continue
		}
		// Required treats the empty string as missing.
		if str, ok := value.(string); ok && str == "" && f.Required {
			errs = append(errs, fmt.Sprintf("The %s field is required.", f.Name))
			continue
		}
		for _, c := range f.Constraints {
			if msg := c.Check(f.Name, value); msg != "" {
				errs = append(errs, msg)
				break
			}
		}
	}
	return errs
}

// String requires the value to be a JSON string.
type String struct{}

func (String) Check(field string, value interface{}) string {
	if _, ok := value.(string); !ok {
		return fmt.Sprintf("The %s must be a string.", field)
	}
	return ""
}

// MaxLength caps the length of a string value. Non-strings are left for
// the String constraint to report.
type MaxLength struct {
	Max int
}

func (m MaxLength) Check(field string, value interface{}) string {
	s, ok := value.(string)
	if ok && len([]rune(s)) > m.Max {
		return fmt.Sprintf("The %s must not be greater than %d characters.", field, m.Max)
	}
	return ""
}

// Numeric accepts JSON numbers and numeric strings.
type Numeric struct{}

func (Numeric) Check(field string, value interface{}) string {
	if _, ok := asFloat(value); !ok {
		return fmt.Sprintf("The %s must be a number.", field)
	}
	return ""
}

// Integer accepts JSON numbers without a fractional part and integer strings.
type Integer struct{}

func (Integer) Check(field string, value interface{}) string {
	if _, ok := AsInt(value); !ok {
		return fmt.Sprintf("The %s must be an integer.", field)
	}
	return ""
}

// URL requires a string that parses as an absolute URL.
type URL struct{}

func (URL) Check(field string, value interface{}) string {
	s, ok := value.(string)
	if !ok || validate.Var(s, "url") != nil {
		return fmt.Sprintf("The %s must be a valid URL.", field)
	}
	return ""
}

// Exists probes the backing store for the value. The probe runs inside
// validation on purpose: the update id rule depends on a live lookup.
type Exists struct {
	Probe func(id int) bool
}

func (e Exists) Check(field string, value interface{}) string {
	id, ok := AsInt(value)
	if !ok || !e.Probe(id) {
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

// In requires the value to equal one fixed integer.
type In struct {
	Value int
}

func (i In) Check(field string, value interface{}) string {
	id, ok := AsInt(value)
	if !ok || id != i.Value {
		return fmt.Sprintf("The selected %s is invalid.", field)
	}
	return ""
}

func asFloat(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

// AsInt converts a decoded JSON value to an int when it represents a
// whole number. JSON numbers arrive as float64.
func AsInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		i, err := strconv.Atoi(v)
		if err != nil {
			return 0, false
		}
		return i, true
	}
	return 0, false
}

// AsFloat converts a decoded JSON value to a float64 when it is numeric.
func AsFloat(value interface{}) (float64, bool) {
	return asFloat(value)
}
