// Package validation checks decoded request payloads against declarative field schemas.
//
// A Schema is plain data: each Field names its kind, whether it may be omitted, and
// the bounds it must respect. Validate reports every violation in one pass and
// returns a normalized copy of the payload holding only the fields the schema knows.
package validation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Kind is the JSON type a field must carry.
type Kind int

const (
	KindString Kind = iota
	KindNumber
)

// Normalizer rewrites an already type-checked value. A nil result drops the field
// from the normalized payload.
type Normalizer func(field string, value any) (any, *Violation)

type Field struct {
	Name      string
	Kind      Kind
	Optional  bool
	NotEmpty  bool
	MinLength int
	Min       *float64
	// Format is a validator tag applied to string values, e.g. "uuid".
	Format    string
	Normalize Normalizer
}

type Schema []Field

// Relaxed returns a copy of the schema where every field may be omitted.
// Supplied values are still subject to the same rules.
func (s Schema) Relaxed() Schema {
	out := make(Schema, len(s))
	for i, f := range s {
		f.Optional = true
		out[i] = f
	}

	return out
}

// Rule names reported in Violation.Type.
const (
	RuleRequired    = "required"
	RuleString      = "string"
	RuleStringEmpty = "stringEmpty"
	RuleStringMin   = "stringMin"
	RuleNumber      = "number"
	RuleNumberMin   = "numberMin"
	RuleDatePattern = "datePattern"
)

type Violation struct {
	Type     string `json:"type"`
	Field    string `json:"field"`
	Message  string `json:"message"`
	Expected any    `json:"expected,omitempty"`
	Actual   any    `json:"actual,omitempty"`
}

// Errors is the full list of violations for one payload.
type Errors []Violation

func (e Errors) Error() string {
	fields := make([]string, len(e))
	for i, v := range e {
		fields[i] = v.Field + ": " + v.Type
	}

	return "validation failed: " + strings.Join(fields, ", ")
}

// Prefix returns a copy with every field name prefixed, e.g. "rows[2].".
func (e Errors) Prefix(prefix string) Errors {
	out := make(Errors, len(e))
	for i, v := range e {
		v.Field = prefix + v.Field
		out[i] = v
	}

	return out
}

// Validator is safe for concurrent use once constructed.
type Validator struct {
	rules *validator.Validate
}

func New() *Validator {
	return &Validator{rules: validator.New()}
}

// Validate checks payload against schema. On success it returns the normalized
// payload; otherwise the error is an Errors value listing every violation.
func (v *Validator) Validate(payload Payload, schema Schema) (Payload, error) {
	out := make(Payload, len(schema))

	var errs Errors

	for _, f := range schema {
		raw, ok := payload[f.Name]
		if !ok || raw == nil {
			if !f.Optional {
				errs = append(errs, Violation{
					Type:    RuleRequired,
					Field:   f.Name,
					Message: fmt.Sprintf("The '%s' field is required.", f.Name),
				})
			}

			continue
		}

		value, violation := v.check(f, raw)
		if violation != nil {
			errs = append(errs, *violation)
			continue
		}

		if f.Normalize != nil {
			value, violation = f.Normalize(f.Name, value)
			if violation != nil {
				errs = append(errs, *violation)
				continue
			}
		}

		if value != nil {
			out[f.Name] = value
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return out, nil
}

func (v *Validator) check(f Field, raw any) (any, *Violation) {
	switch f.Kind {
	case KindString:
		s, ok := raw.(string)
		if !ok {
			return nil, &Violation{
				Type:    RuleString,
				Field:   f.Name,
				Message: fmt.Sprintf("The '%s' field must be a string.", f.Name),
				Actual:  raw,
			}
		}

		if f.NotEmpty && s == "" {
			return nil, &Violation{
				Type:    RuleStringEmpty,
				Field:   f.Name,
				Message: fmt.Sprintf("The '%s' field must not be empty.", f.Name),
				Actual:  s,
			}
		}

		if f.MinLength > 0 && v.rules.Var(s, "min="+strconv.Itoa(f.MinLength)) != nil {
			return nil, &Violation{
				Type:     RuleStringMin,
				Field:    f.Name,
				Message:  fmt.Sprintf("The '%s' field length must be greater than or equal to %d characters long.", f.Name, f.MinLength),
				Expected: f.MinLength,
				Actual:   len([]rune(s)),
			}
		}

		if f.Format != "" && v.rules.Var(s, f.Format) != nil {
			return nil, &Violation{
				Type:    f.Format,
				Field:   f.Name,
				Message: fmt.Sprintf("The '%s' field must be a valid %s.", f.Name, f.Format),
				Actual:  s,
			}
		}

		return s, nil
	case KindNumber:
		n, ok := toFloat(raw)
		if !ok {
			return nil, &Violation{
				Type:    RuleNumber,
				Field:   f.Name,
				Message: fmt.Sprintf("The '%s' field must be a number.", f.Name),
				Actual:  raw,
			}
		}

		if f.Min != nil && v.rules.Var(n, "gte="+strconv.FormatFloat(*f.Min, 'f', -1, 64)) != nil {
			return nil, &Violation{
				Type:     RuleNumberMin,
				Field:    f.Name,
				Message:  fmt.Sprintf("The '%s' field must be greater than or equal to %s.", f.Name, strconv.FormatFloat(*f.Min, 'f', -1, 64)),
				Expected: *f.Min,
				Actual:   n,
			}
		}

		return n, nil
	}

	return nil, &Violation{
		Type:    "unknown",
		Field:   f.Name,
		Message: fmt.Sprintf("The '%s' field has no known kind.", f.Name),
	}
}

func toFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}

	return 0, false
}
