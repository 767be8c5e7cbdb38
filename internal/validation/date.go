package validation

import (
	"fmt"
	"time"
)

// InputDatePattern is the accepted wire form of calendar dates.
const InputDatePattern = "MM/DD/YYYY"

const inputDateLayout = "01/02/2006"

// NormalizeDate turns a strict MM/DD/YYYY string into YYYY-MM-DD.
// An empty string is treated as absent.
func NormalizeDate(field string, value any) (any, *Violation) {
	s, _ := value.(string)
	if s == "" {
		return nil, nil
	}

	t, err := time.Parse(inputDateLayout, s)
	if err != nil {
		return nil, &Violation{
			Type:     RuleDatePattern,
			Field:    field,
			Message:  fmt.Sprintf("The '%s' field must match the %s pattern.", field, InputDatePattern),
			Expected: InputDatePattern,
			Actual:   s,
		}
	}

	return t.Format(time.DateOnly), nil
}
