package validation_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/settle/internal/validation"
)

var testSchema = validation.Schema{
	{Name: "name", Kind: validation.KindString, NotEmpty: true, MinLength: 3},
	{Name: "ref", Kind: validation.KindString, NotEmpty: true, Format: "uuid"},
	{Name: "amount", Kind: validation.KindNumber, Min: new(0.0)},
	{Name: "note", Kind: validation.KindString, Optional: true},
	{Name: "date", Kind: validation.KindString, Optional: true, Normalize: validation.NormalizeDate},
}

func violationTypes(t *testing.T, err error) map[string]string {
	t.Helper()

	var verr validation.Errors
	require.True(t, errors.As(err, &verr), "expected validation.Errors, got %v", err)

	got := make(map[string]string, len(verr))
	for _, v := range verr {
		got[v.Field] = v.Type
	}

	return got
}

func TestValidator_Validate(t *testing.T) {
	type testCase struct {
		name       string
		payload    validation.Payload
		schema     validation.Schema
		want       validation.Payload
		violations map[string]string
	}

	tests := []testCase{
		{
			name: "Valid",
			payload: validation.Payload{
				"name":   "BCA",
				"ref":    "7f1c9f0e-8a63-4c5b-9b0a-0e6f3a6b1c2d",
				"amount": 100.5,
				"date":   "03/15/2024",
				"extra":  "dropped",
			},
			schema: testSchema,
			want: validation.Payload{
				"name":   "BCA",
				"ref":    "7f1c9f0e-8a63-4c5b-9b0a-0e6f3a6b1c2d",
				"amount": 100.5,
				"date":   "2024-03-15",
			},
		},
		{
			name:    "MissingRequiredReportedTogether",
			payload: validation.Payload{"note": "x"},
			schema:  testSchema,
			violations: map[string]string{
				"name":   validation.RuleRequired,
				"ref":    validation.RuleRequired,
				"amount": validation.RuleRequired,
			},
		},
		{
			name: "NullCountsAsMissing",
			payload: validation.Payload{
				"name":   nil,
				"ref":    "7f1c9f0e-8a63-4c5b-9b0a-0e6f3a6b1c2d",
				"amount": 0.0,
			},
			schema:     testSchema,
			violations: map[string]string{"name": validation.RuleRequired},
		},
		{
			name: "WrongTypesAndBounds",
			payload: validation.Payload{
				"name":   "ab",
				"ref":    "not-a-uuid",
				"amount": -1.0,
				"note":   42.0,
				"date":   "2024-03-15",
			},
			schema: testSchema,
			violations: map[string]string{
				"name":   validation.RuleStringMin,
				"ref":    "uuid",
				"amount": validation.RuleNumberMin,
				"note":   validation.RuleString,
				"date":   validation.RuleDatePattern,
			},
		},
		{
			name: "EmptyStringAndNonNumber",
			payload: validation.Payload{
				"name":   "",
				"ref":    "7f1c9f0e-8a63-4c5b-9b0a-0e6f3a6b1c2d",
				"amount": "100",
			},
			schema: testSchema,
			violations: map[string]string{
				"name":   validation.RuleStringEmpty,
				"amount": validation.RuleNumber,
			},
		},
		{
			name:    "RelaxedAcceptsEmpty",
			payload: validation.Payload{},
			schema:  testSchema.Relaxed(),
			want:    validation.Payload{},
		},
		{
			name:       "RelaxedStillChecksSuppliedValues",
			payload:    validation.Payload{"amount": -5.0},
			schema:     testSchema.Relaxed(),
			violations: map[string]string{"amount": validation.RuleNumberMin},
		},
		{
			name: "EmptyDateIsAbsent",
			payload: validation.Payload{
				"name":   "Mandiri",
				"ref":    "7f1c9f0e-8a63-4c5b-9b0a-0e6f3a6b1c2d",
				"amount": 1,
				"date":   "",
			},
			schema: testSchema,
			want: validation.Payload{
				"name":   "Mandiri",
				"ref":    "7f1c9f0e-8a63-4c5b-9b0a-0e6f3a6b1c2d",
				"amount": 1.0,
			},
		},
	}

	v := validation.New()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.Validate(tt.payload, tt.schema)

			if tt.violations != nil {
				assert.Nil(t, got)
				assert.Equal(t, tt.violations, violationTypes(t, err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSchema_RelaxedLeavesOriginal(t *testing.T) {
	relaxed := testSchema.Relaxed()

	for i := range testSchema {
		assert.True(t, relaxed[i].Optional)
	}

	assert.False(t, testSchema[0].Optional)
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    any
		wantErr bool
	}{
		{name: "Canonical", in: "03/15/2024", want: "2024-03-15"},
		{name: "LeapDay", in: "02/29/2024", want: "2024-02-29"},
		{name: "Empty", in: "", want: nil},
		{name: "SingleDigits", in: "3/5/2024", wantErr: true},
		{name: "DayOutOfRange", in: "02/30/2024", wantErr: true},
		{name: "IsoInput", in: "2024-03-15", wantErr: true},
		{name: "DayFirst", in: "15/03/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, violation := validation.NormalizeDate("date", tt.in)

			if tt.wantErr {
				require.NotNil(t, violation)
				assert.Equal(t, validation.RuleDatePattern, violation.Type)
				assert.Equal(t, validation.InputDatePattern, violation.Expected)
				assert.Equal(t, tt.in, violation.Actual)

				return
			}

			assert.Nil(t, violation)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestErrors(t *testing.T) {
	errs := validation.Errors{
		{Type: validation.RuleRequired, Field: "mid"},
		{Type: validation.RuleNumberMin, Field: "amount"},
	}

	prefixed := errs.Prefix("rows[2].")
	assert.Equal(t, "rows[2].mid", prefixed[0].Field)
	assert.Equal(t, "mid", errs[0].Field)
	assert.True(t, strings.Contains(errs.Error(), "amount: numberMin"))
}

func TestDecode(t *testing.T) {
	p, err := validation.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, p)

	p, err = validation.Decode(strings.NewReader(`{"mid":"M1","amount":10}`))
	require.NoError(t, err)
	assert.Equal(t, "M1", p.String("mid"))
	assert.Equal(t, 10.0, p.Float("amount"))
	assert.Nil(t, p.FloatPtr("mdr"))

	_, err = validation.Decode(strings.NewReader(`[1,2]`))
	assert.Error(t, err)
}
