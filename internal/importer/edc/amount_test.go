package edc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "150000", want: 150000},
		{in: "150.000", want: 150000},
		{in: "1.500.000", want: 1500000},
		{in: "1.234,56", want: 1234.56},
		{in: "1,234.56", want: 1234.56},
		{in: "1,234,567", want: 1234567},
		{in: "12,5", want: 12.5},
		{in: "12.50", want: 12.5},
		{in: "Rp 1.500", want: 1500},
		{in: "(2.500)", want: -2500},
		{in: "-10,00", want: -10},
		{in: "", wantErr: true},
		{in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseAmount(tt.in)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
