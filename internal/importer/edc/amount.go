package edc

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount reads amounts as printed by EDC back-office exports:
// "150000", "150.000" (dot thousands), "1.234,56", "1,234.56", "Rp 1.500",
// "(2.500)" for negatives. A lone separator followed by exactly three digits is
// read as a thousands separator since rupiah amounts carry at most two decimals.
func parseAmount(s string) (float64, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "Rp")
	clean = strings.TrimPrefix(clean, "IDR")
	clean = strings.ReplaceAll(clean, " ", "")

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		negative = true
		clean = clean[1 : len(clean)-1]
	}

	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	lastDot := strings.LastIndex(clean, ".")
	lastComma := strings.LastIndex(clean, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastComma > lastDot {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.Replace(clean, ",", ".", 1)
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
		}
	case lastComma >= 0:
		clean = normalizeSingle(clean, ",")
	case lastDot >= 0:
		clean = normalizeSingle(clean, ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, err
	}

	if negative {
		d = d.Neg()
	}

	f, _ := d.Float64()

	return f, nil
}

// normalizeSingle handles strings that use only one kind of separator.
func normalizeSingle(s, sep string) string {
	if strings.Count(s, sep) > 1 {
		return strings.ReplaceAll(s, sep, "")
	}

	idx := strings.Index(s, sep)
	if len(s)-idx-1 == 3 {
		return strings.Replace(s, sep, "", 1)
	}

	return strings.Replace(s, sep, ".", 1)
}
