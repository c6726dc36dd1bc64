package formatter

import (
	"fmt"
	"strings"
)

// FormatMoney renders integer cents as a dollar amount with thousands
// separators, e.g. 12345678 -> "$123,456.78".
func FormatMoney(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	dollars := cents / 100
	rem := cents % 100
	return fmt.Sprintf("%s$%s.%02d", sign, groupThousands(dollars), rem)
}

// FormatMoneySigned is FormatMoney with an explicit leading "+" on positive
// amounts, for budget deltas.
func FormatMoneySigned(cents int64) string {
	if cents > 0 {
		return "+" + FormatMoney(cents)
	}
	return FormatMoney(cents)
}

// MoneyStyled colors an amount by sign: green for positive, red for negative,
// dim for zero.
func MoneyStyled(cents int64) string {
	switch {
	case cents > 0:
		return StyleGreen.Render(FormatMoneySigned(cents))
	case cents < 0:
		return StyleRed.Render(FormatMoney(cents))
	default:
		return StyleDim.Render(FormatMoney(cents))
	}
}

func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ",")
}

// ShortID returns the first 8 characters of a UUID for display.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
