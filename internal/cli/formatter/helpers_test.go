package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$1.50", FormatMoney(150))
	assert.Equal(t, "$1,000.00", FormatMoney(100_000))
	assert.Equal(t, "$123,456.78", FormatMoney(12_345_678))
	assert.Equal(t, "-$50.25", FormatMoney(-5025))
	assert.Equal(t, "-$1,234,567.89", FormatMoney(-123_456_789))
}

func TestFormatMoneySigned(t *testing.T) {
	assert.Equal(t, "+$50.00", FormatMoneySigned(5000))
	assert.Equal(t, "-$50.00", FormatMoneySigned(-5000))
	assert.Equal(t, "$0.00", FormatMoneySigned(0))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "12345678", ShortID("12345678-abcd-efgh"))
	assert.Equal(t, "short", ShortID("short"))
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable(
		[]string{"NAME", "AMOUNT"},
		[][]string{
			{"foundation", "$1,000.00"},
			{"roof", "$250.00"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, lines[0], "NAME")
	assert.Contains(t, lines[0], "AMOUNT")
	assert.Contains(t, lines[2], "foundation")
	assert.Contains(t, lines[3], "roof")
}
