package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "Rs. 0", FormatMoney(0))
	assert.Equal(t, "Rs. 950", FormatMoney(950))
	assert.Equal(t, "Rs. 4,000", FormatMoney(4000))
	assert.Equal(t, "Rs. 1,250,000", FormatMoney(1250000))
	assert.Equal(t, "Rs. 1,000", FormatMoney(999.6))
	assert.Equal(t, "-Rs. 4,000", FormatMoney(-4000))
}

func TestFormatDateTime(t *testing.T) {
	ts := time.Date(2025, time.March, 14, 16, 5, 0, 0, time.UTC)
	assert.Equal(t, "Mar 14, 2025 4:05 PM", FormatDateTime(ts))
	assert.Equal(t, "N/A", FormatDateTime(time.Time{}))
}

func TestStrOrNA(t *testing.T) {
	assert.Equal(t, "N/A", StrOrNA(""))
	assert.Equal(t, "N/A", StrOrNA("   "))
	assert.Equal(t, "B-204", StrOrNA("B-204"))
	assert.Equal(t, "", StrOrEmpty("  "))
	assert.Equal(t, "B-204", StrOrEmpty(" B-204 "))
}
