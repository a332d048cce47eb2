package helper

import (
	"fmt"
	"strings"
	"time"
)

/* ===============================
   Display fallbacks
=================================*/

// StrOrNA coerces an optional display field. Core-font PDFs and JSON both
// want a literal value, never an empty hole.
func StrOrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// StrOrEmpty trims; admit-card detail rows use empty string, not "N/A".
func StrOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

/* ===============================
   Money
=================================*/

// FormatMoney renders an amount with a currency prefix and comma thousands
// separators, e.g. "Rs. 12,500". Negative amounts keep the sign before the
// prefix. Amounts are rounded to the nearest rupee.
func FormatMoney(amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	rounded := int64(amount + 0.5)
	str := fmt.Sprintf("%d", rounded)

	n := len(str)
	if n > 3 {
		var b []byte
		for i := 0; i < n; i++ {
			if i > 0 && (n-i)%3 == 0 {
				b = append(b, ',')
			}
			b = append(b, str[i])
		}
		str = string(b)
	}

	if negative {
		return "-Rs. " + str
	}
	return "Rs. " + str
}

/* ===============================
   Dates
=================================*/

// FormatDateTime renders a human month-name timestamp in a fixed locale,
// e.g. "Mar 14, 2025 4:05 PM". Zero times degrade to "N/A".
func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("Jan 2, 2006 3:04 PM")
}
