// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatMoney formats a currency amount at whole-dollar granularity.
// e.g., 1234.4 -> "$1,234", -56 -> "-$56"
func FormatMoney(v float64) string {
	if v < 0 {
		return "-" + FormatMoney(-v)
	}
	return "$" + FormatNumber(int64(math.Round(v)))
}

// FormatMoneyPrecise keeps cents for small amounts where they matter.
// e.g., 19.99 -> "$19.99", 1200 -> "$1,200"
func FormatMoneyPrecise(v float64) string {
	if v < 0 {
		return "-" + FormatMoneyPrecise(-v)
	}
	if v < 100 && v != math.Trunc(v) {
		return fmt.Sprintf("$%.2f", v)
	}
	return FormatMoney(v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatShare formats a 0-1 float as a whole percentage.
// e.g., 0.55 -> "55%"
func FormatShare(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatMonths formats a whole-month timeline.
// e.g., 0 -> "done", 1 -> "1 month", 23 -> "23 months"
func FormatMonths(months int) string {
	switch {
	case months <= 0:
		return "done"
	case months == 1:
		return "1 month"
	case months < 24:
		return fmt.Sprintf("%d months", months)
	default:
		years := months / 12
		rem := months % 12
		if rem == 0 {
			return fmt.Sprintf("%dy", years)
		}
		return fmt.Sprintf("%dy %dmo", years, rem)
	}
}

// FormatDelta formats a money delta with an explicit sign.
func FormatDelta(current, previous float64) string {
	delta := current - previous
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return "-" + FormatMoney(-delta)
}
