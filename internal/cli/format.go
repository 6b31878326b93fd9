// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/billdue/internal/model"

	"github.com/shopspring/decimal"
)

// Label formats a bill the way the list shows it:
// "Rent: Due 03/01 - $1200.00".
func Label(b model.Bill) string {
	return fmt.Sprintf("%s: Due %s - $%s", b.Name, FormatDue(b.DueMonth, b.DueDay), b.Amount.StringFixed(2))
}

// FormatDue formats a due date as MM/DD.
func FormatDue(month, day int) string {
	return fmt.Sprintf("%02d/%02d", month, day)
}

// FormatAmount formats a USD amount with separators and two decimals.
// e.g., 1234.5 -> "$1,234.50"
func FormatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	fixed := d.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + fixed
	}
	return sign + "$" + FormatNumber(n) + "." + frac
}

// FormatDays describes a day difference relative to today.
// e.g., 0 -> "today", 1 -> "tomorrow", 5 -> "in 5d", -3 -> "3d late"
func FormatDays(diff int) string {
	switch {
	case diff == 0:
		return "today"
	case diff == 1:
		return "tomorrow"
	case diff == -1:
		return "yesterday"
	case diff < 0:
		return fmt.Sprintf("%dd late", -diff)
	default:
		return fmt.Sprintf("in %dd", diff)
	}
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

// ShortID returns the first 8 characters of a bill ID.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
