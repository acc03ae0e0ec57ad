package utils

import (
	"fmt"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatDollars renders an amount the way fares are shown to travelers ("$120.50").
func FormatDollars(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	return sign + "$" + FormatMoney(amount)
}
