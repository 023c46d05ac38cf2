// Package render formats journal entries for people: a plain text table and
// Beancount transactions.
package render

import (
	"github.com/punchamoorthee/revenueops/internal/domain"
	"github.com/shopspring/decimal"
)

const displayDateLayout = "02/01/2006"

// Amount converts cents to a two-place decimal string.
func Amount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// Money renders cents as dollars, e.g. 110000 -> $1100.00.
func Money(cents int64) string {
	if cents < 0 {
		return "-$" + Amount(-cents)
	}
	return "$" + Amount(cents)
}

// Date renders d as DD/MM/YYYY, or "" when d is empty.
func Date(d domain.Date) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(displayDateLayout)
}
