// Package money holds the bounds of amounts kept in NUMERIC(12,2) columns.
package money

import "github.com/shopspring/decimal"

// Max is the largest amount a NUMERIC(12,2) column holds.
var Max = decimal.RequireFromString("9999999999.99")

// Fits reports whether d can be stored without rounding or overflow: at most
// two decimal places and no larger than Max in magnitude.
func Fits(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(2)) && d.Abs().LessThanOrEqual(Max)
}
