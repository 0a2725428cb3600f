package entities

import "github.com/shopspring/decimal"

// Money and rate columns are decimal(20,2) and decimal(6,2).
const (
	MoneyScale = 2
	RateScale  = 2
)

var (
	// MaxMoney is the smallest amount a decimal(20,2) column cannot hold.
	MaxMoney = decimal.New(1, 18)
	// MaxRate is the smallest rate a decimal(6,2) column cannot hold.
	MaxRate = decimal.New(1, 4)
)

// FitsScale reports whether d has no significant digits beyond scale
// decimal places. Trailing zeros such as 1.500 are fine.
func FitsScale(d decimal.Decimal, scale int32) bool {
	return d.Equal(d.Truncate(scale))
}

// ValidMoney reports whether d can be stored exactly in a money column.
func ValidMoney(d decimal.Decimal) bool {
	return FitsScale(d, MoneyScale) && d.Abs().LessThan(MaxMoney)
}

// ValidRate reports whether d can be stored exactly in a rate column.
func ValidRate(d decimal.Decimal) bool {
	return FitsScale(d, RateScale) && d.Abs().LessThan(MaxRate)
}
