package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.Japanese)

// Group formats v with Japanese digit grouping and at most three fraction digits.
func Group(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

// Yen is Group with the currency suffix, e.g. "1,000,000 円".
func Yen(v float64) string {
	return Group(v) + " 円"
}
