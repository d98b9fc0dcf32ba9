package model

import (
	"github.com/Rhymond/go-money"
)

// Currency is the currency code every monetr amount is denominated in.
const Currency = money.USD

// FormatAmount renders an amount of minor units (cents) as a currency string, e.g. 2550 -> "$25.50".
// Negative amounts keep their sign ("-$25.50").
func FormatAmount(minorUnits int64) string {
	return money.New(minorUnits, Currency).Display()
}

// FormatAbsAmount renders the magnitude of an amount, discarding its sign.
func FormatAbsAmount(minorUnits int64) string {
	return money.New(minorUnits, Currency).Absolute().Display()
}
