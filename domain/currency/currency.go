// Package currency converts USD prices into the display currencies offered
// on the proposal page. Rates are fixed; this is presentation only.
package currency

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Base is the currency catalog prices are stored in.
const Base = "USD"

// Currency is one entry of the static rate table.
type Currency struct {
	Code   string
	Name   string
	Symbol string
	Rate   decimal.Decimal
	// Grouped currencies get thousands separators.
	Grouped bool
}

var table = []Currency{
	{Code: "USD", Name: "US Dollar", Symbol: "$", Rate: decimal.NewFromInt(1)},
	{Code: "AUD", Name: "Australian Dollar", Symbol: "A$", Rate: decimal.RequireFromString("1.52")},
	{Code: "EUR", Name: "Euro", Symbol: "€", Rate: decimal.RequireFromString("0.92")},
	{Code: "DKK", Name: "Danish Krone", Symbol: "kr", Rate: decimal.RequireFromString("6.87"), Grouped: true},
	{Code: "PHP", Name: "Philippine Peso", Symbol: "₱", Rate: decimal.RequireFromString("56.50"), Grouped: true},
}

var printer = message.NewPrinter(language.English)

// All returns the rate table in display order.
func All() []Currency {
	out := make([]Currency, len(table))
	copy(out, table)
	return out
}

// Codes returns the supported currency codes in display order.
func Codes() []string {
	codes := make([]string, len(table))
	for i, c := range table {
		codes[i] = c.Code
	}
	return codes
}

// Lookup finds a currency by code, case-insensitively.
func Lookup(code string) (Currency, bool) {
	code = strings.ToUpper(strings.TrimSpace(code))
	for _, c := range table {
		if c.Code == code {
			return c, true
		}
	}
	return Currency{}, false
}

// Resolve is Lookup with the USD fallback used for unknown codes.
func Resolve(code string) Currency {
	if c, ok := Lookup(code); ok {
		return c
	}
	return table[0]
}

// Convert returns usd in code's currency, rounded to whole units.
func Convert(usd decimal.Decimal, code string) decimal.Decimal {
	return usd.Mul(Resolve(code).Rate).Round(0)
}

// Format renders usd as a display string in code's currency, e.g. ₱5,650.
// Unknown codes render in USD.
func Format(usd decimal.Decimal, code string) string {
	c := Resolve(code)
	amount := usd.Mul(c.Rate).Round(0)

	if c.Grouped {
		return c.Symbol + printer.Sprintf("%d", amount.IntPart())
	}
	return c.Symbol + amount.String()
}

// FormatFloat is Format for callers holding plain float amounts.
func FormatFloat(usd float64, code string) string {
	return Format(decimal.NewFromFloat(usd), code)
}
