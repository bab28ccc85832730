// Package quote prices configurator state for API clients and renders the
// figures shown to buyers.
package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
)

// Line is one priced charge, converted for display.
type Line struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Billing configurator.Billing `json:"billing"`
	Amount  decimal.Decimal      `json:"amount"`
	Display string               `json:"display"`
}

// Quote is a priced selection. Amounts are USD; Display strings are in
// Currency.
type Quote struct {
	Selection      []string        `json:"selection"`
	Currency       string          `json:"currency"`
	Package        string          `json:"package,omitempty"`
	Monthly        decimal.Decimal `json:"monthly"`
	OneTime        decimal.Decimal `json:"oneTime"`
	MonthlyDisplay string          `json:"monthlyDisplay"`
	OneTimeDisplay string          `json:"oneTimeDisplay"`
	OneTimeCaption string          `json:"oneTimeCaption,omitempty"`
	Lines          []Line          `json:"lines"`
}

// Build prices state. With nothing selected the monthly figure is the chosen
// fixed package.
func Build(cat *catalog.Catalog, state configurator.State) Quote {
	code := currency.Resolve(state.Currency).Code
	totals := configurator.ComputeTotals(cat, state.Selection)
	monthly := configurator.DisplayMonthly(cat, state.Selection, state.Package)

	q := Quote{
		Selection:      state.Selection.IDs(),
		Currency:       code,
		Monthly:        monthly,
		OneTime:        totals.OneTime,
		MonthlyDisplay: currency.Format(monthly, code),
		OneTimeDisplay: currency.Format(totals.OneTime, code),
		OneTimeCaption: OneTimeCaption(totals, code),
		Lines:          make([]Line, 0, len(totals.Lines)),
	}
	if state.Selection.IsEmpty() {
		q.Package = state.Package
	}
	for _, l := range totals.Lines {
		q.Lines = append(q.Lines, Line{
			ID:      l.ID,
			Name:    l.Name,
			Billing: l.Billing,
			Amount:  l.Amount,
			Display: currency.Format(l.Amount, code),
		})
	}
	return q
}

// OneTimeCaption explains what the one-time total is made of.
func OneTimeCaption(t configurator.Totals, code string) string {
	build, setup := t.BuildFees(), t.SetupFees()
	switch {
	case build.IsPositive() && setup.IsPositive():
		return fmt.Sprintf("Website build (%s) + Setup fees (%s)", currency.Format(build, code), currency.Format(setup, code))
	case build.IsPositive():
		return "Website build fee (paid once)"
	case setup.IsPositive():
		return "Setup fees (paid once)"
	default:
		return ""
	}
}

// VolumeHint describes a dynamic bundle's tiers, e.g.
// "1 option = $89/mo, 2 options = $75/mo each". Empty for flat bundles.
func VolumeHint(bundle catalog.Entry, code string) string {
	tiers := configurator.VolumeTiers(bundle)
	parts := make([]string, 0, len(tiers))
	for i, p := range tiers {
		n := i + 1
		switch n {
		case 1:
			parts = append(parts, fmt.Sprintf("1 option = %s/mo", currency.Format(p, code)))
		default:
			parts = append(parts, fmt.Sprintf("%d options = %s/mo each", n, currency.Format(p, code)))
		}
	}
	return strings.Join(parts, ", ")
}
