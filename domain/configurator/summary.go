package configurator

import (
	"github.com/shopspring/decimal"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

// SummaryItem is one selected service as shown in an order summary.
type SummaryItem struct {
	ID      string
	Name    string
	Notes   string
	Amount  decimal.Decimal
	Billing Billing
}

// CategoryGroup collects the selected services of one catalog category.
type CategoryGroup struct {
	Category string
	Items    []SummaryItem
}

// Summarize groups the selected services by category in catalog order, with
// each service's price and note. Setup fees are not listed; they only show in
// the totals.
func Summarize(cat *catalog.Catalog, s State) []CategoryGroup {
	totals := ComputeTotals(cat, s.Selection)
	amounts := make(map[string]Line, len(totals.Lines))
	for _, l := range totals.Lines {
		if l.Billing != BillingSetupFee {
			amounts[l.ID] = l
		}
	}

	var groups []CategoryGroup
	index := make(map[string]int)

	for _, id := range cat.Selectable() {
		if !s.Selection.Has(id) {
			continue
		}
		owner, _ := cat.Owner(id)
		line := amounts[id]

		item := SummaryItem{
			ID:      id,
			Name:    cat.Name(id),
			Notes:   s.Notes[id],
			Amount:  line.Amount,
			Billing: line.Billing,
		}

		i, ok := index[owner.Category]
		if !ok {
			i = len(groups)
			index[owner.Category] = i
			groups = append(groups, CategoryGroup{Category: owner.Category})
		}
		groups[i].Items = append(groups[i].Items, item)
	}

	return groups
}
