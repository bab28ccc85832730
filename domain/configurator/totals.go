package configurator

import (
	"github.com/shopspring/decimal"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

// Billing says how a line is charged.
type Billing string

const (
	BillingMonthly  Billing = "monthly"
	BillingOneTime  Billing = "one_time"
	BillingSetupFee Billing = "setup_fee"
)

// Line is one charge contributing to Totals.
type Line struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Amount  decimal.Decimal `json:"amount"`
	Billing Billing         `json:"billing"`
}

// Totals is the price of a selection in USD.
type Totals struct {
	Monthly decimal.Decimal `json:"monthly"`
	OneTime decimal.Decimal `json:"oneTime"`
	Lines   []Line          `json:"lines"`
}

// SetupFees sums the setup-fee part of OneTime.
func (t Totals) SetupFees() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range t.Lines {
		if l.Billing == BillingSetupFee {
			sum = sum.Add(l.Amount)
		}
	}
	return sum
}

// BuildFees sums the one-time item part of OneTime.
func (t Totals) BuildFees() decimal.Decimal {
	return t.OneTime.Sub(t.SetupFees())
}

// ComputeTotals prices sel against cat. Bundles are priced first, then flat
// items, both in catalog order. Ids not in the catalog contribute nothing.
func ComputeTotals(cat *catalog.Catalog, sel Selection) Totals {
	t := Totals{Monthly: decimal.Zero, OneTime: decimal.Zero}

	entries := cat.Entries()
	for _, bundle := range entries {
		if !bundle.IsBundle() {
			continue
		}
		n := sel.CountOf(bundle.SubIDs()...)
		if n == 0 {
			continue
		}
		for _, sub := range bundle.SubServices {
			if !sel.Has(sub.ID) {
				continue
			}
			t.add(Line{
				ID:      sub.ID,
				Name:    sub.Name,
				Amount:  UnitPrice(bundle, sub, n),
				Billing: BillingMonthly,
			})
		}
	}

	for _, item := range entries {
		if item.IsBundle() || !sel.Has(item.ID) {
			continue
		}
		billing := BillingMonthly
		if item.OneTime {
			billing = BillingOneTime
		}
		t.add(Line{ID: item.ID, Name: item.Name, Amount: item.Price, Billing: billing})

		if item.HasSetupFee() {
			t.add(Line{ID: item.ID, Name: item.Name + " setup", Amount: item.SetupFee, Billing: BillingSetupFee})
		}
	}

	return t
}

func (t *Totals) add(l Line) {
	if l.Billing == BillingMonthly {
		t.Monthly = t.Monthly.Add(l.Amount)
	} else {
		t.OneTime = t.OneTime.Add(l.Amount)
	}
	t.Lines = append(t.Lines, l)
}

// UnitPrice is the monthly price of one sub-service when the given number of
// its bundle's sub-services are chosen. Dynamic bundles use the tier for that
// count, falling back to basePrice, then price, then zero.
func UnitPrice(bundle catalog.Entry, sub catalog.SubService, selected int) decimal.Decimal {
	if bundle.DynamicPricing {
		if p, ok := sub.PricePerCount[selected]; ok {
			return p
		}
		if sub.BasePrice.Valid {
			return sub.BasePrice.Decimal
		}
	}
	if sub.Price.Valid {
		return sub.Price.Decimal
	}
	return decimal.Zero
}

// DisplayMonthly is the monthly figure shown to the buyer: the fixed package
// price while nothing is custom-selected, the computed total otherwise.
func DisplayMonthly(cat *catalog.Catalog, sel Selection, packageID string) decimal.Decimal {
	if sel.IsEmpty() {
		if pkg, ok := cat.Package(packageID); ok {
			return pkg.Price
		}
		return decimal.Zero
	}
	return ComputeTotals(cat, sel).Monthly
}

// VolumeTiers lists the per-item monthly price of a dynamic bundle for 1..N
// selected sub-services, read from the first sub-service. It is nil for
// bundles without volume pricing.
func VolumeTiers(bundle catalog.Entry) []decimal.Decimal {
	if !bundle.DynamicPricing || len(bundle.SubServices) == 0 {
		return nil
	}
	tiers := make([]decimal.Decimal, len(bundle.SubServices))
	for n := range tiers {
		tiers[n] = UnitPrice(bundle, bundle.SubServices[0], n+1)
	}
	return tiers
}
