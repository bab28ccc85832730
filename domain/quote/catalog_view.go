package quote

import (
	"github.com/shopspring/decimal"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
)

type subServiceView struct {
	ID            string                  `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	Price         *decimal.Decimal        `json:"price,omitempty"`
	BasePrice     *decimal.Decimal        `json:"basePrice,omitempty"`
	PricePerCount map[int]decimal.Decimal `json:"pricePerCount,omitempty"`
}

type entryView struct {
	ID              string           `json:"id"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category,omitempty"`
	Kind            string           `json:"kind"`
	Price           decimal.Decimal  `json:"price"`
	IsOneTime       bool             `json:"isOneTime,omitempty"`
	SetupFee        decimal.Decimal  `json:"setupFee"`
	RequiresWebsite bool             `json:"requiresWebsite,omitempty"`
	DynamicPricing  bool             `json:"dynamicPricing,omitempty"`
	SubServices     []subServiceView `json:"subServices,omitempty"`
}

type packageView struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Features []string        `json:"features"`
	Popular  bool            `json:"popular,omitempty"`
}

type currencyView struct {
	Code   string          `json:"code"`
	Name   string          `json:"name"`
	Symbol string          `json:"symbol"`
	Rate   decimal.Decimal `json:"rate"`
}

// CatalogView is the JSON form of the catalog and the currency table.
type CatalogView struct {
	Prerequisite string         `json:"prerequisite"`
	Entries      []entryView    `json:"entries"`
	Packages     []packageView  `json:"packages"`
	Currencies   []currencyView `json:"currencies"`
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	v := d.Decimal
	return &v
}

// NewCatalogView renders cat for API clients.
func NewCatalogView(cat *catalog.Catalog) CatalogView {
	v := CatalogView{Prerequisite: cat.Prerequisite()}

	for _, e := range cat.Entries() {
		ev := entryView{
			ID:              e.ID,
			Name:            e.Name,
			Description:     e.Description,
			Category:        e.Category,
			Kind:            cat.Kind(e.ID).String(),
			Price:           e.Price,
			IsOneTime:       e.OneTime,
			SetupFee:        e.SetupFee,
			RequiresWebsite: e.RequiresWebsite,
			DynamicPricing:  e.DynamicPricing,
		}
		for _, s := range e.SubServices {
			ev.SubServices = append(ev.SubServices, subServiceView{
				ID:            s.ID,
				Name:          s.Name,
				Description:   s.Description,
				Price:         nullable(s.Price),
				BasePrice:     nullable(s.BasePrice),
				PricePerCount: s.PricePerCount,
			})
		}
		v.Entries = append(v.Entries, ev)
	}

	for _, p := range cat.Packages() {
		v.Packages = append(v.Packages, packageView{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Features: p.Features,
			Popular:  p.Popular,
		})
	}

	for _, c := range currency.All() {
		v.Currencies = append(v.Currencies, currencyView{Code: c.Code, Name: c.Name, Symbol: c.Symbol, Rate: c.Rate})
	}
	return v
}
