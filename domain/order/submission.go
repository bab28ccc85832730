package order

import (
	"time"

	"github.com/google/uuid"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
)

// Contact is how sales reaches the buyer.
type Contact struct {
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Name   string `json:"name,omitempty"`
	Resort string `json:"resort,omitempty"`
}

// Item is one selected service in a submission. Price is in USD.
type Item struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Notes   string  `json:"notes,omitempty"`
	Price   float64 `json:"price"`
	Billing string  `json:"billing"`
}

// Group is the selected services of one category.
type Group struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
}

// Submission is the payload posted to the workflow webhook.
type Submission struct {
	SubmissionID string  `json:"submissionId"`
	Services     []Group `json:"services"`
	// Package is set when nothing was custom-selected and a fixed plan applies.
	Package      string  `json:"package,omitempty"`
	MonthlyTotal float64 `json:"monthlyTotal"`
	OneTimeTotal float64 `json:"oneTimeTotal"`
	Currency     string  `json:"currency"`
	// Display strings in the buyer's currency.
	MonthlyDisplay string  `json:"monthlyDisplay"`
	OneTimeDisplay string  `json:"oneTimeDisplay"`
	Contact        Contact `json:"contact"`
	Timestamp      string  `json:"timestamp"`
}

// Builder turns configurator state into submissions.
type Builder struct {
	cat   *catalog.Catalog
	newID func() string
}

// NewBuilder creates a builder over cat.
func NewBuilder(cat *catalog.Catalog) *Builder {
	return &Builder{cat: cat, newID: uuid.NewString}
}

// Build produces the webhook payload for s. Contact is taken as given; callers
// validate it first with ValidateContact.
func (b *Builder) Build(s configurator.State, contact Contact, now time.Time) Submission {
	totals := configurator.ComputeTotals(b.cat, s.Selection)
	monthly := configurator.DisplayMonthly(b.cat, s.Selection, s.Package)

	sub := Submission{
		SubmissionID:   b.newID(),
		Services:       []Group{},
		MonthlyTotal:   monthly.InexactFloat64(),
		OneTimeTotal:   totals.OneTime.InexactFloat64(),
		Currency:       currency.Resolve(s.Currency).Code,
		MonthlyDisplay: currency.Format(monthly, s.Currency),
		OneTimeDisplay: currency.Format(totals.OneTime, s.Currency),
		Contact:        contact,
		Timestamp:      now.UTC().Format(time.RFC3339),
	}
	if s.Selection.IsEmpty() {
		sub.Package = s.Package
	}

	for _, g := range configurator.Summarize(b.cat, s) {
		group := Group{Category: g.Category, Items: make([]Item, 0, len(g.Items))}
		for _, it := range g.Items {
			group.Items = append(group.Items, Item{
				ID:      it.ID,
				Name:    it.Name,
				Notes:   it.Notes,
				Price:   it.Amount.InexactFloat64(),
				Billing: string(it.Billing),
			})
		}
		sub.Services = append(sub.Services, group)
	}
	return sub
}
