package components

import (
	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/order"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
)

// OrderOutcome is the result banner shown after a contact form post.
type OrderOutcome struct {
	Success bool
	Message string
}

// Page is everything the landing page renders from.
type Page struct {
	Catalog *catalog.Catalog
	State   configurator.State
	// Token is State encoded for the hidden form fields.
	Token string
	Quote quote.Quote

	Contact     order.Contact
	FieldErrors map[string]string
	Outcome     *OrderOutcome
	ConfigError string
	APIBaseURL  string
}
