package order

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
)

func testBuilder() *Builder {
	b := NewBuilder(catalog.Default())
	b.newID = func() string { return "sub-1" }
	return b
}

func TestBuilder_Build(t *testing.T) {
	cat := catalog.Default()
	s := configurator.NewState()
	s.Selection = configurator.Toggle(cat, s.Selection, "booking-automation")
	s.Notes = map[string]string{"booking-villas": "12 villas", "content": "stale note"}
	s.Currency = "php"

	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.FixedZone("PHT", 8*3600))
	sub := testBuilder().Build(s, Contact{Email: "gm@resort.ph", Phone: "09175550134"}, now)

	assert.Equal(t, "sub-1", sub.SubmissionID)
	assert.Equal(t, 448.0, sub.MonthlyTotal)
	assert.Equal(t, 2500.0, sub.OneTimeTotal)
	assert.Equal(t, "PHP", sub.Currency)
	assert.Equal(t, "₱25,312", sub.MonthlyDisplay)
	assert.Equal(t, "₱141,250", sub.OneTimeDisplay)
	assert.Equal(t, "2026-03-14T01:30:00Z", sub.Timestamp)
	assert.Empty(t, sub.Package)

	require.Len(t, sub.Services, 2)
	assert.Equal(t, "Website", sub.Services[0].Category)
	assert.Equal(t, "one_time", sub.Services[0].Items[0].Billing)
	assert.Equal(t, "Bookings", sub.Services[1].Category)
	require.Len(t, sub.Services[1].Items, 2)
	assert.Equal(t, "12 villas", sub.Services[1].Items[0].Notes)
	assert.Equal(t, 299.0, sub.Services[1].Items[0].Price)
}

func TestBuilder_BuildEmptySelectionUsesPackage(t *testing.T) {
	s := configurator.NewState()
	s.Package = "enterprise"

	sub := testBuilder().Build(s, Contact{}, time.Unix(0, 0))

	assert.Equal(t, "enterprise", sub.Package)
	assert.Equal(t, 1899.0, sub.MonthlyTotal)
	assert.Equal(t, "$1899", sub.MonthlyDisplay)

	data, err := json.Marshal(sub)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"services":[]`)
}
