package configurator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

func TestSummarize_GroupsByCategoryInCatalogOrder(t *testing.T) {
	cat := catalog.Default()
	s := NewState()
	s.Selection = NewSelection("dashboard", "ai-voice", "website", "booking-courts", "ai-chat")
	s.Notes = map[string]string{"ai-voice": "after-hours only"}

	groups := Summarize(cat, s)
	require.Len(t, groups, 4)

	var categories []string
	for _, g := range groups {
		categories = append(categories, g.Category)
	}
	assert.Equal(t, []string{"Website", "Bookings", "AI Receptionist", "Operations"}, categories)

	receptionist := groups[2]
	require.Len(t, receptionist.Items, 2)
	assert.Equal(t, "ai-chat", receptionist.Items[0].ID)
	assert.Equal(t, "50", receptionist.Items[0].Amount.String(), "two selected use the 2-tier price")
	assert.Equal(t, "Voice Calls", receptionist.Items[1].Name)
	assert.Equal(t, "after-hours only", receptionist.Items[1].Notes)

	website := groups[0].Items[0]
	assert.Equal(t, BillingOneTime, website.Billing)
	assert.Equal(t, "212", groups[3].Items[0].Amount.String())
}

func TestSummarize_Empty(t *testing.T) {
	assert.Empty(t, Summarize(catalog.Default(), NewState()))
}
