package configurator

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

func TestApply_Events(t *testing.T) {
	cat := catalog.Default()
	s := NewState()

	s, err := Apply(cat, s, Event{Type: EventToggle, ID: "booking-automation"})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Selection.Len())

	s, err = Apply(cat, s, Event{Type: EventNote, ID: "booking-villas", Text: "  12 villas on Booking.com  "})
	require.NoError(t, err)
	assert.Equal(t, "12 villas on Booking.com", s.Notes["booking-villas"])

	s, err = Apply(cat, s, Event{Type: EventCurrency, Currency: "php"})
	require.NoError(t, err)
	assert.Equal(t, "PHP", s.Currency)

	s, err = Apply(cat, s, Event{Type: EventPackage, ID: "enterprise"})
	require.NoError(t, err)
	assert.Equal(t, "enterprise", s.Package)

	s, err = Apply(cat, s, Event{Type: EventReset})
	require.NoError(t, err)
	assert.True(t, s.Selection.IsEmpty())
	assert.Empty(t, s.Notes)
	assert.Equal(t, "PHP", s.Currency, "reset keeps the chosen currency")
	assert.Equal(t, DefaultPackage, s.Package)
}

func TestApply_Errors(t *testing.T) {
	cat := catalog.Default()

	tests := []Event{
		{Type: EventToggle},
		{Type: EventNote},
		{Type: EventPackage, ID: "platinum"},
		{Type: "explode"},
	}
	for _, ev := range tests {
		before := NewState()
		after, err := Apply(cat, before, ev)
		assert.Error(t, err, ev.Type)
		assert.Equal(t, before, after)
	}
}

func TestSetNote(t *testing.T) {
	notes := map[string]string{"ai-chat": "english + tagalog"}

	updated := SetNote(notes, "content", "instagram only")
	assert.Len(t, notes, 1, "input must not be mutated")
	assert.Equal(t, "instagram only", updated["content"])

	cleared := SetNote(updated, "ai-chat", "   ")
	assert.NotContains(t, cleared, "ai-chat")

	long := SetNote(nil, "content", strings.Repeat("é", MaxNoteLength+10))
	assert.Equal(t, MaxNoteLength, len([]rune(long["content"])))
}

func TestVisibleNotes(t *testing.T) {
	s := NewState()
	s.Selection = NewSelection("ai-chat")
	s.Notes = map[string]string{"ai-chat": "visible", "content": "hidden, content was deselected"}

	assert.Equal(t, map[string]string{"ai-chat": "visible"}, VisibleNotes(s))
}

func TestStateToken_RoundTrip(t *testing.T) {
	s := NewState()
	s.Selection = NewSelection("website", "booking-courts")
	s.Notes = map[string]string{"booking-courts": "4 courts"}
	s.Currency = "DKK"

	token, err := EncodeState(s)
	require.NoError(t, err)
	assert.NotContains(t, token, "=")

	decoded, err := DecodeState(token)
	require.NoError(t, err)
	assert.Equal(t, []string{"website", "booking-courts"}, decoded.Selection.IDs())
	assert.Equal(t, s.Notes, decoded.Notes)
	assert.Equal(t, "DKK", decoded.Currency)
	assert.Equal(t, DefaultPackage, decoded.Package)
}

func TestDecodeState_EmptyAndInvalid(t *testing.T) {
	s, err := DecodeState("")
	require.NoError(t, err)
	assert.Equal(t, NewState(), s)

	_, err = DecodeState("!!!not-base64")
	assert.Error(t, err)

	_, err = DecodeState("bm90IGpzb24")
	assert.Error(t, err)
}

func TestSelection_JSON(t *testing.T) {
	var s Selection
	require.NoError(t, json.Unmarshal([]byte(`["a","b","a"]`), &s))
	assert.Equal(t, []string{"a", "b"}, s.IDs())

	data, err := json.Marshal(Selection{})
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestSelection_Equal(t *testing.T) {
	assert.True(t, NewSelection("a", "b").Equal(NewSelection("b", "a")))
	assert.False(t, NewSelection("a").Equal(NewSelection("a", "b")))
	assert.True(t, Selection{}.Equal(NewSelection()))
}
