package configurator

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
)

// MaxNoteLength caps a single note, in runes.
const MaxNoteLength = 1000

// DefaultCurrency is used when a state carries no currency.
const DefaultCurrency = "USD"

// DefaultPackage is the fixed plan shown while nothing is custom-selected.
const DefaultPackage = "pro"

// State is everything a buyer has configured. It is a plain value: every
// change goes through Apply and yields a new State.
type State struct {
	Selection Selection         `json:"selection"`
	Notes     map[string]string `json:"notes,omitempty"`
	Currency  string            `json:"currency"`
	Package   string            `json:"package,omitempty"`
}

// NewState returns the empty starting state.
func NewState() State {
	return State{Currency: DefaultCurrency, Package: DefaultPackage}
}

// EventType names a buyer action.
type EventType string

const (
	EventToggle   EventType = "toggle"
	EventNote     EventType = "note"
	EventCurrency EventType = "currency"
	EventPackage  EventType = "package"
	EventReset    EventType = "reset"
)

// Event is a buyer action dispatched by a presentation surface.
type Event struct {
	Type     EventType `json:"type"`
	ID       string    `json:"id,omitempty"`
	Text     string    `json:"text,omitempty"`
	Currency string    `json:"currency,omitempty"`
}

// Apply reduces ev onto s.
func Apply(cat *catalog.Catalog, s State, ev Event) (State, error) {
	switch ev.Type {
	case EventToggle:
		if ev.ID == "" {
			return s, fmt.Errorf("toggle event needs an id")
		}
		s.Selection = Toggle(cat, s.Selection, ev.ID)
	case EventNote:
		if ev.ID == "" {
			return s, fmt.Errorf("note event needs an id")
		}
		s.Notes = SetNote(s.Notes, ev.ID, ev.Text)
	case EventCurrency:
		s.Currency = normalizeCurrency(ev.Currency)
	case EventPackage:
		if _, ok := cat.Package(ev.ID); !ok {
			return s, fmt.Errorf("unknown package %q", ev.ID)
		}
		s.Package = ev.ID
	case EventReset:
		next := NewState()
		next.Currency = s.Currency
		return next, nil
	default:
		return s, fmt.Errorf("unknown event type %q", ev.Type)
	}
	return s, nil
}

// SetNote returns a copy of notes with id's note replaced. Blank text removes
// the note. Notes outlive deselection; VisibleNotes filters them.
func SetNote(notes map[string]string, id, text string) map[string]string {
	out := make(map[string]string, len(notes)+1)
	for k, v := range notes {
		out[k] = v
	}

	text = strings.TrimSpace(text)
	if text == "" {
		delete(out, id)
		return out
	}
	if utf8.RuneCountInString(text) > MaxNoteLength {
		text = string([]rune(text)[:MaxNoteLength])
	}
	out[id] = text
	return out
}

// VisibleNotes returns only the notes for currently selected ids.
func VisibleNotes(s State) map[string]string {
	out := make(map[string]string)
	for id, text := range s.Notes {
		if s.Selection.Has(id) {
			out[id] = text
		}
	}
	return out
}

func normalizeCurrency(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCurrency
	}
	return code
}

// EncodeState serializes s into an opaque URL-safe token.
func EncodeState(s State) (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encoding state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(data), nil
}

// DecodeState parses a token produced by EncodeState. An empty token is the
// starting state.
func DecodeState(token string) (State, error) {
	if token == "" {
		return NewState(), nil
	}
	data, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return NewState(), fmt.Errorf("decoding state token: %w", err)
	}
	s := NewState()
	if err := json.Unmarshal(data, &s); err != nil {
		return NewState(), fmt.Errorf("decoding state: %w", err)
	}
	s.Currency = normalizeCurrency(s.Currency)
	if s.Package == "" {
		s.Package = DefaultPackage
	}
	return s, nil
}
