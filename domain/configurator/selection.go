// Package configurator implements the package builder: the selection set,
// the toggle rules that keep it consistent with the catalog, and the price
// aggregation over it. Everything here is pure; callers hold the state.
package configurator

import (
	"encoding/json"
)

// Selection is an insertion-ordered set of selected ids. Order only matters
// for display; equality and pricing ignore it. The zero value is empty.
type Selection struct {
	ids []string
}

// NewSelection builds a selection from ids, dropping duplicates.
func NewSelection(ids ...string) Selection {
	return Selection{}.with(ids...)
}

// Has reports whether id is selected.
func (s Selection) Has(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// HasAll reports whether every id is selected. It is false for no ids.
func (s Selection) HasAll(ids ...string) bool {
	if len(ids) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// CountOf returns how many of ids are selected.
func (s Selection) CountOf(ids ...string) int {
	n := 0
	for _, id := range ids {
		if s.Has(id) {
			n++
		}
	}
	return n
}

func (s Selection) Len() int {
	return len(s.ids)
}

func (s Selection) IsEmpty() bool {
	return len(s.ids) == 0
}

// IDs returns a copy of the selected ids in insertion order.
func (s Selection) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Equal compares as sets.
func (s Selection) Equal(other Selection) bool {
	if s.Len() != other.Len() {
		return false
	}
	return other.Len() == 0 || other.HasAll(s.ids...)
}

func (s Selection) with(ids ...string) Selection {
	out := Selection{ids: s.IDs()}
	for _, id := range ids {
		if !out.Has(id) {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

func (s Selection) without(ids ...string) Selection {
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	out := Selection{ids: make([]string, 0, len(s.ids))}
	for _, id := range s.ids {
		if !drop[id] {
			out.ids = append(out.ids, id)
		}
	}
	return out
}

func (s Selection) MarshalJSON() ([]byte, error) {
	if s.ids == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.ids)
}

func (s *Selection) UnmarshalJSON(data []byte) error {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSelection(ids...)
	return nil
}
