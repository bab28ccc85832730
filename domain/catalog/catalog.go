// Package catalog holds the immutable description of everything the resort
// automation proposal sells: flat items, bundles of sub-services and the
// fixed packages shown when nothing is custom-selected.
package catalog

import (
	"bytes"
	_ "embed"
	"sync"

	"github.com/shopspring/decimal"
)

//go:embed catalog.yaml
var embedded []byte

// DefaultPrerequisite is the id every requiresWebsite entry depends on.
const DefaultPrerequisite = "website"

// Kind classifies an id.
type Kind int

const (
	KindUnknown Kind = iota
	KindItem
	KindBundle
	KindSubService
)

func (k Kind) String() string {
	switch k {
	case KindItem:
		return "item"
	case KindBundle:
		return "bundle"
	case KindSubService:
		return "sub-service"
	default:
		return "unknown"
	}
}

// SubService is an individually selectable leaf inside a bundle.
// Price is set for flat bundles; BasePrice and PricePerCount for dynamic ones.
type SubService struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.NullDecimal
	BasePrice     decimal.NullDecimal
	PricePerCount map[int]decimal.Decimal
}

// Entry is a top-level catalog entry: either a flat item or a bundle.
type Entry struct {
	ID              string
	Name            string
	Description     string
	Category        string
	Panel           string
	Price           decimal.Decimal
	OneTime         bool
	SetupFee        decimal.Decimal
	RequiresWebsite bool
	DynamicPricing  bool
	SubServices     []SubService
}

// IsBundle reports whether the entry groups sub-services.
func (e Entry) IsBundle() bool {
	return len(e.SubServices) > 0
}

// HasSetupFee reports whether selecting the item adds a one-time setup charge.
func (e Entry) HasSetupFee() bool {
	return e.SetupFee.IsPositive()
}

// SubIDs returns the bundle's sub-service ids in catalog order.
func (e Entry) SubIDs() []string {
	ids := make([]string, len(e.SubServices))
	for i, s := range e.SubServices {
		ids[i] = s.ID
	}
	return ids
}

// Package is one of the fixed, pre-composed monthly plans.
type Package struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Features []string
	Popular  bool
}

type position struct {
	entry int
	sub   int // -1 for the entry itself
}

// Catalog is immutable after Load returns and safe for concurrent use.
type Catalog struct {
	prerequisite string
	entries      []Entry
	packages     []Package
	index        map[string]position
}

var loadDefault = sync.OnceValue(func() *Catalog {
	c, err := Load(bytes.NewReader(embedded))
	if err != nil {
		panic("catalog: embedded catalog is invalid: " + err.Error())
	}
	return c
})

// Default returns the process-wide catalog built from the embedded definition.
func Default() *Catalog {
	return loadDefault()
}

// Prerequisite returns the id of the item that requiresWebsite entries depend on.
func (c *Catalog) Prerequisite() string {
	return c.prerequisite
}

// Entries returns the top-level entries in display order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Packages returns the fixed plans in display order.
func (c *Catalog) Packages() []Package {
	out := make([]Package, len(c.packages))
	copy(out, c.packages)
	return out
}

// Package looks up a fixed plan by id.
func (c *Catalog) Package(id string) (Package, bool) {
	for _, p := range c.packages {
		if p.ID == id {
			return p, true
		}
	}
	return Package{}, false
}

// Kind classifies id. Unknown ids return KindUnknown rather than failing.
func (c *Catalog) Kind(id string) Kind {
	pos, ok := c.index[id]
	switch {
	case !ok:
		return KindUnknown
	case pos.sub >= 0:
		return KindSubService
	case c.entries[pos.entry].IsBundle():
		return KindBundle
	default:
		return KindItem
	}
}

// Entry returns the top-level entry with the given id.
func (c *Catalog) Entry(id string) (Entry, bool) {
	pos, ok := c.index[id]
	if !ok || pos.sub >= 0 {
		return Entry{}, false
	}
	return c.entries[pos.entry], true
}

// SubService returns the sub-service with the given id and its bundle.
func (c *Catalog) SubService(id string) (SubService, Entry, bool) {
	pos, ok := c.index[id]
	if !ok || pos.sub < 0 {
		return SubService{}, Entry{}, false
	}
	bundle := c.entries[pos.entry]
	return bundle.SubServices[pos.sub], bundle, true
}

// Owner returns the top-level entry that owns id: the entry itself for flat
// items and bundles, the enclosing bundle for sub-services.
func (c *Catalog) Owner(id string) (Entry, bool) {
	pos, ok := c.index[id]
	if !ok {
		return Entry{}, false
	}
	return c.entries[pos.entry], true
}

// RequiresWebsite reports whether id's owning entry depends on the prerequisite.
func (c *Catalog) RequiresWebsite(id string) bool {
	owner, ok := c.Owner(id)
	return ok && owner.RequiresWebsite
}

// WebsiteDependents lists every selectable id (flat items and sub-services)
// whose owning entry requires the prerequisite.
func (c *Catalog) WebsiteDependents() []string {
	var ids []string
	for _, e := range c.entries {
		if !e.RequiresWebsite {
			continue
		}
		if e.IsBundle() {
			ids = append(ids, e.SubIDs()...)
			continue
		}
		ids = append(ids, e.ID)
	}
	return ids
}

// Name returns the display name for id, or id itself when unknown.
func (c *Catalog) Name(id string) string {
	pos, ok := c.index[id]
	if !ok {
		return id
	}
	e := c.entries[pos.entry]
	if pos.sub >= 0 {
		return e.SubServices[pos.sub].Name
	}
	return e.Name
}

// Selectable lists every id that can be stored in a selection, in display order.
func (c *Catalog) Selectable() []string {
	var ids []string
	for _, e := range c.entries {
		if e.IsBundle() {
			ids = append(ids, e.SubIDs()...)
			continue
		}
		ids = append(ids, e.ID)
	}
	return ids
}
