package catalog

import (
	"errors"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

type document struct {
	Prerequisite string       `yaml:"prerequisite"`
	Packages     []packageDoc `yaml:"packages"`
	Entries      []entryDoc   `yaml:"entries"`
}

type packageDoc struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Price    float64  `yaml:"price"`
	Popular  bool     `yaml:"popular"`
	Features []string `yaml:"features"`
}

type entryDoc struct {
	ID              string   `yaml:"id"`
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Category        string   `yaml:"category"`
	Panel           string   `yaml:"panel"`
	Price           *float64 `yaml:"price"`
	OneTime         bool     `yaml:"oneTime"`
	SetupFee        *float64 `yaml:"setupFee"`
	RequiresWebsite bool     `yaml:"requiresWebsite"`
	DynamicPricing  bool     `yaml:"dynamicPricing"`
	SubServices     []subDoc `yaml:"subServices"`
}

type subDoc struct {
	ID            string          `yaml:"id"`
	Name          string          `yaml:"name"`
	Description   string          `yaml:"description"`
	Price         *float64        `yaml:"price"`
	BasePrice     *float64        `yaml:"basePrice"`
	PricePerCount map[int]float64 `yaml:"pricePerCount"`
}

// Load parses a YAML catalog definition and validates it. A dynamic-pricing
// bundle missing a tier for any count 1..N is rejected here, so pricing never
// has to guess at runtime.
func Load(r io.Reader) (*Catalog, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding catalog: %w", err)
	}

	if err := doc.validate(); err != nil {
		return nil, err
	}

	return doc.build(), nil
}

func (d *document) validate() error {
	var errs []error
	seen := make(map[string]bool)

	claim := func(id, where string) {
		if id == "" {
			errs = append(errs, fmt.Errorf("%s: id is required", where))
			return
		}
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %q", where, id))
		}
		seen[id] = true
	}
	nonNegative := func(v *float64, what string) {
		if v != nil && *v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative", what))
		}
	}

	prereq := d.prerequisite()
	needsPrereq := false

	for i, e := range d.Entries {
		where := fmt.Sprintf("entry %d (%s)", i, e.ID)
		claim(e.ID, where)
		nonNegative(e.Price, where+" price")
		nonNegative(e.SetupFee, where+" setupFee")
		if e.RequiresWebsite {
			needsPrereq = true
		}

		if len(e.SubServices) == 0 {
			if e.DynamicPricing {
				errs = append(errs, fmt.Errorf("%s: dynamicPricing needs sub-services", where))
			}
			continue
		}

		if e.Price != nil || e.OneTime || e.SetupFee != nil {
			errs = append(errs, fmt.Errorf("%s: a bundle cannot carry its own price, oneTime or setupFee", where))
		}

		n := len(e.SubServices)
		for _, s := range e.SubServices {
			subWhere := fmt.Sprintf("%s sub-service %q", where, s.ID)
			claim(s.ID, subWhere)
			nonNegative(s.Price, subWhere+" price")
			nonNegative(s.BasePrice, subWhere+" basePrice")

			if !e.DynamicPricing {
				if s.Price == nil {
					errs = append(errs, fmt.Errorf("%s: flat bundle sub-service needs a price", subWhere))
				}
				continue
			}

			if s.Price != nil {
				errs = append(errs, fmt.Errorf("%s: use basePrice and pricePerCount, not price", subWhere))
			}
			for count := 1; count <= n; count++ {
				price, ok := s.PricePerCount[count]
				if !ok {
					errs = append(errs, fmt.Errorf("%s: missing pricePerCount for %d selected", subWhere, count))
					continue
				}
				if price < 0 {
					errs = append(errs, fmt.Errorf("%s: pricePerCount[%d] must not be negative", subWhere, count))
				}
			}
		}
	}

	if needsPrereq {
		found := false
		for _, e := range d.Entries {
			if e.ID != prereq {
				continue
			}
			found = true
			if len(e.SubServices) > 0 || e.RequiresWebsite {
				errs = append(errs, fmt.Errorf("prerequisite %q must be a flat item without prerequisites", prereq))
			}
		}
		if !found {
			errs = append(errs, fmt.Errorf("prerequisite %q is not in the catalog", prereq))
		}
	}

	for i, p := range d.Packages {
		if p.ID == "" {
			errs = append(errs, fmt.Errorf("package %d: id is required", i))
		}
		if p.Price < 0 {
			errs = append(errs, fmt.Errorf("package %q: price must not be negative", p.ID))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

func (d *document) prerequisite() string {
	if d.Prerequisite == "" {
		return DefaultPrerequisite
	}
	return d.Prerequisite
}

func (d *document) build() *Catalog {
	c := &Catalog{
		prerequisite: d.prerequisite(),
		index:        make(map[string]position),
	}

	for _, p := range d.Packages {
		c.packages = append(c.packages, Package{
			ID:       p.ID,
			Name:     p.Name,
			Price:    decimal.NewFromFloat(p.Price),
			Features: p.Features,
			Popular:  p.Popular,
		})
	}

	for i, ed := range d.Entries {
		e := Entry{
			ID:              ed.ID,
			Name:            ed.Name,
			Description:     ed.Description,
			Category:        ed.Category,
			Panel:           ed.Panel,
			Price:           orZero(ed.Price),
			OneTime:         ed.OneTime,
			SetupFee:        orZero(ed.SetupFee),
			RequiresWebsite: ed.RequiresWebsite,
			DynamicPricing:  ed.DynamicPricing,
		}
		if e.Category == "" {
			e.Category = e.Name
		}
		if e.Category == "" {
			e.Category = e.ID
		}
		c.index[e.ID] = position{entry: i, sub: -1}

		for j, sd := range ed.SubServices {
			s := SubService{
				ID:          sd.ID,
				Name:        sd.Name,
				Description: sd.Description,
				Price:       nullable(sd.Price),
				BasePrice:   nullable(sd.BasePrice),
			}
			if len(sd.PricePerCount) > 0 {
				s.PricePerCount = make(map[int]decimal.Decimal, len(sd.PricePerCount))
				for n, p := range sd.PricePerCount {
					s.PricePerCount[n] = decimal.NewFromFloat(p)
				}
			}
			e.SubServices = append(e.SubServices, s)
			c.index[s.ID] = position{entry: i, sub: j}
		}

		c.entries = append(c.entries, e)
	}

	return c
}

func orZero(v *float64) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return decimal.NewFromFloat(*v)
}

func nullable(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}
