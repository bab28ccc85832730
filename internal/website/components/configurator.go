package components

import (
	"github.com/shopspring/decimal"
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
)

const configuratorAction = "/configurator#configurator"

// actionForm posts one configurator event carrying the current state.
func actionForm(p Page, action, id string, children ...g.Node) g.Node {
	return Form(
		Method("post"),
		Action(configuratorAction),
		Class("inline-form"),
		hidden("state", p.Token),
		hidden("action", action),
		g.If(id != "", hidden("id", id)),
		g.Group(children),
	)
}

// ToggleButton adds or removes one service. Story panels and the
// configurator share it.
func ToggleButton(p Page, id, label string) g.Node {
	selected := p.State.Selection.Has(id)
	text, class := "Add to package", "btn btn-add"
	if selected {
		text, class = "Added ✓", "btn btn-added"
	}
	if label != "" && !selected {
		text = label
	}
	return actionForm(p, "toggle", id,
		Button(Type("submit"), Class(class), g.Attr("aria-pressed", boolString(selected)), g.Text(text)),
	)
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Configurator is the package builder: fixed packages, service cards,
// totals and currency.
func Configurator(p Page) g.Node {
	return Section(
		ID("configurator"),
		Class("configurator"),
		H2(g.Text("Build Your Package")),
		g.If(p.ConfigError != "", P(Class("field-error"), g.Attr("role", "alert"), g.Text(p.ConfigError))),
		Div(
			Class("configurator-grid"),
			Div(
				Class("configurator-services"),
				g.If(p.State.Selection.IsEmpty(), packages(p)),
				g.Group(g.Map(p.Catalog.Entries(), func(e catalog.Entry) g.Node {
					return serviceCard(p, e)
				})),
			),
			Aside(
				Class("configurator-summary"),
				Totals(p),
			),
		),
	)
}

func packages(p Page) g.Node {
	code := p.Quote.Currency
	return Div(
		Class("packages"),
		H3(g.Text("Start from a package")),
		g.Group(g.Map(p.Catalog.Packages(), func(pkg catalog.Package) g.Node {
			chosen := p.State.Package == pkg.ID
			class := "package-card"
			if chosen {
				class += " package-chosen"
			}
			return Div(
				Class(class),
				g.If(pkg.Popular, Badge("popular", "Most popular")),
				H4(g.Text(pkg.Name)),
				P(Class("price"), g.Text(currency.Format(pkg.Price, code)), Small(g.Text("/mo"))),
				Ul(g.Group(g.Map(pkg.Features, func(f string) g.Node { return Li(g.Text(f)) }))),
				g.If(!chosen, actionForm(p, "package", pkg.ID, Button(Type("submit"), Class("btn"), g.Text("Choose")))),
			)
		})),
		P(Class("hint"), g.Text("Or pick individual services below for a custom quote.")),
	)
}

func serviceCard(p Page, e catalog.Entry) g.Node {
	code := p.Quote.Currency
	needsWebsite := configurator.NeedsPrerequisite(p.Catalog, e, p.State.Selection)

	header := Div(
		Class("service-header"),
		H4(g.Text(e.Name)),
		g.If(needsWebsite, Badge("needs-website", "Needs website")),
	)

	if !e.IsBundle() {
		price := currency.Format(e.Price, code)
		suffix := "/mo"
		if e.OneTime {
			suffix = " one-time"
		}
		return Div(
			Class("service-card"),
			ID("service-"+e.ID),
			header,
			P(Class("service-description"), g.Text(e.Description)),
			P(Class("price"), g.Text(price), Small(g.Text(suffix))),
			g.If(e.HasSetupFee(), P(Class("setup-fee"), g.Textf("+ %s setup fee", currency.Format(e.SetupFee, code)))),
			ToggleButton(p, e.ID, ""),
			noteField(p, e.ID),
		)
	}

	state := configurator.StateOf(e, p.State.Selection)
	selectAll := "Select all"
	if state == configurator.BundleFull {
		selectAll = "Remove all"
	}
	selected := p.State.Selection.CountOf(e.SubIDs()...)

	return Div(
		Class("service-card bundle"),
		ID("service-"+e.ID),
		header,
		P(Class("service-description"), g.Text(e.Description)),
		g.If(e.DynamicPricing, P(Class("hint volume-hint"), Strong(g.Text("Volume Discount: ")), g.Text(quote.VolumeHint(e, code)))),
		actionForm(p, "toggle", e.ID, Button(Type("submit"), Class("btn btn-bundle"), g.Text(selectAll))),
		Ul(
			Class("sub-services"),
			g.Group(g.Map(e.SubServices, func(s catalog.SubService) g.Node {
				count := selected
				if !p.State.Selection.Has(s.ID) {
					count++
				}
				return Li(
					Class("sub-service"),
					Div(
						Span(Class("sub-name"), g.Text(s.Name)),
						Span(Class("price"), g.Text(currency.Format(configurator.UnitPrice(e, s, count), code)), Small(g.Text("/mo"))),
					),
					g.If(s.Description != "", P(Class("service-description"), g.Text(s.Description))),
					ToggleButton(p, s.ID, ""),
					noteField(p, s.ID),
				)
			})),
		),
		g.If(e.HasSetupFee(), P(Class("setup-fee"), g.Textf("+ %s setup fee", currency.Format(e.SetupFee, code)))),
	)
}

// noteField lets the buyer add requirements for a selected service.
func noteField(p Page, id string) g.Node {
	if !p.State.Selection.Has(id) {
		return nil
	}
	return actionForm(p, "note", id,
		Label(For("note-"+id), Class("note-label"), g.Text("Notes")),
		Textarea(
			ID("note-"+id),
			Name("text"),
			Rows("2"),
			MaxLength("1000"),
			Placeholder("Anything we should know? e.g. number of villas, languages..."),
			g.Text(p.State.Notes[id]),
		),
		Button(Type("submit"), Class("btn btn-small"), g.Text("Save note")),
	)
}

// Totals shows the running price, the currency picker and reset.
func Totals(p Page) g.Node {
	q := p.Quote
	return Div(
		Class("totals"),
		ID("totals"),
		H3(g.Text("Your Investment")),
		Div(
			Class("total-monthly"),
			Span(Class("total-amount"), g.Text(q.MonthlyDisplay)),
			Small(g.Text("/month")),
		),
		g.If(q.Package != "", P(Class("hint"), g.Textf("%s package", packageName(p, q.Package)))),
		g.If(q.OneTime.GreaterThan(decimal.Zero), Div(
			Class("total-onetime"),
			Span(Class("total-amount"), g.Text("+ "+q.OneTimeDisplay)),
			P(Class("hint"), g.Text(q.OneTimeCaption)),
		)),
		actionForm(p, "currency", "",
			Label(For("currency"), g.Text("Currency")),
			Select(
				ID("currency"),
				Name("currency"),
				g.Group(g.Map(currency.All(), func(c currency.Currency) g.Node {
					return Option(Value(c.Code), g.If(c.Code == q.Currency, Selected()), g.Textf("%s (%s)", c.Code, c.Symbol))
				})),
			),
			Button(Type("submit"), Class("btn btn-small"), g.Text("Update")),
		),
		g.If(!p.State.Selection.IsEmpty(), actionForm(p, "reset", "",
			Button(Type("submit"), Class("btn btn-link"), g.Text("Start over")),
		)),
	)
}

func packageName(p Page, id string) string {
	if pkg, ok := p.Catalog.Package(id); ok {
		return pkg.Name
	}
	return id
}
