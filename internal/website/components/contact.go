package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
)

// Contact is the order form. It carries the configurator state so the
// submission matches what the buyer sees.
func Contact(p Page) g.Node {
	return Section(
		ID("contact"),
		Class("contact"),
		H2(g.Text("Let's Talk")),
		g.Iff(p.Outcome != nil && p.Outcome.Success, func() g.Node { return outcome(p.Outcome) }),
		g.If(p.Outcome == nil || !p.Outcome.Success, Div(
			g.Iff(p.Outcome != nil, func() g.Node { return outcome(p.Outcome) }),
			orderSummary(p),
			Form(
				Method("post"),
				Action("/order#contact"),
				Class("contact-form"),
				g.Attr("novalidate"),
				hidden("state", p.Token),
				field("email", "Email", "email", p.Contact.Email, p.FieldErrors, true),
				field("phone", "Phone / WhatsApp", "tel", p.Contact.Phone, p.FieldErrors, true),
				field("name", "Your name", "text", p.Contact.Name, p.FieldErrors, false),
				field("resort", "Resort", "text", p.Contact.Resort, p.FieldErrors, false),
				Button(Type("submit"), Class("btn btn-primary"), g.Text("Send my package")),
			),
		)),
	)
}

func field(name, label, kind, value string, errors map[string]string, required bool) g.Node {
	_, invalid := errors[name]
	return Div(
		Class("field"),
		Label(For("contact-"+name), g.Text(label)),
		Input(
			ID("contact-"+name),
			Type(kind),
			Name(name),
			Value(value),
			g.If(required, Required()),
			g.If(invalid, g.Attr("aria-invalid", "true")),
		),
		fieldError(errors, name),
	)
}

func outcome(o *OrderOutcome) g.Node {
	class := "outcome outcome-error"
	if o.Success {
		class = "outcome outcome-success"
	}
	return Div(Class(class), g.Attr("role", "status"), g.Text(o.Message))
}

func orderSummary(p Page) g.Node {
	if p.State.Selection.IsEmpty() {
		return P(Class("hint"), g.Textf("No custom services picked. We'll start from the %s package.", packageName(p, p.State.Package)))
	}
	groups := configurator.Summarize(p.Catalog, p.State)
	return Div(
		Class("order-summary"),
		g.Group(g.Map(groups, func(grp configurator.CategoryGroup) g.Node {
			return Div(
				H4(g.Text(grp.Category)),
				Ul(g.Group(g.Map(grp.Items, func(it configurator.SummaryItem) g.Node {
					return Li(
						g.Text(it.Name),
						g.If(it.Notes != "", Em(g.Text(" · "+it.Notes))),
					)
				}))),
			)
		})),
		P(Class("summary-total"), g.Textf("%s/month", p.Quote.MonthlyDisplay)),
	)
}
