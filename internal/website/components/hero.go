package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Hero() g.Node {
	return Header(
		Class("hero"),
		Nav(
			Class("nav"),
			Logo(),
			Ul(
				Li(A(Href("#story"), g.Text("How it works"))),
				Li(A(Href("#demo"), g.Text("Try the AI"))),
				Li(A(Href("#configurator"), g.Text("Pricing"))),
			),
		),
		Div(
			Class("hero-content"),
			P(Class("eyebrow"), g.Text("Siargao Island • Philippines")),
			H1(
				g.Text("Padel & Palms: "),
				Span(Class("accent"), g.Text("Your Complete Automation Solution")),
			),
			P(
				Class("lead"),
				g.Text("Transform your resort operations with seamless booking automation, guest engagement, and AI-powered support. "),
				g.Text("Spend less time on admin and more time on the court."),
			),
			A(Href("#story"), Class("btn btn-primary"), g.Text("See How It Works")),
		),
	)
}
