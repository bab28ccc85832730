package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func HomePage(p Page) g.Node {
	return Layout(
		PageConfig{APIBaseURL: p.APIBaseURL},
		Hero(),
		Main(
			StoryPanels(p),
			Demo(),
			Configurator(p),
			Contact(p),
		),
		Footer(
			Class("footer"),
			Logo(),
			P(g.Text("The Effortless Flow • Siargao Island")),
		),
	)
}
