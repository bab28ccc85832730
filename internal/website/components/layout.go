package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

type PageConfig struct {
	Title       string
	Description string
	// APIBaseURL is exposed to the demo scripts.
	APIBaseURL string
}

func Layout(config PageConfig, content ...g.Node) g.Node {
	if config.Title == "" {
		config.Title = "Padel & Palms - The Effortless Flow"
	}

	if config.Description == "" {
		config.Description = "Booking automation, guest engagement and AI-powered support for Padel & Palms, Siargao."
	}

	return g.Group([]g.Node{
		g.Raw("<!DOCTYPE html>"),
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1.0")),
				TitleEl(g.Text(config.Title)),
				Meta(Name("description"), Content(config.Description)),

				Meta(g.Attr("property", "og:title"), Content(config.Title)),
				Meta(g.Attr("property", "og:description"), Content(config.Description)),
				Meta(g.Attr("property", "og:type"), Content("website")),

				Link(Rel("stylesheet"), Href("/static/styles.css")),
			),
			Body(
				g.Attr("data-api", config.APIBaseURL),
				g.Group(content),

				Script(Src("/static/js/chat.js")),
				Script(Src("/static/js/images.js")),
				Script(Src("/static/js/voice.js")),
			),
		),
	})
}
