package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/GitDDAN/padel-palms-proposal/domain/assistant"
	"github.com/GitDDAN/padel-palms-proposal/domain/imagegen"
)

// Demo hosts the live AI widgets. The scripts under /static/js drive them
// against the backend.
func Demo() g.Node {
	return Section(
		ID("demo"),
		Class("demo"),
		H2(g.Text("Try It Yourself")),
		Div(
			Class("demo-grid"),
			chatWidget(),
			voiceWidget(),
			imageWidget(),
		),
	)
}

func chatWidget() g.Node {
	return Div(
		Class("demo-card"),
		ID("chat"),
		H3(g.Text("AI Receptionist: Chat")),
		Div(
			Class("chat-log"),
			ID("chat-log"),
			g.Attr("aria-live", "polite"),
			Div(Class("chat-message chat-model"), g.Text(assistant.Greeting)),
		),
		Div(
			Class("quick-actions"),
			g.Group(g.Map(assistant.QuickActions, func(q string) g.Node {
				return Button(Type("button"), Class("btn btn-chip"), g.Attr("data-quick", q), g.Text(q))
			})),
		),
		Form(
			ID("chat-form"),
			Class("chat-form"),
			Input(Type("text"), Name("message"), MaxLength("4000"), Placeholder("Ask about courts, villas, surf..."), AutoComplete("off"), Required()),
			Button(Type("submit"), Class("btn"), g.Text("Send")),
		),
	)
}

func voiceWidget() g.Node {
	return Div(
		Class("demo-card"),
		ID("voice"),
		H3(g.Text("AI Receptionist: Voice")),
		P(g.Text("Talk to the concierge the way a guest would. Allow microphone access when asked.")),
		P(Class("voice-status"), ID("voice-status"), g.Attr("data-state", "idle"), g.Text("Ready")),
		Button(Type("button"), ID("voice-toggle"), Class("btn btn-primary"), g.Text("Start call")),
	)
}

func imageWidget() g.Node {
	return Div(
		Class("demo-card"),
		ID("images"),
		H3(g.Text("Brand Engine: Event Posters")),
		Form(
			ID("image-form"),
			Class("image-form"),
			Label(For("image-name"), g.Text("Event name")),
			Input(ID("image-name"), Type("text"), Name("eventName"), Placeholder("Sunset Padel Cup"), Required()),
			Label(For("image-sub"), g.Text("Tagline")),
			Input(ID("image-sub"), Type("text"), Name("subSubject"), Placeholder("Doubles • All levels")),
			Div(
				Class("form-row"),
				Div(Label(For("image-date"), g.Text("Date")), Input(ID("image-date"), Type("date"), Name("date"))),
				Div(Label(For("image-time"), g.Text("Time")), Input(ID("image-time"), Type("time"), Name("time"))),
			),
			Label(For("image-type"), g.Text("Event type")),
			Select(ID("image-type"), Name("eventType"), options(imagegen.EventTypes)),
			Label(For("image-style"), g.Text("Photo style")),
			Select(ID("image-style"), Name("photoStyle"), options(imagegen.PhotoStyles)),
			Button(Type("submit"), Class("btn btn-primary"), g.Text("Generate poster")),
		),
		Div(Class("image-result"), ID("image-result"), g.Attr("aria-live", "polite")),
	)
}

func options(opts []imagegen.Option) g.Node {
	return g.Group(g.Map(opts, func(o imagegen.Option) g.Node {
		return Option(Value(o.Value), g.Text(o.Label))
	}))
}
