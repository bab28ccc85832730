package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

func Logo() g.Node {
	return Span(
		Class("logo"),
		g.Text("Padel"),
		Span(Class("logo-amp"), g.Text(" & ")),
		g.Text("Palms"),
	)
}

// HandwrittenNote is the scribbled aside at the top of each story panel.
func HandwrittenNote(text string) g.Node {
	return P(Class("note-handwritten"), g.Text(text))
}

// Badge renders a small pill label.
func Badge(kind, text string) g.Node {
	return Span(Class("badge badge-"+kind), g.Text(text))
}

// hidden carries a form value the buyer does not edit.
func hidden(name, value string) g.Node {
	return Input(Type("hidden"), Name(name), Value(value))
}

func fieldError(errors map[string]string, field string) g.Node {
	msg, ok := errors[field]
	if !ok {
		return nil
	}
	return P(Class("field-error"), g.Attr("role", "alert"), g.Text(msg))
}
