package notify

import (
	"embed"
	"fmt"

	"github.com/aymerick/raymond"
)

//go:embed templates/*.hbs
var templateFS embed.FS

// Templates renders the submission notification.
type Templates struct {
	html *raymond.Template
	text *raymond.Template
}

// Rendered is a notification ready to send.
type Rendered struct {
	Subject string
	HTML    string
	Text    string
}

// LoadTemplates parses the embedded handlebars templates.
func LoadTemplates() (*Templates, error) {
	html, err := parse("templates/submission.hbs")
	if err != nil {
		return nil, err
	}
	text, err := parse("templates/submission.txt.hbs")
	if err != nil {
		return nil, err
	}
	return &Templates{html: html, text: text}, nil
}

func parse(name string) (*raymond.Template, error) {
	src, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}
	tpl, err := raymond.Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("parsing template %s: %w", name, err)
	}
	return tpl, nil
}

// Render renders form, the submitted JSON object, into a notification.
func (t *Templates) Render(form map[string]any) (*Rendered, error) {
	html, err := t.html.Exec(form)
	if err != nil {
		return nil, fmt.Errorf("rendering html: %w", err)
	}
	text, err := t.text.Exec(form)
	if err != nil {
		return nil, fmt.Errorf("rendering text: %w", err)
	}
	return &Rendered{
		Subject: subject(form),
		HTML:    html,
		Text:    text,
	}, nil
}

func subject(form map[string]any) string {
	contact, _ := form["contact"].(map[string]any)
	for _, key := range []string{"resort", "name", "email"} {
		if v, ok := contact[key].(string); ok && v != "" {
			return "New proposal request from " + v
		}
	}
	return "New proposal request"
}
