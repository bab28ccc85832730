// Package tui is the terminal package builder behind `pandp configure`.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
)

// row is one selectable line. Bundle rows toggle every sub-service.
type row struct {
	id     string
	name   string
	indent bool
	bundle *catalog.Entry
}

// KeyMap defines keybindings
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Currency key.Binding
	Reset    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "move down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "x", "enter"),
			key.WithHelp("space", "add/remove"),
		),
		Currency: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "next currency"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "start over"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "done"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Currency, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle},
		{k.Currency, k.Reset},
		{k.Help, k.Quit},
	}
}

var (
	titleStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	totalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// Model is the bubbletea model for the package builder.
type Model struct {
	cat    *catalog.Catalog
	rows   []row
	cursor int
	state  configurator.State
	err    error

	keyMap KeyMap
	help   help.Model
}

// New builds a model starting from state.
func New(cat *catalog.Catalog, state configurator.State) Model {
	return Model{
		cat:    cat,
		rows:   buildRows(cat),
		state:  state,
		keyMap: DefaultKeyMap(),
		help:   help.New(),
	}
}

func buildRows(cat *catalog.Catalog) []row {
	var rows []row
	for _, e := range cat.Entries() {
		if !e.IsBundle() {
			rows = append(rows, row{id: e.ID, name: e.Name})
			continue
		}
		bundle := e
		rows = append(rows, row{id: e.ID, name: e.Name, bundle: &bundle})
		for _, s := range e.SubServices {
			rows = append(rows, row{id: s.ID, name: s.Name, indent: true})
		}
	}
	return rows
}

// State is the configuration so far.
func (m Model) State() configurator.State {
	return m.state
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keyMap.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keyMap.Help):
			m.help.ShowAll = !m.help.ShowAll

		case key.Matches(msg, m.keyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}

		case key.Matches(msg, m.keyMap.Down):
			if m.cursor < len(m.rows)-1 {
				m.cursor++
			}

		case key.Matches(msg, m.keyMap.Toggle):
			if len(m.rows) > 0 {
				m.apply(configurator.Event{Type: configurator.EventToggle, ID: m.rows[m.cursor].id})
			}

		case key.Matches(msg, m.keyMap.Currency):
			m.apply(configurator.Event{Type: configurator.EventCurrency, Currency: nextCurrency(m.state.Currency)})

		case key.Matches(msg, m.keyMap.Reset):
			m.apply(configurator.Event{Type: configurator.EventReset})
		}
	}
	return m, nil
}

func (m *Model) apply(ev configurator.Event) {
	next, err := configurator.Apply(m.cat, m.state, ev)
	m.err = err
	if err == nil {
		m.state = next
	}
}

func nextCurrency(code string) string {
	codes := currency.Codes()
	for i, c := range codes {
		if c == code {
			return codes[(i+1)%len(codes)]
		}
	}
	return codes[0]
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder
	code := m.state.Currency

	b.WriteString(titleStyle.Render("Padel & Palms · Build your package"))
	b.WriteString("\n\n")

	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}

		var mark, price string
		if r.bundle != nil {
			switch configurator.StateOf(*r.bundle, m.state.Selection) {
			case configurator.BundleFull:
				mark = "[x]"
			case configurator.BundlePartial:
				mark = "[~]"
			default:
				mark = "[ ]"
			}
			if r.bundle.DynamicPricing {
				price = mutedStyle.Render(quote.VolumeHint(*r.bundle, code))
			}
		} else {
			mark = "[ ]"
			if m.state.Selection.Has(r.id) {
				mark = "[x]"
			}
			price = m.unitPrice(r.id)
		}

		indent := ""
		if r.indent {
			indent = "    "
		}
		line := fmt.Sprintf("%s%s %s", indent, mark, r.name)
		if mark == "[x]" {
			line = selectedStyle.Render(line)
		}
		b.WriteString(cursor + line)
		if price != "" {
			b.WriteString("  " + price)
		}
		b.WriteString("\n")
	}

	q := quote.Build(m.cat, m.state)
	b.WriteString("\n")
	if q.Package != "" {
		if p, ok := m.cat.Package(q.Package); ok {
			b.WriteString(mutedStyle.Render(p.Name+" package") + "\n")
		}
	}
	b.WriteString(totalStyle.Render(fmt.Sprintf("Monthly: %s/month", q.MonthlyDisplay)) + "\n")
	if q.OneTime.IsPositive() {
		b.WriteString(totalStyle.Render("One-time: "+q.OneTimeDisplay) + "  " + mutedStyle.Render(q.OneTimeCaption) + "\n")
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keyMap))
	return b.String()
}

func (m Model) unitPrice(id string) string {
	code := m.state.Currency
	if e, ok := m.cat.Entry(id); ok {
		if e.OneTime {
			return currency.Format(e.Price, code) + " one-time"
		}
		return currency.Format(e.Price, code) + "/mo"
	}
	s, owner, ok := m.cat.SubService(id)
	if !ok {
		return ""
	}
	count := m.state.Selection.CountOf(owner.SubIDs()...)
	if !m.state.Selection.Has(id) {
		count++
	}
	return currency.Format(configurator.UnitPrice(owner, s, count), code) + "/mo"
}
