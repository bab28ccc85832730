package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
	"github.com/GitDDAN/padel-palms-proposal/internal/tui"
)

func newConfigureCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Build a package interactively",
		Long:  "Open the interactive package builder. The final quote is printed on exit.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			code, err := a.currency()
			if err != nil {
				return err
			}

			state := configurator.NewState()
			state.Currency = code

			p := tea.NewProgram(tui.New(cat, state), tea.WithAltScreen())
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("TUI error: %w", err)
			}

			m, ok := final.(tui.Model)
			if !ok {
				return nil
			}
			return renderQuote(cmd.OutOrStdout(), cat, quote.Build(cat, m.State()), newStyles(a.noColor()))
		},
	}
}
