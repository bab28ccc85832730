package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
)

func newQuoteCmd(a *app) *cobra.Command {
	var pkg string

	cmd := &cobra.Command{
		Use:   "quote [ids...]",
		Short: "Price a selection",
		Long: `Price a selection by clicking each id in order, starting from nothing.

Ids may be services, sub-services or bundles. Clicking a bundle selects all of
its services; clicking it again removes them. Services that need the website
add it, and removing the website removes them.`,
		Example: `  pandp quote booking-automation
  pandp quote ai-receptionist content --currency PHP
  pandp quote --package enterprise -o json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.catalog()
			if err != nil {
				return err
			}
			code, err := a.currency()
			if err != nil {
				return err
			}
			out, err := a.output()
			if err != nil {
				return err
			}
			if _, ok := cat.Package(pkg); !ok && len(cat.Packages()) > 0 {
				return fmt.Errorf("unknown package %q", pkg)
			}

			state := configurator.NewState()
			state.Currency = code
			state.Package = pkg
			state.Selection = configurator.ToggleAll(cat, state.Selection, args...)

			q := quote.Build(cat, state)
			w := cmd.OutOrStdout()
			if out == outputJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(q)
			}
			return renderQuote(w, cat, q, newStyles(a.noColor()))
		},
	}

	cmd.Flags().StringVar(&pkg, "package", configurator.DefaultPackage, "fixed package priced when nothing is selected")
	return cmd
}

func renderQuote(w io.Writer, cat *catalog.Catalog, q quote.Quote, st styles) error {
	if len(q.Selection) == 0 {
		p, _ := cat.Package(q.Package)
		fmt.Fprintf(w, "%s %s\n", st.Title.Render("Package:"), p.Name)
		for _, f := range p.Features {
			fmt.Fprintf(w, "  • %s\n", f)
		}
		fmt.Fprintf(w, "%s %s/month\n", st.Total.Render("Monthly:"), q.MonthlyDisplay)
		return nil
	}

	fmt.Fprintln(w, st.Title.Render("Selection"))
	table := tablewriter.NewWriter(w)
	table.Header("ID", "Service", "Billing", "Amount")
	for _, l := range q.Lines {
		if err := table.Append(l.ID, l.Name, string(l.Billing), l.Display); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s/month\n", st.Total.Render("Monthly:"), q.MonthlyDisplay)
	if q.OneTime.IsPositive() {
		fmt.Fprintf(w, "%s %s\n", st.Total.Render("One-time:"), q.OneTimeDisplay)
		fmt.Fprintln(w, st.Muted.Render("  "+q.OneTimeCaption))
	}
	return nil
}
