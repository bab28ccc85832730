package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
)

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List every service and package",
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
			out, err := a.output()
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out == outputJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(quote.NewCatalogView(cat))
			}

			st := newStyles(a.noColor())
			fmt.Fprintln(w, st.Title.Render("Services"))

			table := tablewriter.NewWriter(w)
			table.Header("ID", "Name", "Kind", "Price", "Notes")
			for _, e := range cat.Entries() {
				if !e.IsBundle() {
					billing := "/mo"
					if e.OneTime {
						billing = " one-time"
					}
					if err := table.Append(e.ID, e.Name, "item", currency.Format(e.Price, code)+billing, entryNotes(e.RequiresWebsite, e.HasSetupFee(), currency.Format(e.SetupFee, code))); err != nil {
						return err
					}
					continue
				}

				kind := "bundle"
				if e.DynamicPricing {
					kind = "bundle (volume)"
				}
				if err := table.Append(e.ID, e.Name, kind, "", entryNotes(e.RequiresWebsite, e.HasSetupFee(), currency.Format(e.SetupFee, code))); err != nil {
					return err
				}
				for _, s := range e.SubServices {
					price := currency.Format(configurator.UnitPrice(e, s, 1), code) + "/mo"
					if err := table.Append("  "+s.ID, "  "+s.Name, "sub-service", price, ""); err != nil {
						return err
					}
				}
			}
			if err := table.Render(); err != nil {
				return err
			}

			fmt.Fprintln(w)
			fmt.Fprintln(w, st.Title.Render("Packages"))
			packages := tablewriter.NewWriter(w)
			packages.Header("ID", "Name", "Price", "Features")
			for _, p := range cat.Packages() {
				name := p.Name
				if p.Popular {
					name += " ★"
				}
				if err := packages.Append(p.ID, name, currency.Format(p.Price, code)+"/mo", fmt.Sprintf("%d", len(p.Features))); err != nil {
					return err
				}
			}
			return packages.Render()
		},
	}
}

func entryNotes(requiresWebsite, hasSetupFee bool, setupFee string) string {
	switch {
	case requiresWebsite && hasSetupFee:
		return "needs website, " + setupFee + " setup"
	case requiresWebsite:
		return "needs website"
	case hasSetupFee:
		return setupFee + " setup"
	}
	return ""
}
