package cmd

import (
	"encoding/json"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
)

type currencyRow struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
	Rate   string `json:"rate"`
}

func newCurrenciesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "currencies",
		Short: "Show the display currencies and their USD rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := a.output()
			if err != nil {
				return err
			}

			all := currency.All()
			rows := make([]currencyRow, len(all))
			for i, c := range all {
				rows[i] = currencyRow{Code: c.Code, Name: c.Name, Symbol: c.Symbol, Rate: c.Rate.String()}
			}

			w := cmd.OutOrStdout()
			if out == outputJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rows)
			}

			table := tablewriter.NewWriter(w)
			table.Header("Code", "Name", "Symbol", "Per USD")
			for _, r := range rows {
				if err := table.Append(r.Code, r.Name, r.Symbol, r.Rate); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}
