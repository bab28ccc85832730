// Package cmd implements the pandp operator CLI.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/currency"
)

const (
	outputTable = "table"
	outputJSON  = "json"
)

// app carries the settings shared by every subcommand.
type app struct {
	v *viper.Viper
}

// NewRootCommand builds a fresh command tree. Each call gets its own viper
// instance so tests do not share flag state.
func NewRootCommand() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "pandp",
		Short: "Padel & Palms pricing tool",
		Long: `Operator CLI for the Padel & Palms service catalog.

Lists the catalog and the currency table, and prices a selection using the
same toggle rules as the website configurator.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default is $HOME/.pandp.yaml)")
	flags.String("catalog", "", "catalog YAML file (default is the built-in catalog)")
	flags.String("currency", "USD", "display currency ("+strings.Join(currency.Codes(), ", ")+")")
	flags.StringP("output", "o", outputTable, "output format (table, json)")
	flags.Bool("no-color", false, "disable colored output")

	for _, name := range []string{"config", "catalog", "currency", "output", "no-color"} {
		_ = a.v.BindPFlag(name, flags.Lookup(name))
	}

	root.AddCommand(
		newCatalogCmd(a),
		newQuoteCmd(a),
		newConfigureCmd(a),
		newCurrenciesCmd(a),
		newVersionCmd(),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCommand().Execute()
}

func (a *app) initConfig() error {
	if file := a.v.GetString("config"); file != "" {
		a.v.SetConfigFile(file)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			a.v.AddConfigPath(home)
		}
		a.v.SetConfigType("yaml")
		a.v.SetConfigName(".pandp")
	}

	a.v.SetEnvPrefix("PANDP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && a.v.GetString("config") != "" {
			return fmt.Errorf("reading config: %w", err)
		}
	}
	return nil
}

func (a *app) catalog() (*catalog.Catalog, error) {
	path := a.v.GetString("catalog")
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	defer f.Close()
	return catalog.Load(f)
}

func (a *app) currency() (string, error) {
	c, ok := currency.Lookup(a.v.GetString("currency"))
	if !ok {
		return "", fmt.Errorf("unsupported currency %q (use one of %s)", a.v.GetString("currency"), strings.Join(currency.Codes(), ", "))
	}
	return c.Code, nil
}

func (a *app) output() (string, error) {
	switch out := strings.ToLower(a.v.GetString("output")); out {
	case outputTable, outputJSON:
		return out, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use table or json)", out)
	}
}

func (a *app) noColor() bool {
	return a.v.GetBool("no-color")
}
