package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/daily-sales/internal/catalog"
)

// showPrices adds the unit price to every catalog line.
var showPrices bool

// catalogCmd lists the products that can be sold.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the products on sale",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCatalog(cmd)
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)

	catalogCmd.Flags().BoolVar(&showPrices, "prices", false, "Show unit prices")
}

func runCatalog(cmd *cobra.Command) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	products, err := catalog.Load(a.cfg.CatalogFile)
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}

	out := cmd.OutOrStdout()
	for _, p := range products.Products() {
		if showPrices {
			fmt.Fprintf(out, "%s – %s – %s\n", p.ID, p.Name, a.gen.FormatPrice(p.UnitPrice))
			continue
		}
		fmt.Fprintf(out, "%s – %s\n", p.ID, p.Name)
	}

	a.log.Debug().Str("source", products.Source()).Int("products", products.Len()).Msg("catalog listed")
	return nil
}
