// =============================================================================
// Daily Sales - Sell Command
// =============================================================================
//
// This file defines the 'sell' command, which registers one sale in today's
// session.
//
// COMMAND USAGE:
//   dailysales sell <product-id> --payment cash|transfer [flags]
//
// FLAGS:
//   --payment, -p : Payment method (cash or transfer). Required.
//   --name        : Customer name
//   --phone       : Customer phone
//   --note        : Free-text note
//   --no-prompt   : Do not ask for customer data
//
// CUSTOMER DATA:
//   When no customer flag is given and --no-prompt is not set, the command
//   asks for name, phone and note on stdin. Every answer may be left empty.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/daily-sales/internal/catalog"
	"github.com/ginjaninja78/daily-sales/internal/recorder"
	"github.com/ginjaninja78/daily-sales/internal/sale"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	payment       string
	customerName  string
	customerPhone string
	customerNote  string
	noPrompt      bool
)

// =============================================================================
// SELL COMMAND DEFINITION
// =============================================================================

var sellCmd = &cobra.Command{
	Use:   "sell <product-id>",
	Short: "Register a sale",
	Long: `Register one sale of a catalog product in today's session.

The product's name and price are copied into the sale, so later catalog edits
do not change what was sold. The session is saved before the command returns.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSell(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(sellCmd)

	sellCmd.Flags().StringVarP(&payment, "payment", "p", "", "Payment method: cash or transfer")
	sellCmd.Flags().StringVar(&customerName, "name", "", "Customer name")
	sellCmd.Flags().StringVar(&customerPhone, "phone", "", "Customer phone")
	sellCmd.Flags().StringVar(&customerNote, "note", "", "Free-text note")
	sellCmd.Flags().BoolVar(&noPrompt, "no-prompt", false, "Do not ask for customer data")

	sellCmd.MarkFlagRequired("payment")
}

// =============================================================================
// SELL
// =============================================================================

func runSell(cmd *cobra.Command, productID string) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	method, err := sale.ParsePaymentMethod(payment)
	if err != nil {
		return err
	}

	products, err := catalog.Load(a.cfg.CatalogFile)
	if err != nil {
		return errors.Wrap(err, "failed to load catalog")
	}
	product, err := products.Lookup(productID)
	if err != nil {
		return err
	}

	sess := a.store.Initialize()

	rec := recorder.New(a.store,
		recorder.WithNow(a.days.Now),
		recorder.WithLogger(a.log),
	)

	sess, err = rec.RegisterWith(product, method, customerSource(cmd), sess)
	if err != nil {
		return err
	}

	last := sess.Records[sess.Len()-1]
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s (%s)\n", a.gen.Line(last), last.PaymentMethod)
	fmt.Fprintf(out, "Sales today: %d\n", sess.Len())

	return nil
}

// customerSource picks where the customer fields come from: the flags when
// any is set or prompting is off, otherwise an interactive prompt.
func customerSource(cmd *cobra.Command) recorder.CustomerSource {
	if noPrompt || customerName != "" || customerPhone != "" || customerNote != "" {
		return recorder.StaticCustomer{Name: customerName, Phone: customerPhone, Note: customerNote}
	}
	return recorder.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
}
