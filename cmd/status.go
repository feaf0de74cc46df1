package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/daily-sales/internal/report"
)

// statusCmd prints the day, the number of sales and the totals per method.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's totals",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStatus(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	sum := report.Summarize(a.store.Initialize())
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Day:   %s\n", sum.Day)
	fmt.Fprintf(out, "Sales: %d\n", sum.Count)
	labels := a.gen.Labels()
	for _, mt := range sum.Methods {
		fmt.Fprintf(out, "  %s %d  %s\n", labels.Section(mt.Method), mt.Count, a.gen.FormatPrice(mt.Amount))
	}
	fmt.Fprintf(out, "Total: %s\n", a.gen.FormatPrice(sum.Amount))

	return nil
}
