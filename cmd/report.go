// =============================================================================
// Daily Sales - Report Command
// =============================================================================
//
// This file defines the 'report' command, which renders today's report and
// hands it to an export sink.
//
// COMMAND USAGE:
//   dailysales report [--sink stdout|file|pdf] [--xlsx]
//
// FLAGS:
//   --sink : Where the report goes. Defaults to export.sink from the config.
//   --xlsx : Also write the session as an .xlsx workbook.
//
// After any file export, exports older than export.retention_days are
// removed from the output directory.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/ginjaninja78/daily-sales/internal/export"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// sinkKind overrides the configured sink.
var sinkKind string

// withWorkbook also exports an .xlsx workbook.
var withWorkbook bool

// =============================================================================
// REPORT COMMAND DEFINITION
// =============================================================================

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print or export today's report",
	Long: `Render today's sales grouped by payment method, cash first.

With the stdout sink the report is printed. The file and pdf sinks write into
the output directory and print the path of the written file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runReport(cmd)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&sinkKind, "sink", "", "Export sink: stdout, file or pdf (default from config)")
	reportCmd.Flags().BoolVar(&withWorkbook, "xlsx", false, "Also export an .xlsx workbook")
}

// =============================================================================
// REPORT
// =============================================================================

func runReport(cmd *cobra.Command) error {
	a, err := loadApp()
	if err != nil {
		return err
	}

	sess := a.store.Initialize()
	text := a.gen.Generate(sess)
	out := cmd.OutOrStdout()

	kind := sinkKind
	if kind == "" {
		kind = a.cfg.Export.Sink
	}

	sink, err := export.New(kind, out, a.files, sess.Day)
	if err != nil {
		return err
	}

	wroteFile := false

	if err := sink.Send(text); err != nil {
		a.log.Error().Err(err).Str("sink", kind).Msg("export failed")
		return errors.Wrap(err, "export report")
	}
	if located, ok := sink.(export.Located); ok {
		fmt.Fprintf(out, "Report exported: %s\n", located.Path())
		wroteFile = true
	}

	if withWorkbook {
		path, err := export.NewWorkbookExporter(a.files).Export(sess)
		if err != nil {
			a.log.Error().Err(err).Msg("workbook export failed")
			return errors.Wrap(err, "export workbook")
		}
		fmt.Fprintf(out, "Workbook exported: %s\n", path)
		wroteFile = true
	}

	if wroteFile {
		removed, err := export.Prune(a.files, a.cfg.Retention(), a.days.Now())
		if err != nil {
			a.log.Warn().Err(err).Msg("failed to remove old exports")
		} else if removed > 0 {
			a.log.Info().Int("removed", removed).Msg("old exports removed")
		}
	}

	a.log.Debug().
		Str("day", sess.Day).
		Int("sales", sess.Len()).
		Str("sink", kind).
		Msg("report generated")

	return nil
}
