// =============================================================================
// Daily Sales - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Daily Sales CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   dailysales sell <id> -p cash   - Register a sale
//   dailysales report              - Print or export today's report
//   dailysales catalog             - List the products on sale
//   dailysales status              - Show today's totals
//   dailysales version             - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : session store, recorder, report, catalog, export, config
//   - pkg/       : logger and file utilities
//   - configs/   : sample catalog
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/daily-sales/cmd"
)

func main() {
	cmd.Execute()
}
