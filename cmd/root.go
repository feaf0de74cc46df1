// =============================================================================
// Daily Sales - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (dailysales)
//   ├── sellCmd    (dailysales sell)
//   ├── reportCmd  (dailysales report)
//   ├── catalogCmd (dailysales catalog)
//   ├── statusCmd  (dailysales status)
//   └── versionCmd (dailysales version)
//
// CONFIGURATION:
//   The root command owns the global flags (--config, --verbose). Commands
//   that touch the session call loadApp, which reads the configuration and
//   wires the logger, the session store and the report generator.
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/daily-sales/internal/config"
	"github.com/ginjaninja78/daily-sales/internal/report"
	"github.com/ginjaninja78/daily-sales/internal/session"
	"github.com/ginjaninja78/daily-sales/pkg/logger"
	"github.com/ginjaninja78/daily-sales/pkg/utils"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// appClock is the time source of every command. Tests replace it.
var appClock session.Clock = session.NewRealClock()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "dailysales",
	Short: "Daily Sales - record the day's sales and share a summary",
	Long: `Daily Sales records point-of-sale transactions for the current day and
produces a text summary grouped by payment method, ready to paste into a chat.

Sales are kept until the calendar day changes; the first command of a new day
starts an empty session.

Example Usage:
  dailysales catalog --prices             # List the products on sale
  dailysales sell P1 --payment cash       # Register a sale (asks for customer data)
  dailysales report                       # Print the daily report
  dailysales report --sink pdf --xlsx     # Export the report as PDF and workbook`,

	SilenceUsage:  true,
	SilenceErrors: true,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the root command. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

func init() {
	// --config flag: path of the main configuration file.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	// --verbose flag: enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// =============================================================================
// APPLICATION WIRING
// =============================================================================

// app bundles what the session commands need.
type app struct {
	cfg   *config.Config
	log   *logger.Logger
	days  *session.ClockDays
	store *session.Store
	gen   *report.Generator
	files *utils.FileManager
}

// loadApp reads the configuration and wires the session store. It does not
// initialize the store.
func loadApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	logCfg := logger.Config{Env: cfg.Log.Env, Level: cfg.Log.Level}
	if verbose {
		logCfg.Level = "debug"
	}
	log := logger.New(logCfg)

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	days := session.NewDaySource(appClock, cfg.Day.Layout, loc)

	log.Debug().
		Str("config", cfgFile).
		Str("state", cfg.StateFile).
		Str("today", days.Today()).
		Msg("configuration loaded")

	return &app{
		cfg:   cfg,
		log:   log,
		days:  days,
		store: session.NewStore(session.NewFileStorage(cfg.StateFile), days, log),
		gen:   report.NewGenerator(cfg.Report.Labels, cfg.Report.Locale),
		files: utils.NewFileManager(cfg.OutputDir, cfg.Export.NameFormat),
	}, nil
}
