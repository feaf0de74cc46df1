// =============================================================================
// Daily Sales - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. The YAML file given with --config (optional; a missing file is fine)
//   3. Environment variables prefixed with DAILYSALES_, nested keys joined
//      with "_" (for example DAILYSALES_DAY_LAYOUT or DAILYSALES_LOG_LEVEL)
//
// EXAMPLE (config.yaml):
//   state_file: ./data/session.json
//   catalog_file: ./configs/catalog.yaml
//   output_dir: ./output
//   day:
//     layout: "1/2/2006"
//     timezone: America/Bogota
//   report:
//     locale: en
//   export:
//     retention_days: 30
//   log:
//     env: development
//     level: info
//
// =============================================================================

package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/ginjaninja78/daily-sales/internal/report"
	"github.com/ginjaninja78/daily-sales/internal/session"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "DAILYSALES"

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	// StateFile is where the day's session is persisted.
	// Default: "./data/session.json"
	StateFile string `yaml:"state_file"`

	// CatalogFile is the product catalog (.yaml, .csv or .xlsx).
	// Default: "./configs/catalog.yaml"
	CatalogFile string `yaml:"catalog_file"`

	// OutputDir is where exported reports are written.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	Day    DayConfig    `yaml:"day"`
	Report ReportConfig `yaml:"report"`
	Export ExportConfig `yaml:"export"`
	Log    LogConfig    `yaml:"log"`
}

// DayConfig controls how the calendar day is written and compared.
type DayConfig struct {
	// Layout is a Go time layout. Default: "1/2/2006"
	Layout string `yaml:"layout"`

	// Timezone is an IANA zone name. Empty means the machine's local zone.
	Timezone string `yaml:"timezone"`
}

// ReportConfig controls the report text.
type ReportConfig struct {
	// Locale decides price digit grouping. Default: "en"
	Locale string `yaml:"locale"`

	// Labels overrides the fixed texts of the report. Empty fields keep the
	// English defaults.
	Labels report.Labels `yaml:"labels"`
}

// ExportConfig controls exported files.
type ExportConfig struct {
	// NameFormat names exported files. Default: "sales_{date}_{uuid}"
	NameFormat string `yaml:"name_format"`

	// RetentionDays removes exports older than this many days after each
	// export. 0 keeps everything.
	RetentionDays int `yaml:"retention_days"`

	// Sink is the default destination of `report`: stdout, file or pdf.
	// Default: "stdout"
	Sink string `yaml:"sink"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Env: "development" for console output, anything else for JSON.
	Env string `yaml:"env"`

	// Level: trace, debug, info, warn, error. Default: "warn"
	Level string `yaml:"level"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration file at path (if it exists), applies
// environment overrides and defaults, and validates the result.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, errors.Wrap(err, "failed to parse config file")
			}
		case os.IsNotExist(err):
			// Defaults only.
		default:
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	applyEnvOverrides(&cfg, newEnv())
	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}

	return &cfg, nil
}

// newEnv returns a viper instance bound to the DAILYSALES_ environment.
func newEnv() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// applyEnvOverrides replaces file values with the environment ones.
func applyEnvOverrides(cfg *Config, v *viper.Viper) {
	cfg.StateFile = getString(v, "state_file", cfg.StateFile)
	cfg.CatalogFile = getString(v, "catalog_file", cfg.CatalogFile)
	cfg.OutputDir = getString(v, "output_dir", cfg.OutputDir)
	cfg.Day.Layout = getString(v, "day.layout", cfg.Day.Layout)
	cfg.Day.Timezone = getString(v, "day.timezone", cfg.Day.Timezone)
	cfg.Report.Locale = getString(v, "report.locale", cfg.Report.Locale)
	cfg.Export.NameFormat = getString(v, "export.name_format", cfg.Export.NameFormat)
	cfg.Export.RetentionDays = getInt(v, "export.retention_days", cfg.Export.RetentionDays)
	cfg.Export.Sink = getString(v, "export.sink", cfg.Export.Sink)
	cfg.Log.Env = getString(v, "log.env", cfg.Log.Env)
	cfg.Log.Level = getString(v, "log.level", cfg.Log.Level)
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if !v.IsSet(key) {
		return def
	}
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return def
	}
	return n
}

// applyDefaults sets default values for any unset option.
func applyDefaults(cfg *Config) {
	if cfg.StateFile == "" {
		cfg.StateFile = "./data/session.json"
	}
	if cfg.CatalogFile == "" {
		cfg.CatalogFile = "./configs/catalog.yaml"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./output"
	}
	if cfg.Day.Layout == "" {
		cfg.Day.Layout = session.DefaultDayLayout
	}
	if cfg.Report.Locale == "" {
		cfg.Report.Locale = "en"
	}
	if cfg.Export.NameFormat == "" {
		cfg.Export.NameFormat = "sales_{date}_{uuid}"
	}
	if cfg.Export.Sink == "" {
		cfg.Export.Sink = "stdout"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}

// validate checks option values and creates the state directory.
func validate(cfg *Config) error {
	if _, err := cfg.Location(); err != nil {
		return err
	}

	if cfg.Export.RetentionDays < 0 {
		return errors.Newf("export.retention_days must not be negative, got %d", cfg.Export.RetentionDays)
	}

	switch cfg.Export.Sink {
	case "stdout", "file", "pdf":
	default:
		return errors.Newf("export.sink must be stdout, file or pdf, got %q", cfg.Export.Sink)
	}

	dir := filepath.Dir(cfg.StateFile)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}

	return nil
}

// Location returns the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	if c.Day.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Day.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown day.timezone %q", c.Day.Timezone)
	}
	return loc, nil
}

// Retention returns the export retention as a duration; 0 disables it.
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Export.RetentionDays) * 24 * time.Hour
}
