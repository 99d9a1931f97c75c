// Package config provides configuration management for GNharvest.
//
// This package has no I/O dependencies (no file operations, no network
// calls). Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Provider: base_url, page_delay, retry_delay, retry_attempts, fetch_timeout
//   - Quality: max_uncertainty_m, media_sample_size, probe_timeout
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Harvest.Family, MaxRecords, PageSize, OutputDir, SkipMediaCheck
//     (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNHARVEST_ prefix with underscores for nesting:
//
//	GNHARVEST_PROVIDER_BASE_URL=https://api.gbif.org/v1
//	GNHARVEST_QUALITY_MAX_UNCERTAINTY_M=50000
//	GNHARVEST_LOG_LEVEL=info
//	GNHARVEST_JOBS_NUMBER=8
package config

import (
	"runtime"
	"time"
)

// Config represents the complete GNharvest configuration.
type Config struct {
	// Provider contains occurrence-search API settings.
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`

	// Harvest contains settings specific to the harvest command.
	Harvest HarvestConfig `mapstructure:"harvest" yaml:"harvest"`

	// Quality contains thresholds for the quality gate and media checks.
	Quality QualityConfig `mapstructure:"quality" yaml:"quality"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations
	// (currently only media-URL probes).
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ProviderConfig contains occurrence-search API parameters.
type ProviderConfig struct {
	// Name identifies the provider in dataset citations.
	Name string `mapstructure:"name" yaml:"name"`

	// BaseURL is the root of the provider's REST API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// PageDelay is the pause between successful page requests.
	// Providers ask for polite crawling; the delay is not charged
	// against failed requests.
	PageDelay time.Duration `mapstructure:"page_delay" yaml:"page_delay"`

	// RetryDelay is the pause before retrying a failed page request.
	RetryDelay time.Duration `mapstructure:"retry_delay" yaml:"retry_delay"`

	// RetryAttempts is how many times the same offset is retried
	// before the page is skipped with a logged gap.
	RetryAttempts int `mapstructure:"retry_attempts" yaml:"retry_attempts"`

	// FetchTimeout bounds a single page request.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
}

// HarvestConfig contains settings specific to the harvest command.
// All fields are runtime-only and come from CLI flags.
type HarvestConfig struct {
	// Family is the taxonomic family to harvest, for example "Orchidaceae".
	Family string `mapstructure:"family" yaml:"family"`

	// MaxRecords caps the number of accepted records for the run.
	MaxRecords int `mapstructure:"max_records" yaml:"max_records"`

	// PageSize is the number of records requested per page.
	// It is clamped to MaxPageSize, the provider's hard limit.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// OutputDir is the root directory for export artifacts.
	OutputDir string `mapstructure:"output_dir" yaml:"output_dir"`

	// SkipMediaCheck disables the advisory media-URL validation report.
	SkipMediaCheck *bool `mapstructure:"skip_media_check" yaml:"skip_media_check"`
}

// QualityConfig contains thresholds for the quality gate and the
// media validation report.
type QualityConfig struct {
	// MaxUncertaintyMeters rejects records whose coordinate uncertainty
	// exceeds this value. Records without an uncertainty value pass.
	MaxUncertaintyMeters float64 `mapstructure:"max_uncertainty_m" yaml:"max_uncertainty_m"`

	// MediaSampleSize bounds how many records with media URLs are probed
	// for the media validation report.
	MediaSampleSize int `mapstructure:"media_sample_size" yaml:"media_sample_size"`

	// ProbeTimeout bounds a single media-URL existence check.
	ProbeTimeout time.Duration `mapstructure:"probe_timeout" yaml:"probe_timeout"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Provider: ProviderConfig{
			Name:          "GBIF",
			BaseURL:       "https://api.gbif.org/v1",
			PageDelay:     1200 * time.Millisecond,
			RetryDelay:    5 * time.Second,
			RetryAttempts: 3,
			FetchTimeout:  30 * time.Second,
		},
		Harvest: HarvestConfig{
			Family:     "Orchidaceae",
			MaxRecords: 5000,
			PageSize:   MaxPageSize,
		},
		Quality: QualityConfig{
			MaxUncertaintyMeters: 50_000,
			MediaSampleSize:      100,
			ProbeTimeout:         10 * time.Second,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
