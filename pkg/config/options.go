package config

import (
	"strings"
	"time"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptProviderName sets the provider name used in dataset citations.
func OptProviderName(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Provider Name", s) {
			c.Provider.Name = s
		}
	}
}

// OptProviderBaseURL sets the root URL of the occurrence-search API.
func OptProviderBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Provider BaseURL", s) {
			c.Provider.BaseURL = strings.TrimSuffix(s, "/")
		}
	}
}

// OptProviderPageDelay sets the pause between successful page requests.
func OptProviderPageDelay(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Page Delay", d) {
			c.Provider.PageDelay = d
		}
	}
}

// OptProviderRetryDelay sets the pause before retrying a failed page.
func OptProviderRetryDelay(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Retry Delay", d) {
			c.Provider.RetryDelay = d
		}
	}
}

// OptProviderRetryAttempts sets how many times a failed offset is
// retried before the page is skipped.
func OptProviderRetryAttempts(i int) Option {
	return func(c *Config) {
		if isValidInt("Retry Attempts", i) {
			c.Provider.RetryAttempts = i
		}
	}
}

// OptProviderFetchTimeout bounds a single page request.
func OptProviderFetchTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Fetch Timeout", d) {
			c.Provider.FetchTimeout = d
		}
	}
}

// OptHarvestFamily sets the taxonomic family to harvest.
// Runtime-only field - not in ToOptions().
func OptHarvestFamily(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Family", s) {
			c.Harvest.Family = s
		}
	}
}

// OptHarvestMaxRecords caps the number of accepted records for the run.
// Runtime-only field - not in ToOptions().
func OptHarvestMaxRecords(i int) Option {
	return func(c *Config) {
		if isValidInt("Max Records", i) {
			c.Harvest.MaxRecords = i
		}
	}
}

// OptHarvestPageSize sets the page size, clamped to MaxPageSize.
// Runtime-only field - not in ToOptions().
func OptHarvestPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Page Size", i) {
			if i > MaxPageSize {
				i = MaxPageSize
			}
			c.Harvest.PageSize = i
		}
	}
}

// OptHarvestOutputDir sets the root directory for export artifacts.
// Runtime-only field - not in ToOptions().
func OptHarvestOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Directory", s) {
			c.Harvest.OutputDir = s
		}
	}
}

// OptHarvestSkipMediaCheck disables the media validation report.
// Uses pointer to distinguish between unset (nil) and false.
// Runtime-only field - not in ToOptions().
func OptHarvestSkipMediaCheck(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Harvest.SkipMediaCheck = b
		}
	}
}

// OptQualityMaxUncertainty sets the maximum accepted coordinate
// uncertainty in meters.
func OptQualityMaxUncertainty(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Max Uncertainty", f) {
			c.Quality.MaxUncertaintyMeters = f
		}
	}
}

// OptQualityMediaSample bounds the media validation sample size.
func OptQualityMediaSample(i int) Option {
	return func(c *Config) {
		if isValidInt("Media Sample Size", i) {
			c.Quality.MediaSampleSize = i
		}
	}
}

// OptQualityProbeTimeout bounds a single media-URL existence check.
func OptQualityProbeTimeout(d time.Duration) Option {
	return func(c *Config) {
		if isValidDuration("Probe Timeout", d) {
			c.Quality.ProbeTimeout = d
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel
// operations. Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
