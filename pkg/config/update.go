package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir and all of Harvest).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	var d time.Duration

	s = c.Provider.Name
	if s != "" {
		res = append(res, OptProviderName(s))
	}
	s = c.Provider.BaseURL
	if s != "" {
		res = append(res, OptProviderBaseURL(s))
	}
	d = c.Provider.PageDelay
	if d > 0 {
		res = append(res, OptProviderPageDelay(d))
	}
	d = c.Provider.RetryDelay
	if d > 0 {
		res = append(res, OptProviderRetryDelay(d))
	}
	i = c.Provider.RetryAttempts
	if i > 0 {
		res = append(res, OptProviderRetryAttempts(i))
	}
	d = c.Provider.FetchTimeout
	if d > 0 {
		res = append(res, OptProviderFetchTimeout(d))
	}

	f := c.Quality.MaxUncertaintyMeters
	if f > 0 {
		res = append(res, OptQualityMaxUncertainty(f))
	}
	i = c.Quality.MediaSampleSize
	if i > 0 {
		res = append(res, OptQualityMediaSample(i))
	}
	d = c.Quality.ProbeTimeout
	if d > 0 {
		res = append(res, OptQualityProbeTimeout(d))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidFloat(name string, f float64) bool {
	res := f > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %f", name, f)
	}
	return res
}

func isValidDuration(name string, d time.Duration) bool {
	res := d > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive duration, ignoring %s", name, d)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
