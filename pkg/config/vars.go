package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnharvest"
)

// MaxPageSize is the hard page-size limit of the occurrence-search API.
// Requests with a larger limit are silently clamped by the provider,
// which would break short-page end-of-data detection, so the config
// clamps first.
const MaxPageSize = 300

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnharvest by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnharvest/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnharvest/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// FiltersFilePath returns the full path to the filters.yaml file that
// holds the quality-gate allow-lists.
// Returns ~/.config/gnharvest/filters.yaml by default.
func FiltersFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "filters.yaml")
}
