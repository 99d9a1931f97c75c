package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnharvest/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed filters.yaml
var FiltersYAML string

func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := touchDir(v); err != nil {
			return err
		}
	}
	return nil
}

func touchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

func EnsureConfigFile(homeDir string) error {
	configPath := config.ConfigFilePath(homeDir)

	// Check if config file already exists
	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	// Write embedded config.yaml to the config directory
	if err := os.WriteFile(configPath, []byte(ConfigYAML), 0644); err != nil {
		return CopyFileError(configPath, err)
	}

	return nil
}

func EnsureFiltersFile(homeDir string) error {
	filtersPath := config.FiltersFilePath(homeDir)

	// Check if filters file already exists
	if _, err := os.Stat(filtersPath); err == nil {
		return nil
	}

	// Write embedded filters.yaml to the config directory
	if err := os.WriteFile(filtersPath, []byte(FiltersYAML), 0644); err != nil {
		return CopyFileError(filtersPath, err)
	}

	return nil
}

// EnsureOutputDirs creates the export tree under the given root:
// occurrence partitions, catalogs, and reports.
func EnsureOutputDirs(root string) error {
	for _, dir := range OutputDirs(root) {
		if err := touchDir(dir); err != nil {
			return err
		}
	}
	return nil
}
