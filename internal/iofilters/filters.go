// Package iofilters loads the quality-gate allow-lists from
// filters.yaml in the user's config directory.
package iofilters

import (
	"os"

	"github.com/gnames/gnharvest/pkg/config"
	"github.com/gnames/gnharvest/pkg/filters"
	"gopkg.in/yaml.v3"
)

type iofilters struct {
	cfg *config.Config
}

func New(cfg *config.Config) filters.Loader {
	res := iofilters{cfg: cfg}
	return &res
}

func (f *iofilters) Load() (*filters.Filters, error) {
	filtersPath := config.FiltersFilePath(f.cfg.HomeDir)

	data, err := os.ReadFile(filtersPath)
	if err != nil {
		return nil, FiltersConfigError(filtersPath, err)
	}

	var res filters.Filters
	if err = yaml.Unmarshal(data, &res); err != nil {
		return nil, FiltersConfigError(filtersPath, err)
	}

	if problems := res.Validate(); len(problems) > 0 {
		return nil, FiltersEmptyError(filtersPath, problems)
	}

	return &res, nil
}
