// Package iofetch implements the Fetcher interface against the
// occurrence-search REST endpoint. This is an impure I/O package; it
// owns the only untyped boundary of the pipeline, decoding provider
// payloads into occurrence.Page.
package iofetch

import (
	"context"
	"strconv"

	app "github.com/gnames/gnharvest/pkg"
	"github.com/gnames/gnharvest/pkg/config"
	"github.com/gnames/gnharvest/pkg/gnharvest"
	"github.com/gnames/gnharvest/pkg/occurrence"
	"github.com/go-resty/resty/v2"
)

const searchPath = "/occurrence/search"

type client struct {
	cfg  *config.Config
	rest *resty.Client
}

// New creates a Fetcher for the configured provider.
func New(cfg *config.Config) gnharvest.Fetcher {
	rest := resty.New()
	rest.SetBaseURL(cfg.Provider.BaseURL)
	rest.SetTimeout(cfg.Provider.FetchTimeout)
	rest.SetHeader("User-Agent", "gnharvest/"+app.Version)

	return &client{cfg: cfg, rest: rest}
}

// Search requests one page at the given offset. Coordinate filters are
// applied upstream via query parameters, so the provider never returns
// records without coordinates or with flagged geospatial issues.
func (c *client) Search(
	ctx context.Context,
	offset int,
) (*occurrence.Page, error) {
	var page occurrence.Page

	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"family":             c.cfg.Harvest.Family,
			"hasCoordinate":      "true",
			"hasGeospatialIssue": "false",
			"limit":              strconv.Itoa(c.cfg.Harvest.PageSize),
			"offset":             strconv.Itoa(offset),
		}).
		SetResult(&page).
		Get(searchPath)

	if err != nil {
		return nil, RequestError(offset, err)
	}
	if resp.IsError() {
		return nil, StatusError(offset, resp.StatusCode())
	}

	return &page, nil
}
