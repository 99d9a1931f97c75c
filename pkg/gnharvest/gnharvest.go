// Package gnharvest defines the contracts between the phases of a
// harvest run. Implementations live in internal/io* packages; pure
// domain logic lives in the other pkg packages.
package gnharvest

import (
	"context"
	"time"

	"github.com/gnames/gnharvest/pkg/catalog"
	"github.com/gnames/gnharvest/pkg/occurrence"
	"github.com/gnames/gnharvest/pkg/quality"
)

// Fetcher requests pages from the occurrence-search endpoint.
// Offsets are stateful on the caller's side: page N+1 is never
// requested before page N is fully processed.
type Fetcher interface {
	// Search requests one page of occurrence records at the given
	// offset. The family filter, coordinate filters, and page size
	// come from configuration.
	Search(ctx context.Context, offset int) (*occurrence.Page, error)
}

// Harvester runs one harvest session: fetch, filter, normalize,
// deduplicate, and track catalogs, page by page.
type Harvester interface {
	// Harvest executes the session and returns its accumulated
	// result. Cancelling the context stops the loop between pages;
	// whatever was accepted so far is still returned for export.
	Harvest(ctx context.Context) (*Result, error)
}

// Exporter writes the partitioned datasets, catalogs, and reports of a
// finished session. Failure to write one artifact does not prevent the
// others from being attempted.
type Exporter interface {
	Export(ctx context.Context, res *Result) error
}

// Result is the accumulated state of one finished harvest session.
// It is discarded after export; there is no cross-run state.
type Result struct {
	Family   string
	Records  []*occurrence.Record
	Datasets *catalog.Datasets
	Taxa     *catalog.Taxa
	Stats    *quality.Stats

	StartedAt  time.Time
	FinishedAt time.Time
}
