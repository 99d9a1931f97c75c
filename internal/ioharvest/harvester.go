// Package ioharvest runs one harvest session: it drives the paginated
// fetcher and feeds every page through the quality gate, normalizer,
// duplicate detector, and catalog trackers, accumulating the accepted
// record sequence for export.
//
// The chain is strictly sequential: page N+1 is never requested before
// page N is fully processed, because the offset is stateful and all
// cumulative statistics are reported in fetch order.
package ioharvest

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnharvest/pkg/catalog"
	"github.com/gnames/gnharvest/pkg/config"
	"github.com/gnames/gnharvest/pkg/filters"
	"github.com/gnames/gnharvest/pkg/gnharvest"
	"github.com/gnames/gnharvest/pkg/occurrence"
	"github.com/gnames/gnharvest/pkg/quality"
	"github.com/google/uuid"
)

// harvester implements the Harvester interface. All session state
// lives in this value; a fresh harvester is constructed per run, so
// repeated or parallel sessions cannot interfere.
type harvester struct {
	cfg     *config.Config
	fetcher gnharvest.Fetcher
	parser  occurrence.GenusParser
	gate    *quality.Gate

	stats    *quality.Stats
	seen     map[uuid.UUID]struct{}
	datasets *catalog.Datasets
	taxa     *catalog.Taxa
	records  []*occurrence.Record

	// now is replaceable in tests for deterministic timestamps.
	now func() time.Time
}

// New creates a Harvester for one session.
func New(
	cfg *config.Config,
	fetcher gnharvest.Fetcher,
	parser occurrence.GenusParser,
	f *filters.Filters,
) gnharvest.Harvester {
	return &harvester{
		cfg:     cfg,
		fetcher: fetcher,
		parser:  parser,
		gate: quality.NewGate(
			cfg.Harvest.Family,
			cfg.Quality.MaxUncertaintyMeters,
			f,
		),
		stats:    quality.NewStats(),
		seen:     make(map[uuid.UUID]struct{}),
		datasets: catalog.NewDatasets(cfg.Provider.Name),
		taxa:     catalog.NewTaxa(),
		now:      time.Now,
	}
}

// Harvest runs the fetch loop until the record cap, an empty or short
// page, or context cancellation stops it. Page-level failures are
// retried at the same offset and, if the retries are exhausted, the
// page is skipped with a logged gap; the run continues.
func (h *harvester) Harvest(
	ctx context.Context,
) (*gnharvest.Result, error) {
	startTime := h.now()
	pageSize := h.cfg.Harvest.PageSize
	maxRecords := h.cfg.Harvest.MaxRecords

	slog.Info("Starting harvest",
		"family", h.cfg.Harvest.Family,
		"max_records", maxRecords,
		"page_size", pageSize,
	)
	gn.Info("Harvesting <em>%s</em> occurrences (up to %s records)",
		h.cfg.Harvest.Family,
		humanize.Comma(int64(maxRecords)),
	)

	bar := newProgressBar(maxRecords, "records")

	offset := 0
	for {
		// Operator interrupt stops the loop between pages; the page
		// in flight is always finished.
		if ctx.Err() != nil {
			slog.Warn("Harvest interrupted", "offset", offset)
			gn.Warn("Interrupted, exporting what was accepted so far")
			break
		}

		page, err := h.fetchPage(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				continue // loop top handles the interrupt
			}
			// Page is lost; the gap is bounded by the page size.
			h.stats.PagesLost++
			slog.Error("Skipping page after retries",
				"offset", offset,
				"records_lost_up_to", pageSize,
				"error", err,
			)
			offset += pageSize
			continue
		}

		h.stats.PagesFetched++
		capReached := h.processPage(page, bar)

		if capReached {
			slog.Info("Record cap reached", "accepted", len(h.records))
			break
		}
		if len(page.Results) == 0 || len(page.Results) < pageSize ||
			page.EndOfRecords {
			// Short or empty page signals the end of the provider's
			// dataset; no further offsets are requested.
			slog.Info("End of provider data",
				"offset", offset,
				"page_records", len(page.Results),
			)
			break
		}

		offset += pageSize

		// Provider etiquette; not charged against failed requests.
		if !sleep(ctx, h.cfg.Provider.PageDelay) {
			continue
		}
	}
	bar.Finish()

	finishTime := h.now()
	h.logSummary(startTime, finishTime)

	res := &gnharvest.Result{
		Family:     h.cfg.Harvest.Family,
		Records:    h.records,
		Datasets:   h.datasets,
		Taxa:       h.taxa,
		Stats:      h.stats,
		StartedAt:  startTime,
		FinishedAt: finishTime,
	}
	return res, nil
}

// fetchPage requests the same offset up to RetryAttempts times before
// giving up, pausing RetryDelay between attempts.
func (h *harvester) fetchPage(
	ctx context.Context,
	offset int,
) (*occurrence.Page, error) {
	var lastErr error
	attempts := h.cfg.Provider.RetryAttempts
	for attempt := 1; attempt <= attempts; attempt++ {
		page, err := h.fetcher.Search(ctx, offset)
		if err == nil {
			return page, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, context.Canceled
		}
		slog.Warn("Page request failed",
			"offset", offset,
			"attempt", attempt,
			"of", attempts,
			"error", err,
		)
		if attempt < attempts {
			if !sleep(ctx, h.cfg.Provider.RetryDelay) {
				return nil, context.Canceled
			}
		}
	}
	return nil, lastErr
}

// processPage runs the filter/normalize/dedup/track chain over one
// page. It returns true when the accepted-record cap was reached;
// remaining records of the page stay unexamined and uncounted.
func (h *harvester) processPage(
	page *occurrence.Page,
	bar *pb.ProgressBar,
) bool {
	now := h.now()
	for i := range page.Results {
		if len(h.records) >= h.cfg.Harvest.MaxRecords {
			return true
		}
		raw := &page.Results[i]
		h.stats.Processed++

		if reason, ok := h.gate.Check(raw); !ok {
			h.stats.Reject(reason)
			continue
		}

		rec, err := occurrence.Normalize(raw, now, h.parser)
		if err != nil {
			h.stats.ProcessingErrors++
			slog.Warn("Cannot normalize record",
				"gbif_id", raw.Key,
				"error", err,
			)
			continue
		}

		fp := rec.FingerprintID()
		if _, ok := h.seen[fp]; ok {
			h.stats.Duplicates++
			continue
		}
		h.seen[fp] = struct{}{}

		h.datasets.Track(rec, now)
		h.taxa.Track(rec)

		h.records = append(h.records, rec)
		h.stats.Accepted++
		bar.Increment()
	}
	return len(h.records) >= h.cfg.Harvest.MaxRecords
}

func (h *harvester) logSummary(start, finish time.Time) {
	elapsed := finish.Sub(start)
	slog.Info("Harvest complete",
		"processed", h.stats.Processed,
		"accepted", h.stats.Accepted,
		"rejected", h.stats.Rejected(),
		"duplicates", h.stats.Duplicates,
		"processing_errors", h.stats.ProcessingErrors,
		"pages_fetched", h.stats.PagesFetched,
		"pages_lost", h.stats.PagesLost,
		"datasets", h.datasets.Len(),
		"taxa", h.taxa.Len(),
		"duration", gnfmt.TimeString(elapsed.Seconds()),
	)
	gn.Info(`Harvest complete
Processed %s records, accepted %s, removed %s duplicates.
		Elapsed time: <em>%s</em>
`,
		humanize.Comma(int64(h.stats.Processed)),
		humanize.Comma(int64(h.stats.Accepted)),
		humanize.Comma(int64(h.stats.Duplicates)),
		gnfmt.TimeString(elapsed.Seconds()),
	)
	if h.stats.PagesLost > 0 {
		gn.Warn("<em>%d</em> pages were lost to transient errors",
			h.stats.PagesLost)
	}
}

// sleep pauses for d, returning false when the context is cancelled
// before the pause ends.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// newProgressBar creates a new progress bar with consistent settings.
func newProgressBar(total int, prefix string) *pb.ProgressBar {
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return bar
}
