package ioexport

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/gnames/gnharvest/pkg/occurrence"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/errgroup"
)

// MediaReport tallies the reachability probes of the sampled media
// URLs.
type MediaReport struct {
	Sampled     int
	Reachable   int
	Unreachable int
	Failures    []string
}

// SuccessRate returns reachable/sampled as a fraction in [0,1].
func (r *MediaReport) SuccessRate() float64 {
	if r.Sampled == 0 {
		return 0
	}
	return float64(r.Reachable) / float64(r.Sampled)
}

// validateMedia probes the first media URL of a bounded sample of
// accepted records. Probes are independent and read-only, so they run
// on a bounded worker pool; every transport error counts as
// unreachable and is never fatal.
func (e *exporter) validateMedia(
	ctx context.Context,
	records []*occurrence.Record,
) *MediaReport {
	var urls []string
	for _, rec := range records {
		if len(rec.MediaURLs) == 0 {
			continue
		}
		urls = append(urls, rec.MediaURLs[0])
		if len(urls) >= e.cfg.Quality.MediaSampleSize {
			break
		}
	}

	res := &MediaReport{Sampled: len(urls)}
	if len(urls) == 0 {
		return res
	}

	rest := resty.New()
	rest.SetTimeout(e.cfg.Quality.ProbeTimeout)

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(e.cfg.JobsNumber)

	for _, url := range urls {
		g.Go(func() error {
			resp, err := rest.R().SetContext(ctx).Head(url)
			ok := err == nil && !resp.IsError()

			mu.Lock()
			defer mu.Unlock()
			if ok {
				res.Reachable++
			} else {
				res.Unreachable++
				res.Failures = append(res.Failures, url)
			}
			return nil
		})
	}
	// Workers never return errors; Wait only synchronizes.
	_ = g.Wait()

	// Concurrent tallying scrambles the order.
	slices.Sort(res.Failures)

	slog.Info("Media validation finished",
		"sampled", res.Sampled,
		"reachable", res.Reachable,
		"unreachable", res.Unreachable,
	)
	return res
}
