package ioharvest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gnames/gnharvest/pkg/config"
	"github.com/gnames/gnharvest/pkg/filters"
	"github.com/gnames/gnharvest/pkg/occurrence"
	"github.com/gnames/gnharvest/pkg/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

// fakeFetcher serves canned pages per offset and can fail an offset a
// given number of times before succeeding.
type fakeFetcher struct {
	pages map[int]*occurrence.Page
	fails map[int]int
	calls []int
}

func (f *fakeFetcher) Search(
	ctx context.Context,
	offset int,
) (*occurrence.Page, error) {
	f.calls = append(f.calls, offset)
	if f.fails[offset] > 0 {
		f.fails[offset]--
		return nil, errors.New("transient provider error")
	}
	if page, ok := f.pages[offset]; ok {
		return page, nil
	}
	return &occurrence.Page{EndOfRecords: true}, nil
}

func testConfig(pageSize, maxRecords int) *config.Config {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptHarvestFamily("Orchidaceae"),
		config.OptHarvestPageSize(pageSize),
		config.OptHarvestMaxRecords(maxRecords),
		config.OptProviderPageDelay(time.Millisecond),
		config.OptProviderRetryDelay(time.Millisecond),
	})
	return cfg
}

// rawRec returns a gate-passing raw record; distinct latitudes keep
// fingerprints unique.
func rawRec(key int64, lat float64) occurrence.RawRecord {
	return occurrence.RawRecord{
		Key:              key,
		DatasetKey:       "ds-1",
		DatasetName:      "Test Dataset",
		Family:           "Orchidaceae",
		Genus:            "Orchis",
		License:          "CC_BY_4_0",
		BasisOfRecord:    "HUMAN_OBSERVATION",
		ScientificName:   "Orchis mascula (L.) L.",
		TaxonKey:         2807710,
		DecimalLatitude:  ptr(lat),
		DecimalLongitude: ptr(12.5),
		EventDate:        "2024-05-20",
	}
}

func page(recs ...occurrence.RawRecord) *occurrence.Page {
	return &occurrence.Page{Results: recs}
}

// TestHarvest_MultiPage verifies sequential pagination with a short
// final page, and that catalogs and stats cover exactly the accepted
// records.
func TestHarvest_MultiPage(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(rawRec(1, 40.1), rawRec(2, 40.2)),
			2: page(rawRec(3, 40.3), rawRec(4, 40.4)),
			4: page(rawRec(5, 40.5)), // short page ends the run
		},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 2, 4}, fetcher.calls)
	assert.Len(t, res.Records, 5)
	assert.Equal(t, 5, res.Stats.Processed)
	assert.Equal(t, 5, res.Stats.Accepted)
	assert.Equal(t, 3, res.Stats.PagesFetched)
	assert.Zero(t, res.Stats.PagesLost)
	assert.Equal(t, 1, res.Datasets.Len())
	assert.Equal(t, 1, res.Taxa.Len())
	assert.Equal(t, "Orchidaceae", res.Family)

	// Dataset count equals accepted records from that dataset.
	assert.Equal(t, 5, res.Datasets.Entries()[0].RecordCount)
}

// TestHarvest_RecordCap verifies the run stops at the accepted-record
// cap, leaving the rest of the page unexamined.
func TestHarvest_RecordCap(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(
				rawRec(1, 40.1), rawRec(2, 40.2), rawRec(3, 40.3),
				rawRec(4, 40.4), rawRec(5, 40.5),
			),
		},
	}
	h := New(testConfig(5, 3), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0}, fetcher.calls)
	assert.Len(t, res.Records, 3)
	assert.Equal(t, 3, res.Stats.Processed)
	assert.Equal(t, 3, res.Stats.Accepted)
}

// TestHarvest_EmptyPage verifies an empty first page ends the run
// with no records.
func TestHarvest_EmptyPage(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{0: page()},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0}, fetcher.calls)
	assert.Empty(t, res.Records)
	assert.Zero(t, res.Stats.Processed)
}

// TestHarvest_RetrySameOffset verifies a failed page is retried at the
// same offset and nothing is lost when a retry succeeds.
func TestHarvest_RetrySameOffset(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(rawRec(1, 40.1)),
		},
		fails: map[int]int{0: 2},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	// Two failures, then success, all at offset 0.
	assert.Equal(t, []int{0, 0, 0}, fetcher.calls)
	assert.Len(t, res.Records, 1)
	assert.Zero(t, res.Stats.PagesLost)
	assert.Equal(t, 1, res.Stats.PagesFetched)
}

// TestHarvest_PageLost verifies an exhausted retry budget skips the
// page and the run continues at the next offset.
func TestHarvest_PageLost(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			2: page(rawRec(3, 40.3)),
		},
		fails: map[int]int{0: 10},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	// Three attempts at offset 0, then the next offset.
	assert.Equal(t, []int{0, 0, 0, 2}, fetcher.calls)
	assert.Equal(t, 1, res.Stats.PagesLost)
	assert.Equal(t, 1, res.Stats.PagesFetched)
	assert.Len(t, res.Records, 1)
	assert.Equal(t, int64(3), res.Records[0].GbifID)
}

// TestHarvest_Dedup verifies duplicate fingerprints are dropped across
// page boundaries.
func TestHarvest_Dedup(t *testing.T) {
	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(rawRec(1, 40.1), rawRec(2, 40.2)),
			// Same name/date/coords/dataset as record 1.
			2: page(rawRec(7, 40.1)),
		},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Records, 2)
	assert.Equal(t, 1, res.Stats.Duplicates)
	assert.Equal(t, 3, res.Stats.Processed)
	assert.Equal(t, 2, res.Stats.Accepted)
}

// TestHarvest_Rejections verifies gate rejections are counted by
// reason and rejected records never reach the catalogs.
func TestHarvest_Rejections(t *testing.T) {
	bad := rawRec(2, 40.2)
	bad.License = "CC_BY_NC_ND_4_0"
	noCoords := rawRec(3, 0)
	noCoords.DecimalLatitude = nil

	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(rawRec(1, 40.1), bad, noCoords),
		},
	}
	h := New(testConfig(3, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	assert.Len(t, res.Records, 1)
	assert.Equal(t, 3, res.Stats.Processed)
	assert.Equal(t, 2, res.Stats.Rejected())
	assert.Equal(t, 1,
		res.Stats.Rejections[quality.ReasonDisallowedLicense])
	assert.Equal(t, 1,
		res.Stats.Rejections[quality.ReasonNoCoordinates])
	assert.Equal(t, 1, res.Datasets.Entries()[0].RecordCount)
}

// TestHarvest_Interrupt verifies a cancelled context stops the loop
// before any further page and still returns a result for export.
func TestHarvest_Interrupt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(rawRec(1, 40.1)),
		},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(ctx)
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Empty(t, fetcher.calls)
	assert.Empty(t, res.Records)
}

// TestHarvest_PartitionKeys verifies accepted records carry usable
// partition keys, including the Unknown fallback.
func TestHarvest_PartitionKeys(t *testing.T) {
	anon := rawRec(2, 40.2)
	anon.Genus = ""
	anon.ScientificName = "BOLD:ACF1358"

	fetcher := &fakeFetcher{
		pages: map[int]*occurrence.Page{
			0: page(rawRec(1, 40.1), anon),
		},
	}
	h := New(testConfig(2, 100), fetcher, nil, filters.Default())

	res, err := h.Harvest(context.Background())
	require.NoError(t, err)

	require.Len(t, res.Records, 2)
	assert.Equal(t, "Orchis", res.Records[0].PartitionKey())
	assert.Equal(t, occurrence.UnknownGenus, res.Records[1].PartitionKey())
}
