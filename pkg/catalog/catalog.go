// Package catalog accumulates the dataset and taxon registries of one
// harvest session. Both registries are fed only with accepted,
// deduplicated records, so dataset counts always equal the number of
// exported records naming that dataset.
//
// This package has no I/O dependencies.
package catalog

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/gnames/gnharvest/pkg/occurrence"
)

// DatasetEntry is one row of the dataset registry, keyed by the
// provider's dataset identifier. Identity fields are written on first
// sighting; later sightings only increment RecordCount.
type DatasetEntry struct {
	Key         string `json:"dataset_key"`
	Title       string `json:"title"`
	Publisher   string `json:"publisher,omitempty"`
	License     string `json:"license"`
	Citation    string `json:"citation"`
	RecordCount int    `json:"record_count"`
}

// TaxonEntry is one row of the taxon registry, keyed by the accepted
// taxon identifier. Synonym and vernacular lists are reserved for
// future enrichment and stay empty in this pass.
type TaxonEntry struct {
	Key             int64    `json:"taxon_key"`
	ScientificName  string   `json:"scientific_name"`
	Rank            string   `json:"rank,omitempty"`
	Synonyms        []string `json:"synonyms"`
	VernacularNames []string `json:"vernacular_names"`
}

// Datasets is the per-session dataset registry.
type Datasets struct {
	provider string
	entries  map[string]*DatasetEntry
}

// NewDatasets creates an empty dataset registry. The provider name
// appears in generated citation strings.
func NewDatasets(provider string) *Datasets {
	return &Datasets{
		provider: provider,
		entries:  make(map[string]*DatasetEntry),
	}
}

// Track registers one accepted record. On the first sighting of a
// dataset it writes the identity fields and generates the citation
// string once; every sighting increments the record count.
func (d *Datasets) Track(rec *occurrence.Record, now time.Time) {
	entry, ok := d.entries[rec.DatasetKey]
	if !ok {
		title := rec.DatasetName
		if title == "" {
			title = rec.DatasetKey
		}
		entry = &DatasetEntry{
			Key:       rec.DatasetKey,
			Title:     title,
			Publisher: rec.Publisher,
			License:   rec.License,
			Citation:  citation(rec.Publisher, title, d.provider, now),
		}
		d.entries[rec.DatasetKey] = entry
	}
	entry.RecordCount++
}

// Len returns the number of distinct datasets seen.
func (d *Datasets) Len() int {
	return len(d.entries)
}

// Entries returns the registry sorted by dataset key.
func (d *Datasets) Entries() []DatasetEntry {
	keys := slices.Sorted(maps.Keys(d.entries))
	res := make([]DatasetEntry, len(keys))
	for i, k := range keys {
		res[i] = *d.entries[k]
	}
	return res
}

// TopByCount returns up to n entries sorted by descending record
// count, ties broken by key, for the quality summary report.
func (d *Datasets) TopByCount(n int) []DatasetEntry {
	res := d.Entries()
	slices.SortFunc(res, func(a, b DatasetEntry) int {
		if diff := b.RecordCount - a.RecordCount; diff != 0 {
			return diff
		}
		if a.Key < b.Key {
			return -1
		}
		return 1
	})
	if len(res) > n {
		res = res[:n]
	}
	return res
}

func citation(publisher, title, provider string, now time.Time) string {
	if publisher == "" {
		publisher = "Unknown publisher"
	}
	return fmt.Sprintf(
		"%s (%d). %s. Accessed via %s on %s.",
		publisher, now.Year(), title, provider,
		now.Format("2006-01-02"),
	)
}

// Taxa is the per-session taxon registry.
type Taxa struct {
	entries map[int64]*TaxonEntry
}

// NewTaxa creates an empty taxon registry.
func NewTaxa() *Taxa {
	return &Taxa{entries: make(map[int64]*TaxonEntry)}
}

// Track registers the taxon of one accepted record. The accepted taxon
// key and name are preferred; the record's own key and name are the
// fallback for records without synonym resolution.
func (t *Taxa) Track(rec *occurrence.Record) {
	key := rec.AcceptedTaxonKey
	if key == 0 {
		key = rec.TaxonKey
	}
	if key == 0 {
		return
	}
	if _, ok := t.entries[key]; ok {
		return
	}
	name := rec.AcceptedScientificName
	if name == "" {
		name = rec.ScientificName
	}
	t.entries[key] = &TaxonEntry{
		Key:             key,
		ScientificName:  name,
		Rank:            rec.TaxonRank,
		Synonyms:        []string{},
		VernacularNames: []string{},
	}
}

// Len returns the number of distinct taxa seen.
func (t *Taxa) Len() int {
	return len(t.entries)
}

// Entries returns the registry sorted by taxon key.
func (t *Taxa) Entries() []TaxonEntry {
	keys := slices.Sorted(maps.Keys(t.entries))
	res := make([]TaxonEntry, len(keys))
	for i, k := range keys {
		res[i] = *t.entries[k]
	}
	return res
}
