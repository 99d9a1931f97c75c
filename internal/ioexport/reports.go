package ioexport

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnharvest/pkg/gnharvest"
	"github.com/gnames/gnharvest/pkg/occurrence"
)

const topDatasets = 20

// qualitySummary renders the acceptance/rejection statistics of the
// session. It describes only what was actually accepted, never the
// provider's claimed totals.
func qualitySummary(res *gnharvest.Result) string {
	var b strings.Builder
	st := res.Stats

	fmt.Fprintf(&b, "# Quality Summary: %s\n\n", res.Family)
	fmt.Fprintf(&b, "Harvest started %s, finished %s.\n\n",
		res.StartedAt.Format("2006-01-02 15:04:05"),
		res.FinishedAt.Format("2006-01-02 15:04:05"),
	)

	b.WriteString("## Totals\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Records processed | %s |\n",
		humanize.Comma(int64(st.Processed)))
	fmt.Fprintf(&b, "| Records accepted | %s |\n",
		humanize.Comma(int64(st.Accepted)))
	fmt.Fprintf(&b, "| Duplicates removed | %s |\n",
		humanize.Comma(int64(st.Duplicates)))
	fmt.Fprintf(&b, "| Processing errors | %s |\n",
		humanize.Comma(int64(st.ProcessingErrors)))
	fmt.Fprintf(&b, "| Acceptance rate | %.1f%% |\n",
		st.AcceptanceRate()*100)
	fmt.Fprintf(&b, "| Pages fetched | %d |\n", st.PagesFetched)
	fmt.Fprintf(&b, "| Pages lost to errors | %d |\n\n", st.PagesLost)

	b.WriteString("## Rejection Reasons\n\n")
	if len(st.Rejections) == 0 {
		b.WriteString("No records were rejected.\n\n")
	} else {
		fmt.Fprintf(&b, "| Reason | Count |\n|---|---|\n")
		for _, reason := range st.Reasons() {
			fmt.Fprintf(&b, "| %s | %s |\n",
				reason, humanize.Comma(int64(st.Rejections[reason])))
		}
		b.WriteString("\n")
	}

	writeDistribution(&b, "License Distribution", res.Records,
		func(r *occurrence.Record) string { return r.License })
	writeDistribution(&b, "Basis of Record Distribution", res.Records,
		func(r *occurrence.Record) string { return r.BasisOfRecord })

	fmt.Fprintf(&b, "## Top %d Datasets\n\n", topDatasets)
	top := res.Datasets.TopByCount(topDatasets)
	if len(top) == 0 {
		b.WriteString("No datasets were recorded.\n")
	} else {
		fmt.Fprintf(&b, "| Title | Dataset Key | Records |\n|---|---|---|\n")
		for _, ds := range top {
			fmt.Fprintf(&b, "| %s | %s | %s |\n",
				ds.Title, ds.Key, humanize.Comma(int64(ds.RecordCount)))
		}
	}

	return b.String()
}

// writeDistribution renders a count+percentage table over the accepted
// records for one categorical field.
func writeDistribution(
	b *strings.Builder,
	title string,
	records []*occurrence.Record,
	key func(*occurrence.Record) string,
) {
	fmt.Fprintf(b, "## %s\n\n", title)
	if len(records) == 0 {
		b.WriteString("No records were accepted.\n\n")
		return
	}

	counts := make(map[string]int)
	for _, rec := range records {
		counts[key(rec)]++
	}
	keys := slices.Collect(maps.Keys(counts))
	slices.SortFunc(keys, func(a, c string) int {
		if d := counts[c] - counts[a]; d != 0 {
			return d
		}
		return strings.Compare(a, c)
	})

	fmt.Fprintf(b, "| Value | Count | Share |\n|---|---|---|\n")
	total := len(records)
	for _, k := range keys {
		fmt.Fprintf(b, "| %s | %s | %.1f%% |\n",
			k, humanize.Comma(int64(counts[k])),
			float64(counts[k])/float64(total)*100)
	}
	b.WriteString("\n")
}

// dictionaryField documents one canonical schema field.
type dictionaryField struct {
	name, typ, desc string
}

var dictionary = []dictionaryField{
	{"id", "string", "Deterministic UUID v5 of the dedup fingerprint."},
	{"gbif_id", "integer", "Provider's occurrence identifier."},
	{"dataset_key", "string", "Provider's dataset identifier."},
	{"dataset_name", "string", "Title of the source dataset."},
	{"publisher", "string", "Publishing organization of the dataset."},
	{"license", "string", "License identifier of the record."},
	{"rights_holder", "string", "Entity holding rights over the record."},
	{"scientific_name", "string", "Verbatim scientific name with authorship."},
	{"accepted_scientific_name", "string", "Name accepted by the provider's taxonomic backbone."},
	{"taxon_key", "integer", "Provider's taxon identifier."},
	{"accepted_taxon_key", "integer", "Identifier of the accepted taxon."},
	{"taxon_rank", "string", "Rank of the identified taxon."},
	{"kingdom", "string", "Kingdom of the taxonomic ladder."},
	{"phylum", "string", "Phylum of the taxonomic ladder."},
	{"class", "string", "Class of the taxonomic ladder."},
	{"order", "string", "Order of the taxonomic ladder."},
	{"family", "string", "Family; always equals the harvest target."},
	{"genus", "string", "Genus; recovered by name parsing when the provider omits it."},
	{"species", "string", "Species epithet binomial."},
	{"event_date", "string", "Verbatim event date of the observation."},
	{"year", "integer", "Decomposed year of the event."},
	{"month", "integer", "Decomposed month of the event."},
	{"day", "integer", "Decomposed day of the event."},
	{"recorded_by", "string", "Collector or observer of the record."},
	{"identified_by", "string", "Person who identified the taxon."},
	{"decimal_latitude", "number", "Raw latitude in decimal degrees."},
	{"decimal_longitude", "number", "Raw longitude in decimal degrees."},
	{"latitude_rounded", "number", "Latitude rounded to 5 decimal places."},
	{"longitude_rounded", "number", "Longitude rounded to 5 decimal places."},
	{"country", "string", "Country of the occurrence."},
	{"state_province", "string", "First-level administrative division."},
	{"county", "string", "Second-level administrative division."},
	{"municipality", "string", "Municipality of the occurrence."},
	{"locality", "string", "Free-text locality description."},
	{"basis_of_record", "string", "How the occurrence was captured."},
	{"establishment_means", "string", "Whether the organism is native, introduced, etc."},
	{"occurrence_status", "string", "Presence or absence statement."},
	{"individual_count", "integer", "Number of individuals observed."},
	{"life_stage", "string", "Life stage of the organism."},
	{"sex", "string", "Sex of the organism."},
	{"institution_code", "string", "Institution holding the record."},
	{"collection_code", "string", "Collection within the institution."},
	{"catalog_number", "string", "Catalog number within the collection."},
	{"media_urls", "string list", "URLs of media attachments."},
	{"references", "string list", "Reference URLs of the record."},
	{"issues", "string list", "Provider's raw issue flags."},
	{"processed_at", "timestamp", "When the pipeline normalized the record."},
	{"quality_score", "integer", "Completeness score in [0,10]."},
}

// dataDictionary renders the static, data-independent documentation of
// the canonical schema.
func dataDictionary() string {
	var b strings.Builder
	b.WriteString("# Data Dictionary\n\n")
	b.WriteString(
		"Canonical occurrence record schema. One record per line in the\n" +
			"genus-partitioned JSONL exports.\n\n")
	b.WriteString("| Field | Type | Description |\n|---|---|---|\n")
	for _, f := range dictionary {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", f.name, f.typ, f.desc)
	}
	return b.String()
}

// mediaValidation renders the advisory media reachability report.
func mediaValidation(r *MediaReport) string {
	var b strings.Builder
	b.WriteString("# Media Validation\n\n")
	b.WriteString(
		"Advisory reachability check of a bounded sample of media URLs.\n" +
			"Results never affect acceptance or export.\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| URLs sampled | %d |\n", r.Sampled)
	fmt.Fprintf(&b, "| Reachable | %d |\n", r.Reachable)
	fmt.Fprintf(&b, "| Unreachable | %d |\n", r.Unreachable)
	fmt.Fprintf(&b, "| Success rate | %.1f%% |\n\n", r.SuccessRate()*100)

	if len(r.Failures) > 0 {
		b.WriteString("## Unreachable URLs\n\n")
		for _, u := range r.Failures {
			fmt.Fprintf(&b, "- %s\n", u)
		}
	}
	return b.String()
}
