package occurrence

import (
	"time"
)

// UnknownGenus is the partition used for records whose genus could not
// be determined even by parsing the scientific name.
const UnknownGenus = "Unknown"

// Record is the canonical, immutable output record of the pipeline.
// A Record is created once by Normalize from a raw record that already
// passed the quality gate, and is never mutated afterwards.
type Record struct {
	// ID is a deterministic UUID v5 derived from the dedup fingerprint.
	ID string `json:"id"`

	// Identifiers and attribution.
	GbifID       int64  `json:"gbif_id"`
	DatasetKey   string `json:"dataset_key"`
	DatasetName  string `json:"dataset_name,omitempty"`
	Publisher    string `json:"publisher,omitempty"`
	License      string `json:"license"`
	RightsHolder string `json:"rights_holder,omitempty"`

	// Taxonomic ladder.
	ScientificName         string `json:"scientific_name"`
	AcceptedScientificName string `json:"accepted_scientific_name,omitempty"`
	TaxonKey               int64  `json:"taxon_key,omitempty"`
	AcceptedTaxonKey       int64  `json:"accepted_taxon_key,omitempty"`
	TaxonRank              string `json:"taxon_rank,omitempty"`
	Kingdom                string `json:"kingdom,omitempty"`
	Phylum                 string `json:"phylum,omitempty"`
	Class                  string `json:"class,omitempty"`
	Order                  string `json:"order,omitempty"`
	Family                 string `json:"family"`
	Genus                  string `json:"genus,omitempty"`
	Species                string `json:"species,omitempty"`

	// Temporal fields.
	EventDate    string `json:"event_date,omitempty"`
	Year         int    `json:"year,omitempty"`
	Month        int    `json:"month,omitempty"`
	Day          int    `json:"day,omitempty"`
	RecordedBy   string `json:"recorded_by,omitempty"`
	IdentifiedBy string `json:"identified_by,omitempty"`

	// Geography. The rounded pair (5 decimal places, about 1 meter of
	// precision) is for downstream consumers; the dedup fingerprint
	// rounds the raw coordinates to 4 decimal places independently.
	DecimalLatitude  float64 `json:"decimal_latitude"`
	DecimalLongitude float64 `json:"decimal_longitude"`
	LatitudeRounded  float64 `json:"latitude_rounded"`
	LongitudeRounded float64 `json:"longitude_rounded"`

	// Administrative geography.
	Country       string `json:"country,omitempty"`
	StateProvince string `json:"state_province,omitempty"`
	County        string `json:"county,omitempty"`
	Municipality  string `json:"municipality,omitempty"`
	Locality      string `json:"locality,omitempty"`

	// Occurrence metadata.
	BasisOfRecord      string `json:"basis_of_record"`
	EstablishmentMeans string `json:"establishment_means,omitempty"`
	OccurrenceStatus   string `json:"occurrence_status,omitempty"`
	IndividualCount    int    `json:"individual_count,omitempty"`
	LifeStage          string `json:"life_stage,omitempty"`
	Sex                string `json:"sex,omitempty"`

	InstitutionCode string `json:"institution_code,omitempty"`
	CollectionCode  string `json:"collection_code,omitempty"`
	CatalogNumber   string `json:"catalog_number,omitempty"`

	MediaURLs  []string `json:"media_urls,omitempty"`
	References []string `json:"references,omitempty"`
	Issues     []string `json:"issues,omitempty"`

	ProcessedAt  time.Time `json:"processed_at"`
	QualityScore int       `json:"quality_score"`
}

// PartitionKey returns the genus partition this record belongs to.
// Records without a genus fall into the UnknownGenus partition.
func (r *Record) PartitionKey() string {
	if r.Genus == "" {
		return UnknownGenus
	}
	return r.Genus
}
