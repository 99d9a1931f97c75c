// Package occurrence provides the record types of the harvest pipeline:
// the provider's raw occurrence payload, the canonical record it is
// normalized into, the completeness score, and the dedup fingerprint.
//
// This package has no I/O dependencies. Untyped handling of provider
// payloads stops at the Page/RawRecord boundary; everything downstream
// works with the canonical Record.
package occurrence

// Page is one page of the provider's occurrence-search response.
// Only the result list and its length matter for pagination; Count is
// the provider's claimed total and is never trusted for reporting.
type Page struct {
	Offset       int         `json:"offset"`
	Limit        int         `json:"limit"`
	Count        int64       `json:"count"`
	EndOfRecords bool        `json:"endOfRecords"`
	Results      []RawRecord `json:"results"`
}

// MediaItem is one media attachment of a raw occurrence record.
type MediaItem struct {
	Type       string `json:"type"`
	Format     string `json:"format"`
	Identifier string `json:"identifier"`
}

// RawRecord is the provider's native document for one occurrence.
// It is transient: it exists only within one page's processing and is
// discarded once the record is rejected or normalized.
//
// Pointer fields distinguish absent values from zero values where the
// difference matters to the quality gate.
type RawRecord struct {
	Key              int64  `json:"key"`
	DatasetKey       string `json:"datasetKey"`
	DatasetName      string `json:"datasetName"`
	PublishingOrgKey string `json:"publishingOrgKey"`
	Publisher        string `json:"publisher"`
	License          string `json:"license"`
	RightsHolder     string `json:"rightsHolder"`

	BasisOfRecord string `json:"basisOfRecord"`

	ScientificName         string `json:"scientificName"`
	AcceptedScientificName string `json:"acceptedScientificName"`
	TaxonKey               int64  `json:"taxonKey"`
	AcceptedTaxonKey       int64  `json:"acceptedTaxonKey"`
	TaxonRank              string `json:"taxonRank"`
	Kingdom                string `json:"kingdom"`
	Phylum                 string `json:"phylum"`
	Class                  string `json:"class"`
	Order                  string `json:"order"`
	Family                 string `json:"family"`
	Genus                  string `json:"genus"`
	Species                string `json:"species"`

	DecimalLatitude               *float64 `json:"decimalLatitude"`
	DecimalLongitude              *float64 `json:"decimalLongitude"`
	CoordinateUncertaintyInMeters *float64 `json:"coordinateUncertaintyInMeters"`

	EventDate    string `json:"eventDate"`
	Year         int    `json:"year"`
	Month        int    `json:"month"`
	Day          int    `json:"day"`
	RecordedBy   string `json:"recordedBy"`
	IdentifiedBy string `json:"identifiedBy"`

	Country       string `json:"country"`
	StateProvince string `json:"stateProvince"`
	County        string `json:"county"`
	Municipality  string `json:"municipality"`
	Locality      string `json:"locality"`

	EstablishmentMeans string `json:"establishmentMeans"`
	OccurrenceStatus   string `json:"occurrenceStatus"`
	IndividualCount    int    `json:"individualCount"`
	LifeStage          string `json:"lifeStage"`
	Sex                string `json:"sex"`

	InstitutionCode string `json:"institutionCode"`
	CollectionCode  string `json:"collectionCode"`
	CatalogNumber   string `json:"catalogNumber"`

	References string      `json:"references"`
	Issues     []string    `json:"issues"`
	Media      []MediaItem `json:"media"`
}
