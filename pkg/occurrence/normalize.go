package occurrence

import (
	"fmt"
	"math"
	"time"
)

// GenusParser recovers a genus from a scientific name string.
// It is satisfied by parserpool.Pool; a nil parser disables the fallback.
type GenusParser interface {
	Genus(name string) string
}

// ProcessingError reports that one raw record could not be normalized.
// The record is skipped and logged with its identifier; the page
// continues.
type ProcessingError struct {
	GbifID int64
	Reason string
}

func (e *ProcessingError) Error() string {
	return fmt.Sprintf("cannot process record %d: %s", e.GbifID, e.Reason)
}

// Normalize maps a raw record that passed the quality gate into exactly
// one canonical Record. The now argument becomes the processing
// timestamp, so normalizing the same raw record with the same now value
// is deterministic.
//
// When the raw record lacks a genus, the scientific name is parsed to
// recover one; if that also fails the record lands in the UnknownGenus
// partition at export time.
func Normalize(
	raw *RawRecord,
	now time.Time,
	parser GenusParser,
) (*Record, error) {
	// The gate guarantees coordinates, but normalization is also used
	// on its own; keep the invariant local.
	if raw.DecimalLatitude == nil || raw.DecimalLongitude == nil {
		return nil, &ProcessingError{
			GbifID: raw.Key,
			Reason: "missing coordinates",
		}
	}
	if raw.DatasetKey == "" {
		return nil, &ProcessingError{
			GbifID: raw.Key,
			Reason: "missing dataset key",
		}
	}

	lat := *raw.DecimalLatitude
	lon := *raw.DecimalLongitude

	genus := raw.Genus
	if genus == "" && parser != nil {
		genus = parser.Genus(raw.ScientificName)
	}

	var mediaURLs []string
	for _, m := range raw.Media {
		if m.Identifier != "" {
			mediaURLs = append(mediaURLs, m.Identifier)
		}
	}

	var refs []string
	if raw.References != "" {
		refs = []string{raw.References}
	}

	res := &Record{
		GbifID:       raw.Key,
		DatasetKey:   raw.DatasetKey,
		DatasetName:  raw.DatasetName,
		Publisher:    raw.Publisher,
		License:      raw.License,
		RightsHolder: raw.RightsHolder,

		ScientificName:         raw.ScientificName,
		AcceptedScientificName: raw.AcceptedScientificName,
		TaxonKey:               raw.TaxonKey,
		AcceptedTaxonKey:       raw.AcceptedTaxonKey,
		TaxonRank:              raw.TaxonRank,
		Kingdom:                raw.Kingdom,
		Phylum:                 raw.Phylum,
		Class:                  raw.Class,
		Order:                  raw.Order,
		Family:                 raw.Family,
		Genus:                  genus,
		Species:                raw.Species,

		EventDate:    raw.EventDate,
		Year:         raw.Year,
		Month:        raw.Month,
		Day:          raw.Day,
		RecordedBy:   raw.RecordedBy,
		IdentifiedBy: raw.IdentifiedBy,

		DecimalLatitude:  lat,
		DecimalLongitude: lon,
		LatitudeRounded:  Round(lat, 5),
		LongitudeRounded: Round(lon, 5),

		Country:       raw.Country,
		StateProvince: raw.StateProvince,
		County:        raw.County,
		Municipality:  raw.Municipality,
		Locality:      raw.Locality,

		BasisOfRecord:      raw.BasisOfRecord,
		EstablishmentMeans: raw.EstablishmentMeans,
		OccurrenceStatus:   raw.OccurrenceStatus,
		IndividualCount:    raw.IndividualCount,
		LifeStage:          raw.LifeStage,
		Sex:                raw.Sex,

		InstitutionCode: raw.InstitutionCode,
		CollectionCode:  raw.CollectionCode,
		CatalogNumber:   raw.CatalogNumber,

		MediaURLs:  mediaURLs,
		References: refs,
		Issues:     raw.Issues,

		ProcessedAt: now,
	}

	res.QualityScore = score(raw, res)
	res.ID = res.FingerprintID().String()

	return res, nil
}

// score computes the additive completeness score. The weights sum to
// exactly 10 under full completeness, so no capping is required.
func score(raw *RawRecord, rec *Record) int {
	var res int
	if rec.ScientificName != "" {
		res++
	}
	if rec.AcceptedScientificName != "" {
		res++
	}
	if rec.Genus != "" && rec.Species != "" {
		res++
	}
	if u := raw.CoordinateUncertaintyInMeters; u != nil {
		switch {
		case *u <= 100:
			res += 2
		case *u <= 1000:
			res++
		}
	}
	if rec.EventDate != "" {
		res++
	}
	if rec.Year > 0 {
		res++
	}
	if rec.RecordedBy != "" {
		res++
	}
	if rec.InstitutionCode != "" {
		res++
	}
	if rec.Locality != "" || len(rec.MediaURLs) > 0 {
		res++
	}
	return res
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}
