package occurrence

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 { return &v }

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

// fullRaw returns a raw record with every score-bearing field filled.
func fullRaw() *RawRecord {
	return &RawRecord{
		Key:                    101,
		DatasetKey:             "ds-1",
		DatasetName:            "Herbarium Collection",
		Publisher:              "Example Museum",
		License:                "CC_BY_4_0",
		BasisOfRecord:          "PRESERVED_SPECIMEN",
		ScientificName:         "Cypripedium acaule Aiton",
		AcceptedScientificName: "Cypripedium acaule Aiton",
		TaxonKey:               2805385,
		AcceptedTaxonKey:       2805385,
		Family:                 "Orchidaceae",
		Genus:                  "Cypripedium",
		Species:                "Cypripedium acaule",

		DecimalLatitude:               ptr(42.123456),
		DecimalLongitude:              ptr(-71.654321),
		CoordinateUncertaintyInMeters: ptr(50),

		EventDate:       "2024-05-20",
		Year:            2024,
		RecordedBy:      "J. Smith",
		InstitutionCode: "EM",
		Locality:        "Blue Hills Reservation",
	}
}

// TestNormalize_Deterministic verifies the same raw record with the
// same timestamp yields identical canonical records.
func TestNormalize_Deterministic(t *testing.T) {
	a, err := Normalize(fullRaw(), testNow, nil)
	require.NoError(t, err)
	b, err := Normalize(fullRaw(), testNow, nil)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// TestNormalize_Fields verifies coordinate rounding, media flattening,
// and the identifier assignment.
func TestNormalize_Fields(t *testing.T) {
	raw := fullRaw()
	raw.Media = []MediaItem{
		{Type: "StillImage", Identifier: "https://img.example.org/1.jpg"},
		{Type: "StillImage", Identifier: ""},
	}
	raw.References = "https://obs.example.org/101"

	rec, err := Normalize(raw, testNow, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(101), rec.GbifID)
	assert.Equal(t, 42.123456, rec.DecimalLatitude)
	assert.Equal(t, 42.12346, rec.LatitudeRounded)
	assert.Equal(t, -71.65432, rec.LongitudeRounded)
	assert.Equal(t, []string{"https://img.example.org/1.jpg"}, rec.MediaURLs)
	assert.Equal(t, []string{"https://obs.example.org/101"}, rec.References)
	assert.Equal(t, testNow, rec.ProcessedAt)
	assert.Equal(t, rec.FingerprintID().String(), rec.ID)
}

// TestNormalize_ScoreBounds verifies the completeness score spans the
// full [0,10] range.
func TestNormalize_ScoreBounds(t *testing.T) {
	// Full record with high-precision coordinates scores 10.
	rec, err := Normalize(fullRaw(), testNow, nil)
	require.NoError(t, err)
	assert.Equal(t, 10, rec.QualityScore)

	// A record with nothing but coordinates and a dataset scores 0.
	bare := &RawRecord{
		Key:              5,
		DatasetKey:       "ds-1",
		DecimalLatitude:  ptr(10),
		DecimalLongitude: ptr(20),
	}
	rec, err = Normalize(bare, testNow, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.QualityScore)
}

// TestNormalize_ScoreUncertaintyTiers verifies the graded uncertainty
// weights.
func TestNormalize_ScoreUncertaintyTiers(t *testing.T) {
	tests := []struct {
		msg         string
		uncertainty *float64
		score       int
	}{
		{"precise location", ptr(100), 10},
		{"medium precision", ptr(1000), 9},
		{"coarse location", ptr(25_000), 8},
		{"unknown precision", nil, 8},
	}

	for _, v := range tests {
		raw := fullRaw()
		raw.CoordinateUncertaintyInMeters = v.uncertainty
		rec, err := Normalize(raw, testNow, nil)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.score, rec.QualityScore, v.msg)
	}
}

type fakeParser struct{}

func (fakeParser) Genus(name string) string {
	genus, _, _ := strings.Cut(name, " ")
	return genus
}

// TestNormalize_GenusFallback verifies the parser recovers a genus
// only when the raw record lacks one.
func TestNormalize_GenusFallback(t *testing.T) {
	raw := fullRaw()
	raw.Genus = ""
	rec, err := Normalize(raw, testNow, fakeParser{})
	require.NoError(t, err)
	assert.Equal(t, "Cypripedium", rec.Genus)

	// The provider's genus wins over the parsed one.
	raw = fullRaw()
	rec, err = Normalize(raw, testNow, fakeParser{})
	require.NoError(t, err)
	assert.Equal(t, "Cypripedium", rec.Genus)

	// Without a parser the genus stays empty and the record lands in
	// the Unknown partition.
	raw = fullRaw()
	raw.Genus = ""
	rec, err = Normalize(raw, testNow, nil)
	require.NoError(t, err)
	assert.Empty(t, rec.Genus)
	assert.Equal(t, UnknownGenus, rec.PartitionKey())
}

// TestNormalize_Errors verifies the invariants that make a raw record
// unprocessable.
func TestNormalize_Errors(t *testing.T) {
	raw := fullRaw()
	raw.DecimalLatitude = nil
	_, err := Normalize(raw, testNow, nil)
	var perr *ProcessingError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, int64(101), perr.GbifID)

	raw = fullRaw()
	raw.DatasetKey = ""
	_, err = Normalize(raw, testNow, nil)
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Error(), "dataset key")
}

// TestRound verifies rounding at the partition and fingerprint
// precisions.
func TestRound(t *testing.T) {
	assert.Equal(t, 42.12346, Round(42.123456, 5))
	assert.Equal(t, 42.1235, Round(42.123456, 4))
	assert.Equal(t, -71.6543, Round(-71.654321, 4))
	assert.Equal(t, 10.0, Round(10, 4))
}
