package occurrence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fpRecord() *Record {
	return &Record{
		ScientificName:   "Cypripedium acaule Aiton",
		EventDate:        "2024-05-20",
		DecimalLatitude:  42.123456,
		DecimalLongitude: -71.654321,
		DatasetKey:       "ds-1",
	}
}

// TestFingerprint verifies the composite key format and its 4-decimal
// coordinate precision.
func TestFingerprint(t *testing.T) {
	rec := fpRecord()
	assert.Equal(
		t,
		"Cypripedium acaule Aiton|2024-05-20|42.1235|-71.6543|ds-1",
		rec.Fingerprint(),
	)
}

// TestFingerprint_NearbyCoordinates verifies records that differ only
// past the 4th decimal place collapse into one fingerprint.
func TestFingerprint_NearbyCoordinates(t *testing.T) {
	a := fpRecord()
	b := fpRecord()
	b.DecimalLatitude = 42.123460
	b.DecimalLongitude = -71.654318

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.Equal(t, a.FingerprintID(), b.FingerprintID())
}

// TestFingerprint_Distinct verifies each component participates in the
// key.
func TestFingerprint_Distinct(t *testing.T) {
	base := fpRecord()

	tests := []struct {
		msg string
		mod func(r *Record)
	}{
		{"name", func(r *Record) { r.ScientificName = "Cypripedium reginae Walter" }},
		{"date", func(r *Record) { r.EventDate = "2024-05-21" }},
		{"latitude", func(r *Record) { r.DecimalLatitude = 42.2 }},
		{"longitude", func(r *Record) { r.DecimalLongitude = -71.7 }},
		{"dataset", func(r *Record) { r.DatasetKey = "ds-2" }},
	}

	for _, v := range tests {
		rec := fpRecord()
		v.mod(rec)
		assert.NotEqual(t, base.Fingerprint(), rec.Fingerprint(), v.msg)
	}
}

// TestFingerprintID_Stable pins the UUID derivation so stored IDs stay
// comparable across runs.
func TestFingerprintID_Stable(t *testing.T) {
	a := fpRecord().FingerprintID()
	b := fpRecord().FingerprintID()
	assert.Equal(t, a, b)
	assert.Equal(t, a.String(), fpRecord().FingerprintID().String())
}
