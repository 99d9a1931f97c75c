package quality

import (
	"testing"

	"github.com/gnames/gnharvest/pkg/filters"
	"github.com/gnames/gnharvest/pkg/occurrence"
	"github.com/stretchr/testify/assert"
)

func ptr(v float64) *float64 { return &v }

// goodRaw returns a raw record that passes every check of the default
// gate.
func goodRaw() *occurrence.RawRecord {
	return &occurrence.RawRecord{
		Key:                           1,
		DatasetKey:                    "ds-1",
		Family:                        "Orchidaceae",
		License:                       "CC_BY_4_0",
		BasisOfRecord:                 "HUMAN_OBSERVATION",
		DecimalLatitude:               ptr(42.1),
		DecimalLongitude:              ptr(-71.2),
		CoordinateUncertaintyInMeters: ptr(30),
		ScientificName:                "Cypripedium acaule Aiton",
	}
}

func defaultGate() *Gate {
	return NewGate("Orchidaceae", 50_000, filters.Default())
}

// TestCheck_Accept verifies a complete, well-located record passes the
// gate.
func TestCheck_Accept(t *testing.T) {
	reason, ok := defaultGate().Check(goodRaw())
	assert.True(t, ok)
	assert.Empty(t, reason)
}

// TestCheck_Rejections exercises every predicate of the gate.
func TestCheck_Rejections(t *testing.T) {
	tests := []struct {
		msg    string
		mod    func(raw *occurrence.RawRecord)
		reason Reason
	}{
		{
			"wrong family",
			func(r *occurrence.RawRecord) { r.Family = "Fagaceae" },
			ReasonWrongFamily,
		},
		{
			"disallowed license",
			func(r *occurrence.RawRecord) { r.License = "CC_BY_NC_ND_4_0" },
			ReasonDisallowedLicense,
		},
		{
			"disallowed basis",
			func(r *occurrence.RawRecord) { r.BasisOfRecord = "FOSSIL_SPECIMEN" },
			ReasonDisallowedBasis,
		},
		{
			"missing latitude",
			func(r *occurrence.RawRecord) { r.DecimalLatitude = nil },
			ReasonNoCoordinates,
		},
		{
			"missing longitude",
			func(r *occurrence.RawRecord) { r.DecimalLongitude = nil },
			ReasonNoCoordinates,
		},
		{
			"uncertainty above threshold",
			func(r *occurrence.RawRecord) {
				r.CoordinateUncertaintyInMeters = ptr(75_000)
			},
			ReasonHighUncertainty,
		},
		{
			"excluded issue flag",
			func(r *occurrence.RawRecord) {
				r.Issues = []string{"TAXON_MATCH_FUZZY", "COORDINATE_INVALID"}
			},
			ReasonExcludedIssue,
		},
		{
			"latitude out of range",
			func(r *occurrence.RawRecord) { r.DecimalLatitude = ptr(91) },
			ReasonOutOfRange,
		},
		{
			"longitude out of range",
			func(r *occurrence.RawRecord) { r.DecimalLongitude = ptr(-181) },
			ReasonOutOfRange,
		},
		{
			"zero-zero coordinates",
			func(r *occurrence.RawRecord) {
				r.DecimalLatitude = ptr(0)
				r.DecimalLongitude = ptr(0)
			},
			ReasonZeroCoordinates,
		},
	}

	gate := defaultGate()
	for _, v := range tests {
		raw := goodRaw()
		v.mod(raw)
		reason, ok := gate.Check(raw)
		assert.False(t, ok, v.msg)
		assert.Equal(t, v.reason, reason, v.msg)
	}
}

// TestCheck_Order verifies the first failing predicate wins when
// several would fail.
func TestCheck_Order(t *testing.T) {
	raw := goodRaw()
	raw.Family = "Fagaceae"
	raw.License = "CC_BY_NC_ND_4_0"
	raw.DecimalLatitude = nil

	reason, ok := defaultGate().Check(raw)
	assert.False(t, ok)
	assert.Equal(t, ReasonWrongFamily, reason)
}

// TestCheck_MissingUncertainty verifies absent uncertainty does not
// reject; only a value above the threshold does.
func TestCheck_MissingUncertainty(t *testing.T) {
	raw := goodRaw()
	raw.CoordinateUncertaintyInMeters = nil

	_, ok := defaultGate().Check(raw)
	assert.True(t, ok)
}

// TestCheck_BenignIssues verifies issue flags outside the exclusion
// list do not reject.
func TestCheck_BenignIssues(t *testing.T) {
	raw := goodRaw()
	raw.Issues = []string{"TAXON_MATCH_FUZZY", "RECORDED_DATE_INVALID"}

	_, ok := defaultGate().Check(raw)
	assert.True(t, ok)
}
