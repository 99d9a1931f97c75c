// Package quality implements the ordered predicate gate that decides
// whether a raw occurrence record enters the pipeline, and the per-run
// statistics that attribute every rejection to a named reason.
//
// This package has no I/O dependencies.
package quality

import (
	"github.com/gnames/gnharvest/pkg/filters"
	"github.com/gnames/gnharvest/pkg/occurrence"
)

// Reason names a rejection cause. Reasons are stable strings because
// they key the counters in the quality summary report.
type Reason string

const (
	ReasonWrongFamily       Reason = "wrong_family"
	ReasonDisallowedLicense Reason = "disallowed_license"
	ReasonDisallowedBasis   Reason = "disallowed_basis"
	ReasonNoCoordinates     Reason = "missing_coordinates"
	ReasonHighUncertainty   Reason = "high_uncertainty"
	ReasonExcludedIssue     Reason = "excluded_issue"
	ReasonOutOfRange        Reason = "coordinates_out_of_range"
	ReasonZeroCoordinates   Reason = "zero_coordinates"
)

// Gate is the stateless quality filter. Its checks execute in a fixed
// order and short-circuit on the first failure.
type Gate struct {
	family         string
	maxUncertainty float64
	licenses       map[string]struct{}
	bases          map[string]struct{}
	excludedIssues map[string]struct{}
}

// NewGate builds a Gate for one target family from the configured
// allow-lists and uncertainty threshold.
func NewGate(
	family string,
	maxUncertaintyMeters float64,
	f *filters.Filters,
) *Gate {
	return &Gate{
		family:         family,
		maxUncertainty: maxUncertaintyMeters,
		licenses:       toSet(f.Licenses),
		bases:          toSet(f.BasisOfRecord),
		excludedIssues: toSet(f.ExcludedIssues),
	}
}

// Check runs the gate over one raw record. It returns ok=true when the
// record passes every predicate; otherwise ok=false and the reason of
// the first failed check.
func (g *Gate) Check(raw *occurrence.RawRecord) (Reason, bool) {
	if raw.Family != g.family {
		return ReasonWrongFamily, false
	}
	if _, ok := g.licenses[raw.License]; !ok {
		return ReasonDisallowedLicense, false
	}
	if _, ok := g.bases[raw.BasisOfRecord]; !ok {
		return ReasonDisallowedBasis, false
	}
	if raw.DecimalLatitude == nil || raw.DecimalLongitude == nil {
		return ReasonNoCoordinates, false
	}
	if u := raw.CoordinateUncertaintyInMeters; u != nil &&
		*u > g.maxUncertainty {
		return ReasonHighUncertainty, false
	}
	for _, issue := range raw.Issues {
		if _, ok := g.excludedIssues[issue]; ok {
			return ReasonExcludedIssue, false
		}
	}
	lat, lon := *raw.DecimalLatitude, *raw.DecimalLongitude
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return ReasonOutOfRange, false
	}
	// (0,0) is a missing-data sentinel, not a real location.
	if lat == 0 && lon == 0 {
		return ReasonZeroCoordinates, false
	}
	return "", true
}

func toSet(ss []string) map[string]struct{} {
	res := make(map[string]struct{}, len(ss))
	for _, s := range ss {
		res[s] = struct{}{}
	}
	return res
}
