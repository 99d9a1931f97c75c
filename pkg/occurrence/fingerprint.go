package occurrence

import (
	"strconv"
	"strings"

	"github.com/gnames/gnuuid"
	"github.com/google/uuid"
)

// Fingerprint returns the composite dedup key of the record:
// scientific name, event date, coordinates rounded to 4 decimal places,
// and dataset key. Two records from the same dataset that name the same
// taxon on the same date within ~11 meters collapse into one.
func (r *Record) Fingerprint() string {
	lat := strconv.FormatFloat(Round(r.DecimalLatitude, 4), 'f', -1, 64)
	lon := strconv.FormatFloat(Round(r.DecimalLongitude, 4), 'f', -1, 64)
	return strings.Join(
		[]string{r.ScientificName, r.EventDate, lat, lon, r.DatasetKey},
		"|",
	)
}

// FingerprintID returns the UUID v5 of the fingerprint string.
// The same fingerprint always yields the same UUID, which doubles as
// the record's stable ID.
func (r *Record) FingerprintID() uuid.UUID {
	return gnuuid.New(r.Fingerprint())
}
