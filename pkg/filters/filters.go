// Package filters provides configuration and validation for the
// quality-gate allow-lists.
//
// This package defines the schema for filters.yaml, which users can edit
// to control which licenses, basis-of-record values, and geospatial issue
// flags the quality gate accepts. The values follow the provider's
// controlled vocabularies.
package filters

// Loader loads the filters.yaml configuration.
type Loader interface {
	Load() (*Filters, error)
}

// Filters represents the complete filters.yaml configuration file.
type Filters struct {
	// Licenses is the allow-list of license identifiers. A record whose
	// license is not in this list is rejected.
	Licenses []string `yaml:"licenses"`

	// BasisOfRecord is the allow-list of basis-of-record values.
	BasisOfRecord []string `yaml:"basis_of_record"`

	// ExcludedIssues lists geospatial issue flags that disqualify
	// a record when any of them appears in its issue list.
	ExcludedIssues []string `yaml:"excluded_issues"`
}

// Default returns the built-in allow-lists used when filters.yaml
// does not override them.
func Default() *Filters {
	return &Filters{
		Licenses: []string{
			"CC0_1_0",
			"CC_BY_4_0",
			"CC_BY_NC_4_0",
		},
		BasisOfRecord: []string{
			"HUMAN_OBSERVATION",
			"OBSERVATION",
			"PRESERVED_SPECIMEN",
		},
		ExcludedIssues: []string{
			"ZERO_COORDINATE",
			"COORDINATE_INVALID",
			"COORDINATE_OUT_OF_RANGE",
			"COUNTRY_COORDINATE_MISMATCH",
			"PRESUMED_SWAPPED_COORDINATE",
		},
	}
}

// Validate checks that the allow-lists are usable. Empty license or
// basis-of-record lists would reject every record, which is never what
// the user wants.
func (f *Filters) Validate() []string {
	var problems []string
	if len(f.Licenses) == 0 {
		problems = append(problems,
			"licenses list is empty, every record would be rejected")
	}
	if len(f.BasisOfRecord) == 0 {
		problems = append(problems,
			"basis_of_record list is empty, every record would be rejected")
	}
	return problems
}
