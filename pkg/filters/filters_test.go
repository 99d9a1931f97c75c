package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestDefault verifies the built-in allow-lists are usable.
func TestDefault(t *testing.T) {
	f := Default()
	assert.NotEmpty(t, f.Licenses)
	assert.NotEmpty(t, f.BasisOfRecord)
	assert.NotEmpty(t, f.ExcludedIssues)
	assert.Empty(t, f.Validate())

	assert.Contains(t, f.Licenses, "CC0_1_0")
	assert.Contains(t, f.BasisOfRecord, "HUMAN_OBSERVATION")
	assert.Contains(t, f.ExcludedIssues, "ZERO_COORDINATE")
}

// TestValidate verifies empty allow-lists are reported as problems.
func TestValidate(t *testing.T) {
	f := &Filters{}
	problems := f.Validate()
	assert.Len(t, problems, 2)

	f = Default()
	f.Licenses = nil
	problems = f.Validate()
	assert.Len(t, problems, 1)
	assert.Contains(t, problems[0], "licenses")

	// An empty exclusion list is permissive, not broken.
	f = Default()
	f.ExcludedIssues = nil
	assert.Empty(t, f.Validate())
}
