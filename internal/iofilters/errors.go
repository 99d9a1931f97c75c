package iofilters

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnharvest/pkg/errcode"
)

// FiltersConfigError creates an error for when filters.yaml cannot be
// read or parsed.
func FiltersConfigError(path string, err error) error {
	msg := `Cannot load quality filters

<em>File path:</em> %s

<em>How to fix:</em>
  1. Check the file exists and is readable
  2. Verify it is valid YAML
  3. Delete it to regenerate the default on next run`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.FiltersConfigError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot load filters: %w", err),
	}
}

// FiltersEmptyError creates an error for allow-lists that would reject
// every record.
func FiltersEmptyError(path string, problems []string) error {
	msg := `Quality filters are unusable

<em>File path:</em> %s

<em>Problems:</em>
%s

<em>How to fix:</em>
  1. Add at least one value to each empty list
  2. Or delete the file to regenerate the default`

	var lines []string
	for _, p := range problems {
		lines = append(lines, "  - "+p)
	}
	vars := []any{path, strings.Join(lines, "\n")}

	return &gn.Error{
		Code: errcode.FiltersEmptyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("unusable filters: %s",
			strings.Join(problems, "; ")),
	}
}
