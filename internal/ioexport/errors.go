package ioexport

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnharvest/pkg/errcode"
)

// PartitionError creates an error for a partition file that could not
// be written.
func PartitionError(path string, err error) error {
	msg := `Cannot write partition file

<em>File path:</em> %s

<em>Possible causes:</em>
  - Output directory is not writable
  - Disk is full`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ExportPartitionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write partition %s: %w", path, err),
	}
}

// CatalogError creates an error for a catalog document that could not
// be written.
func CatalogError(path string, err error) error {
	msg := `Cannot write catalog

<em>File path:</em> %s`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ExportCatalogError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write catalog %s: %w", path, err),
	}
}

// ReportError creates an error for a report that could not be written.
func ReportError(path string, err error) error {
	msg := `Cannot write report

<em>File path:</em> %s`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ExportReportError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write report %s: %w", path, err),
	}
}
