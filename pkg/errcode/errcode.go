package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Filters errors
	FiltersConfigError
	FiltersEmptyError

	// Fetch errors
	FetchRequestError
	FetchStatusError

	// Export errors
	ExportPartitionError
	ExportCatalogError
	ExportReportError
)
