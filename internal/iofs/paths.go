package iofs

import (
	"fmt"
	"path/filepath"
)

// Export artifact locations relative to the output root. Partitions are
// one JSONL file per genus; catalogs and reports are whole documents.

func PartitionsDir(root string) string {
	return filepath.Join(root, "occurrences", "jsonl")
}

func CatalogDir(root string) string {
	return filepath.Join(root, "catalog")
}

func ReportsDir(root string) string {
	return filepath.Join(root, "reports")
}

func PartitionFile(root, genus string) string {
	return filepath.Join(
		PartitionsDir(root),
		fmt.Sprintf("genus=%s.jsonl", genus),
	)
}

func DatasetsFile(root string) string {
	return filepath.Join(CatalogDir(root), "datasets.json")
}

func TaxaFile(root string) string {
	return filepath.Join(CatalogDir(root), "taxa.json")
}

func QualitySummaryFile(root string) string {
	return filepath.Join(ReportsDir(root), "quality_summary.md")
}

func DataDictionaryFile(root string) string {
	return filepath.Join(ReportsDir(root), "data_dictionary.md")
}

func MediaValidationFile(root string) string {
	return filepath.Join(ReportsDir(root), "media_validation.md")
}

func OutputDirs(root string) []string {
	return []string{
		PartitionsDir(root),
		CatalogDir(root),
		ReportsDir(root),
	}
}
