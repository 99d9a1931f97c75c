// Package ioexport writes the artifacts of a finished harvest session:
// genus-partitioned JSONL datasets, the dataset and taxon catalogs, and
// the three reports. Failure to write one artifact is fatal for that
// artifact only; all others are still attempted.
package ioexport

import (
	"bufio"
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnharvest/internal/iofs"
	"github.com/gnames/gnharvest/pkg/catalog"
	"github.com/gnames/gnharvest/pkg/config"
	"github.com/gnames/gnharvest/pkg/gnharvest"
	"github.com/gnames/gnharvest/pkg/occurrence"
)

// exporter implements the Exporter interface.
type exporter struct {
	cfg *config.Config

	// now is replaceable in tests for deterministic documents.
	now func() time.Time
}

// New creates an Exporter rooted at cfg.Harvest.OutputDir.
func New(cfg *config.Config) gnharvest.Exporter {
	return &exporter{cfg: cfg, now: time.Now}
}

// Export writes partitions, catalogs, and reports. It returns the
// joined errors of all failed artifacts, nil when everything was
// written.
func (e *exporter) Export(
	ctx context.Context,
	res *gnharvest.Result,
) error {
	root := e.cfg.Harvest.OutputDir
	if err := iofs.EnsureOutputDirs(root); err != nil {
		// Without the directory tree no artifact can be written.
		return err
	}

	var errs []error

	gn.Info("(1/4) Writing genus partitions...")
	parts, err := e.writePartitions(res.Records)
	if err != nil {
		errs = append(errs, err)
		slog.Error("Cannot write partitions", "error", err)
	} else {
		gn.Message("<em>Wrote %d genus partitions</em>", parts)
	}

	gn.Info("(2/4) Writing catalogs...")
	if err = e.writeCatalogs(res); err != nil {
		errs = append(errs, err)
		slog.Error("Cannot write catalogs", "error", err)
	} else {
		gn.Message("<em>Wrote %d datasets, %d taxa</em>",
			res.Datasets.Len(), res.Taxa.Len())
	}

	gn.Info("(3/4) Writing reports...")
	if err = e.writeReport(
		iofs.QualitySummaryFile(root),
		qualitySummary(res),
	); err != nil {
		errs = append(errs, err)
		slog.Error("Cannot write quality summary", "error", err)
	}
	if err = e.writeReport(
		iofs.DataDictionaryFile(root),
		dataDictionary(),
	); err != nil {
		errs = append(errs, err)
		slog.Error("Cannot write data dictionary", "error", err)
	}

	gn.Info("(4/4) Validating media URLs...")
	skip := e.cfg.Harvest.SkipMediaCheck != nil &&
		*e.cfg.Harvest.SkipMediaCheck
	if skip {
		gn.Message("<em>Media validation skipped</em>")
	} else {
		report := e.validateMedia(ctx, res.Records)
		if err = e.writeReport(
			iofs.MediaValidationFile(root),
			mediaValidation(report),
		); err != nil {
			errs = append(errs, err)
			slog.Error("Cannot write media validation", "error", err)
		} else {
			gn.Message("<em>Probed %d media URLs, %d reachable</em>",
				report.Sampled, report.Reachable)
		}
	}

	return errors.Join(errs...)
}

// writePartitions groups records by genus and writes one JSONL file
// per partition. Records keep their fetch order within a partition.
// A failed partition does not stop the remaining ones; the joined
// errors cover every partition that could not be written.
func (e *exporter) writePartitions(
	records []*occurrence.Record,
) (int, error) {
	root := e.cfg.Harvest.OutputDir
	enc := gnfmt.GNjson{}

	partitions := make(map[string][]*occurrence.Record)
	for _, rec := range records {
		key := rec.PartitionKey()
		partitions[key] = append(partitions[key], rec)
	}

	var errs []error
	var written int
	for genus, recs := range partitions {
		path := iofs.PartitionFile(root, genus)
		if err := writeJSONL(path, recs, enc); err != nil {
			errs = append(errs, PartitionError(path, err))
			continue
		}
		written++
		slog.Debug("Partition written",
			"genus", genus, "records", len(recs))
	}
	return written, errors.Join(errs...)
}

func writeJSONL(
	path string,
	recs []*occurrence.Record,
	enc gnfmt.GNjson,
) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, rec := range recs {
		line, err := enc.Encode(rec)
		if err != nil {
			return err
		}
		if _, err = w.Write(line); err != nil {
			return err
		}
		if err = w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return w.Flush()
}

// datasetsDoc and taxaDoc are the whole-document catalog artifacts.
type datasetsDoc struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Provider    string                 `json:"provider"`
	Family      string                 `json:"family"`
	Count       int                    `json:"count"`
	Datasets    []catalog.DatasetEntry `json:"datasets"`
}

type taxaDoc struct {
	GeneratedAt time.Time            `json:"generated_at"`
	Family      string               `json:"family"`
	Count       int                  `json:"count"`
	Taxa        []catalog.TaxonEntry `json:"taxa"`
}

// writeCatalogs writes datasets.json and taxa.json. The two documents
// are independent artifacts: a failed one never stops the other.
func (e *exporter) writeCatalogs(res *gnharvest.Result) error {
	root := e.cfg.Harvest.OutputDir
	enc := gnfmt.GNjson{Pretty: true}
	now := e.now()

	var errs []error

	dsDoc := datasetsDoc{
		GeneratedAt: now,
		Provider:    e.cfg.Provider.Name,
		Family:      res.Family,
		Count:       res.Datasets.Len(),
		Datasets:    res.Datasets.Entries(),
	}
	errs = append(errs,
		writeCatalog(iofs.DatasetsFile(root), dsDoc, enc))

	txDoc := taxaDoc{
		GeneratedAt: now,
		Family:      res.Family,
		Count:       res.Taxa.Len(),
		Taxa:        res.Taxa.Entries(),
	}
	errs = append(errs,
		writeCatalog(iofs.TaxaFile(root), txDoc, enc))

	return errors.Join(errs...)
}

func writeCatalog(path string, doc any, enc gnfmt.GNjson) error {
	data, err := enc.Encode(doc)
	if err != nil {
		return CatalogError(path, err)
	}
	if err = os.WriteFile(path, data, 0644); err != nil {
		return CatalogError(path, err)
	}
	return nil
}

func (e *exporter) writeReport(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return ReportError(path, err)
	}
	return nil
}
