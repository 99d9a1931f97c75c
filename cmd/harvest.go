/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnharvest/internal/ioexport"
	"github.com/gnames/gnharvest/internal/iofetch"
	"github.com/gnames/gnharvest/internal/iofilters"
	"github.com/gnames/gnharvest/internal/ioharvest"
	"github.com/gnames/gnharvest/pkg/config"
	"github.com/gnames/gnharvest/pkg/parserpool"
	"github.com/spf13/cobra"
)

// getHarvestCmd returns the harvest command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getHarvestCmd() *cobra.Command {
	var (
		family         string
		maxRecords     int
		pageSize       int
		outputDir      string
		skipMediaCheck bool
	)

	harvestCmd := &cobra.Command{
		Use:   "harvest",
		Short: "Harvest occurrence records for one family",
		Long: `Harvest occurrence records from the configured provider.

This command:
  1. Requests occurrence pages for one taxonomic family
  2. Filters records through the quality gate (filters.yaml)
  3. Normalizes accepted records into the canonical schema
  4. Removes in-run duplicates by composite fingerprint
  5. Exports genus-partitioned JSONL datasets, attribution
     catalogs, and quality reports

Failed pages are retried at the same offset before being skipped
with a logged gap. Ctrl-C stops the loop between pages and still
exports whatever was accepted.

Examples:
  # Harvest with defaults (Orchidaceae, 5000 records)
  gnharvest harvest

  # Harvest a different family into a custom directory
  gnharvest harvest --family Fagaceae --output ./fagaceae

  # Small test run without media probes
  gnharvest harvest -m 500 --skip-media-check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runHarvest(
				cmd, family, maxRecords, pageSize,
				outputDir, skipMediaCheck,
			)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	harvestCmd.Flags().StringVarP(
		&family, "family", "f", "",
		"taxonomic family to harvest",
	)
	harvestCmd.Flags().IntVarP(
		&maxRecords, "max-records", "m", 0,
		"cap on accepted records for the run",
	)
	harvestCmd.Flags().IntVarP(
		&pageSize, "page-size", "p", 0,
		"records per page (max 300)",
	)
	harvestCmd.Flags().StringVarP(
		&outputDir, "output", "o", "harvest",
		"root directory for export artifacts",
	)
	harvestCmd.Flags().BoolVar(
		&skipMediaCheck, "skip-media-check", false,
		"skip the media-URL validation report",
	)

	return harvestCmd
}

func runHarvest(
	cmd *cobra.Command,
	family string,
	maxRecords int,
	pageSize int,
	outputDir string,
	skipMediaCheck bool,
) error {
	// Ctrl-C stops the fetch loop between pages; export still runs.
	ctx, stop := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer stop()

	// Build options from explicitly set flags
	var harvestOpts []config.Option

	if cmd.Flags().Changed("family") {
		harvestOpts = append(
			harvestOpts, config.OptHarvestFamily(family),
		)
	}
	if cmd.Flags().Changed("max-records") {
		harvestOpts = append(
			harvestOpts, config.OptHarvestMaxRecords(maxRecords),
		)
	}
	if cmd.Flags().Changed("page-size") {
		harvestOpts = append(
			harvestOpts, config.OptHarvestPageSize(pageSize),
		)
	}
	harvestOpts = append(
		harvestOpts, config.OptHarvestOutputDir(outputDir),
	)
	if cmd.Flags().Changed("skip-media-check") {
		harvestOpts = append(
			harvestOpts,
			config.OptHarvestSkipMediaCheck(&skipMediaCheck),
		)
	}

	cfg.Update(harvestOpts)

	// Load the quality-gate allow-lists
	fl, err := iofilters.New(cfg).Load()
	if err != nil {
		return err
	}

	parser := parserpool.New(cfg.JobsNumber)
	defer parser.Close()

	fetcher := iofetch.New(cfg)
	harvester := ioharvest.New(cfg, fetcher, parser, fl)

	result, err := harvester.Harvest(ctx)
	if err != nil {
		return err
	}

	// Export must finish even after an interrupt.
	exporter := ioexport.New(cfg)
	if err = exporter.Export(context.WithoutCancel(ctx), result); err != nil {
		return err
	}

	slog.Info("Export complete", "output", cfg.Harvest.OutputDir)
	gn.Info(`Artifacts are available at <em>%s</em>:
	 - occurrences/jsonl/  genus partitions
	 - catalog/            dataset and taxon registries
	 - reports/            quality, dictionary, media reports
`, cfg.Harvest.OutputDir)

	return nil
}
