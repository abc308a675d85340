package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

func newBatchCmd(a *app) *cobra.Command {

	var out, format, metricsFile string
	var workers int

	cmd := &cobra.Command{
		Use:   "batch FILE...",
		Short: "Convert many workfiles in parallel",
		Long: `Convert workfiles to CSV or parquet files in the --out directory.
Files are decoded in parallel by --workers goroutines.  A failed file
is logged and does not stop the others.

Example:
  ereader batch data/*.wf1 --out converted --format parquet --workers 8`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if out == "" {
				return fmt.Errorf("'out' is a required argument")
			}
			if format != "csv" && format != "parquet" {
				return fmt.Errorf("format must be either 'csv' or 'parquet'")
			}
			if !cmd.Flags().Changed("workers") {
				workers = a.cfg.Output.Workers
			}

			results, err := runBatch(a, args, out, format, workers)
			if err != nil {
				return err
			}

			if metricsFile != "" {
				if err := prometheus.WriteToTextfile(metricsFile, a.registry); err != nil {
					return fmt.Errorf("failed to write metrics: %w", err)
				}
			}

			failed := 0
			for _, r := range results {
				if r.err != nil {
					failed++
				}
			}
			level.Info(a.logger).Log("msg", "batch finished", "files", len(results), "failed", failed)
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Directory for the converted files")
	cmd.Flags().StringVar(&format, "format", "csv", "Output format: csv or parquet")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of parallel workers")
	cmd.Flags().StringVar(&metricsFile, "metrics-file", "", "Write decode metrics in Prometheus text format to this file")

	return cmd
}

type batchResult struct {
	source      string
	destination string
	err         error
}

// outputName maps a workfile path to its converted file name, dropping
// the .wf1 extension and any compression suffix.
func outputName(path, ext string) string {
	base := filepath.Base(path)
	lower := strings.ToLower(base)
	for _, s := range []string{".gz", ".zst", ".lz4"} {
		if strings.HasSuffix(lower, s) {
			base = base[:len(base)-len(s)]
			lower = lower[:len(lower)-len(s)]
			break
		}
	}
	if strings.HasSuffix(lower, ".wf1") {
		base = base[:len(base)-len(".wf1")]
	}
	return base + "." + ext
}

// runBatch converts paths with a fixed pool of workers.  The results
// are in the order of paths.
func runBatch(a *app, paths []string, outDir, format string, workers int) ([]batchResult, error) {

	dests := make(map[string]string, len(paths))
	for _, p := range paths {
		dest := filepath.Join(outDir, outputName(p, format))
		if prev, ok := dests[dest]; ok {
			return nil, fmt.Errorf("%s and %s would both be written to %s", prev, p, dest)
		}
		dests[dest] = p
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, err
	}
	if workers < 1 {
		workers = 1
	}

	type job struct {
		index int
		path  string
	}

	jobs := make(chan job, len(paths))
	results := make([]batchResult, len(paths))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				dest := filepath.Join(outDir, outputName(j.path, format))
				results[j.index] = batchResult{
					source:      j.path,
					destination: dest,
					err:         convertFile(a, j.path, dest, format),
				}
				if err := results[j.index].err; err != nil {
					level.Error(a.logger).Log("msg", "conversion failed", "file", j.path, "err", err)
				} else {
					level.Debug(a.logger).Log("msg", "converted", "file", j.path, "out", dest)
				}
			}
		}()
	}

	for i, p := range paths {
		jobs <- job{index: i, path: p}
	}
	close(jobs)
	wg.Wait()

	return results, nil
}

func convertFile(a *app, src, dest, format string) error {

	tab, err := a.decoder.DecodeFile(src)
	if err != nil {
		return err
	}

	if format == "parquet" {
		return writeParquet(tab, dest, a.cfg.Output.Compression)
	}
	return writeCSVFile(dest, tab, false, a.cfg.Output.FloatFormat)
}
