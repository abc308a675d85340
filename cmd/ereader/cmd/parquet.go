package cmd

// Convert a workfile to a parquet file with one optional DOUBLE
// column per series.

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/scortino/ereader"
)

func newParquetCmd(a *app) *cobra.Command {

	var out, compression string

	cmd := &cobra.Command{
		Use:   "parquet FILE",
		Short: "Convert a workfile to parquet",
		Long: `Convert a workfile to a parquet file.  Every retained series becomes
an optional DOUBLE column; NA observations are stored as nulls.

Example:
  ereader parquet macro.wf1 --out macro.parquet --compression zstd`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if out == "" {
				return fmt.Errorf("'out' is a required argument")
			}
			if !cmd.Flags().Changed("compression") {
				compression = a.cfg.Output.Compression
			}

			tab, err := a.decoder.DecodeFile(args[0])
			if err != nil {
				return err
			}

			return writeParquet(tab, out, compression)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Path of the parquet file to write")
	cmd.Flags().StringVar(&compression, "compression", "snappy", "Compression codec: snappy, gzip, zstd or none")

	return cmd
}

func compressionCodec(name string) (parquet.CompressionCodec, error) {
	switch strings.ToLower(name) {
	case "snappy", "":
		return parquet.CompressionCodec_SNAPPY, nil
	case "gzip":
		return parquet.CompressionCodec_GZIP, nil
	case "zstd":
		return parquet.CompressionCodec_ZSTD, nil
	case "none", "uncompressed":
		return parquet.CompressionCodec_UNCOMPRESSED, nil
	default:
		return 0, fmt.Errorf("unknown compression codec %q", name)
	}
}

// parquetSchema returns the CSV writer metadata for the table.
func parquetSchema(tab *ereader.Table) []string {
	md := make([]string, len(tab.Columns))
	for j, name := range tab.ColumnNames() {
		md[j] = fmt.Sprintf("name=%s, type=DOUBLE, repetitiontype=OPTIONAL", name)
	}
	return md
}

// checkParquetNames rejects column names the parquet writer cannot keep
// apart.  Field names are matched case-insensitively by the writer, so
// "a" and "A" would collapse into one field.
func checkParquetNames(names []string) error {
	seen := make(map[string]string, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("columns %q and %q cannot both be stored in parquet, names must differ in more than case", prev, name)
		}
		seen[key] = name
	}
	return nil
}

func writeParquet(tab *ereader.Table, path, compression string) error {

	codec, err := compressionCodec(compression)
	if err != nil {
		return err
	}
	if len(tab.Columns) == 0 {
		return fmt.Errorf("workfile has no series to write")
	}
	if err := checkParquetNames(tab.ColumnNames()); err != nil {
		return err
	}

	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("can't create local file: %w", err)
	}

	pw, err := writer.NewCSVWriter(parquetSchema(tab), fw, 4)
	if err != nil {
		fw.Close()
		return fmt.Errorf("can't create parquet writer: %w", err)
	}
	pw.RowGroupSize = 128 * 1024 * 1024
	pw.CompressionType = codec

	cols := make([][]float64, len(tab.Columns))
	for j, c := range tab.Columns {
		cols[j], _ = c.AsFloat64Slice()
	}

	// The writer buffers the records until WriteStop, so each row
	// needs its own slice.
	for i := 0; i < tab.NumObs; i++ {
		rec := make([]interface{}, len(tab.Columns))
		for j, c := range tab.Columns {
			if c.IsMissing(i) {
				rec[j] = nil
			} else {
				rec[j] = cols[j][i]
			}
		}
		if err := pw.Write(rec); err != nil {
			fw.Close()
			return fmt.Errorf("write error: %w", err)
		}
	}

	if err := pw.WriteStop(); err != nil {
		fw.Close()
		return fmt.Errorf("WriteStop error: %w", err)
	}

	return fw.Close()
}
