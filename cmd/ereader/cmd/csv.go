package cmd

// Convert a workfile to a CSV file.  Missing values are written as
// empty fields.

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scortino/ereader"
)

func newCSVCmd(a *app) *cobra.Command {

	var out string
	var obsColumn bool

	cmd := &cobra.Command{
		Use:   "csv FILE",
		Short: "Convert a workfile to CSV",
		Long: `Convert a workfile to CSV.  The CSV contents are sent to standard
output unless --out is given.

Example:
  ereader csv macro.wf1 --obs-column -o macro.csv`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			tab, err := a.decoder.DecodeFile(args[0])
			if err != nil {
				return err
			}

			if out == "" {
				return writeCSV(cmd.OutOrStdout(), tab, obsColumn, a.cfg.Output.FloatFormat)
			}
			return writeCSVFile(out, tab, obsColumn, a.cfg.Output.FloatFormat)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file, standard output if empty")
	cmd.Flags().BoolVar(&obsColumn, "obs-column", false, "Add a leading column of observation labels")

	return cmd
}

func writeCSVFile(path string, tab *ereader.Table, obsColumn bool, floatFormat string) error {

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := writeCSV(f, tab, obsColumn, floatFormat); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// writeCSV writes the table as CSV with a header row, reading it in
// chunks of observations.
func writeCSV(out io.Writer, tab *ereader.Table, obsColumn bool, floatFormat string) error {

	w := csv.NewWriter(out)
	rdr := &ereader.WF1Reader{Table: tab}

	var periods []string
	header := rdr.ColumnNames()
	if obsColumn {
		periods = tab.Periods()
		header = append([]string{"obs"}, header...)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	ncol := len(rdr.ColumnNames())
	row := make([]string, len(header))
	first := 0

	for {
		chunk, err := rdr.Read(1000)
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		cols := make([][]float64, ncol)
		for j := 0; j < ncol; j++ {
			cols[j], _ = chunk[j].AsFloat64Slice()
		}

		nrow := tab.NumObs - first
		if ncol > 0 {
			nrow = chunk[0].Length()
		} else if nrow > 1000 {
			nrow = 1000
		}

		for i := 0; i < nrow; i++ {
			k := 0
			if obsColumn {
				row[0] = periods[first+i]
				k = 1
			}
			for j := 0; j < ncol; j++ {
				if chunk[j].IsMissing(i) {
					row[k+j] = ""
				} else {
					row[k+j] = fmt.Sprintf(floatFormat, cols[j][i])
				}
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		first += nrow
	}

	w.Flush()
	return w.Error()
}
