package cmd

// columnize saves the data from each series of a workfile into a
// separate file.  Numeric data can be stored either in text or binary
// format.  A text file containing the column names is also generated.

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/scortino/ereader"
)

func newColumnizeCmd(a *app) *cobra.Command {

	var out, mode string

	cmd := &cobra.Command{
		Use:   "columnize FILE",
		Short: "Write each series of a workfile to its own file",
		Long: `Write each series of a workfile to its own file in the --out
directory.  File j holds column j (0-based); columns.txt lists the
1-based column numbers and names.

In text mode values are written one per line, missing values as empty
lines.  In binary mode values are little endian float64, missing
values as NaN.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {

			if mode != "text" && mode != "binary" {
				return fmt.Errorf("mode must be either 'text' or 'binary'")
			}
			if out == "" {
				return fmt.Errorf("'out' is a required argument")
			}

			tab, err := a.decoder.DecodeFile(args[0])
			if err != nil {
				return err
			}

			return splitColumns(&ereader.WF1Reader{Table: tab}, out, mode, a.cfg.Output.FloatFormat)
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "A directory for writing the columns")
	cmd.Flags().StringVar(&mode, "mode", "text", "Write numeric data as 'text' or 'binary'")

	return cmd
}

func splitColumns(rdr ereader.Statfilereader, colDir, mode, floatFormat string) error {

	if err := os.MkdirAll(colDir, 0755); err != nil {
		return err
	}

	names := rdr.ColumnNames()
	ncol := len(names)

	var cf bytes.Buffer
	for i, c := range names {
		fmt.Fprintf(&cf, "%d,%s\n", i+1, c)
	}
	if err := os.WriteFile(filepath.Join(colDir, "columns.txt"), cf.Bytes(), 0644); err != nil {
		return fmt.Errorf("unable to create file in %s: %w", colDir, err)
	}

	files := make([]*os.File, ncol)
	columns := make([]*bufio.Writer, ncol)
	defer func() {
		for _, f := range files {
			if f != nil {
				f.Close()
			}
		}
	}()

	for j := range names {
		fn := filepath.Join(colDir, fmt.Sprintf("%d", j))
		f, err := os.Create(fn)
		if err != nil {
			return fmt.Errorf("unable to create file for column %d: %w", j+1, err)
		}
		files[j] = f
		columns[j] = bufio.NewWriter(f)
	}

	for {
		chunk, err := rdr.Read(10000)
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		for j := 0; j < ncol; j++ {
			vec, _ := chunk[j].AsFloat64Slice()
			if err := writeColumn(columns[j], chunk[j], vec, mode, floatFormat); err != nil {
				return err
			}
		}
	}

	for j, w := range columns {
		if err := w.Flush(); err != nil {
			return err
		}
		if err := files[j].Close(); err != nil {
			return err
		}
		files[j] = nil
	}

	return nil
}

func writeColumn(w io.Writer, ser *ereader.Series, vec []float64, mode, floatFormat string) error {

	if mode == "binary" {
		buf := make([]float64, len(vec))
		for i, x := range vec {
			if ser.IsMissing(i) {
				x = math.NaN()
			}
			buf[i] = x
		}
		return binary.Write(w, binary.LittleEndian, buf)
	}

	for i, x := range vec {
		var err error
		if ser.IsMissing(i) {
			_, err = io.WriteString(w, "\n")
		} else {
			_, err = fmt.Fprintf(w, floatFormat+"\n", x)
		}
		if err != nil {
			return err
		}
	}

	return nil
}
