package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scortino/ereader"
)

func newInfoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info FILE",
		Short: "Describe a workfile",
		Long: `Print the variable and observation counts, the workfile range, the
retained series and a checksum of the decoded data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tab, err := a.decoder.DecodeFile(args[0])
			if err != nil {
				return err
			}
			return printInfo(cmd.OutOrStdout(), args[0], tab)
		},
	}
}

func printInfo(w io.Writer, path string, tab *ereader.Table) error {

	var b strings.Builder

	fmt.Fprintf(&b, "File:          %s\n", path)
	fmt.Fprintf(&b, "Variables:     %d\n", tab.GlobalVarCount)
	fmt.Fprintf(&b, "Series:        %d\n", tab.RealVarCount)
	fmt.Fprintf(&b, "Columns:       %d\n", len(tab.Columns))
	fmt.Fprintf(&b, "Observations:  %d\n", tab.NumObs)
	fmt.Fprintf(&b, "Frequency:     %d\n", tab.Frequency)
	if periods := tab.Periods(); len(periods) > 0 {
		fmt.Fprintf(&b, "Range:         %s %s\n", periods[0], periods[len(periods)-1])
	}
	fmt.Fprintf(&b, "Checksum:      %016x\n", tab.Checksum())

	for _, c := range tab.Columns {
		fmt.Fprintf(&b, "  %-32s missing=%d\n", c.Name, c.CountMissing())
	}

	_, err := io.WriteString(w, b.String())
	return err
}
