// Command ereader converts EViews workfiles to CSV, parquet or one
// file per column.
package main

import (
	"github.com/scortino/ereader/cmd/ereader/cmd"
)

func main() {
	cmd.Execute()
}
