package main

// Generate workfiles for manual testing of the ereader command.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scortino/ereader/internal/wf1test"
)

func gen1(b *wf1test.Builder, fname string) {

	if err := os.MkdirAll("data", 0755); err != nil {
		panic(err)
	}

	if err := b.WriteFile(filepath.Join("data", fname)); err != nil {
		panic(fmt.Sprintf("Unable to write %s: %v", fname, err))
	}
}

func main() {

	gen1(wf1test.Random(99, 10, 40, false), "test1.wf1")
	gen1(wf1test.Random(99, 100, 200, true), "test2.wf1")

	q := wf1test.Random(7, 3, 24, true)
	q.Frequency = 4
	q.StartObs = 1990
	gen1(q, "quarterly.wf1")
}
