// Command corpusctl inspects the transcript corpus from the terminal: validate the datasets,
// run a semantic search, print the summary or a single transcript.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
