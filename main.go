package main

import (
	"fmt"
	"os"

	"github.com/temirov/runsweep/cmd/cli"
)

const (
	exitErrorTemplateConstant = "%v\n"
)

// main runs runsweep and exits non-zero when setup fails.
func main() {
	if executionError := cli.Execute(); executionError != nil {
		fmt.Fprintf(os.Stderr, exitErrorTemplateConstant, executionError)
		os.Exit(1)
	}
}
