// Command txdetails renders Safe transaction detail views from the command line or over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/smartcontractkit/safe-txdetails/commands"
)

func main() {
	root, err := commands.New(nil).Root()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
