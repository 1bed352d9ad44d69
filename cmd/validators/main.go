// Command validators checks JSON and YAML documents against a schema
// document.
//
// Usage:
//
//	# Check documents, reporting the first error of each
//	validators check --schema event.yaml a.json b.yaml
//
//	# Report every error, with compiled checkers
//	validators check --schema event.yaml --all --compile a.json
//
//	# Print the schema as JSON Schema
//	validators schema --schema event.yaml
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errInvalid) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
