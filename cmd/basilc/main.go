// Command basilc is the CLI harness around the compilation core: it reads
// a JSON-encoded AST (no lexer/parser is in scope) plus an optional YAML
// target configuration, runs the pipeline, and prints emitted text.
package main

import (
	"fmt"
	"os"

	"github.com/basilisc/basilc/cmd/basilc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
