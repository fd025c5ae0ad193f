package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "basilc",
	Short: "Basil source-to-source compiler driver",
	Long: `basilc drives the Basil compilation core: semantic analysis, IR
construction, optimization, and structured emission to a target language.

It does not parse source text itself. Input is a JSON-encoded AST (the
shape internal/astjson decodes), since the lexer and parser producing
that tree are out of this module's scope. Emitter behavior is governed
by a YAML configuration document (§6.2): target language, namespace,
synthesized entry point, and formatting knobs.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
