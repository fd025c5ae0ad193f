package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/basilisc/basilc/internal/astjson"
	"github.com/basilisc/basilc/internal/buildpool"
	"github.com/basilisc/basilc/internal/config"
	"github.com/basilisc/basilc/internal/diag"
)

var (
	configFile     string
	overlayFile    string
	outputFile     string
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [ast.json]",
	Short: "Run an AST through the compilation core and emit target source",
	Long: `Compile reads a JSON-encoded AST and runs it through semantic
analysis, IR construction, optimization, and structured emission.

Examples:
  # Emit with default configuration, to stdout
  basilc compile program.ast.json

  # Emit under a YAML target configuration
  basilc compile program.ast.json --config basil.yaml

  # Patch one knob without a full config file
  basilc compile program.ast.json --set '{"target":"Cpp"}'

  # Write the emitted source to a file instead of stdout
  basilc compile program.ast.json -o Program.cs`,
	Args: cobra.ExactArgs(1),
	RunE: compileAST,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVarP(&configFile, "config", "c", "", "YAML emitter configuration (default: built-in defaults)")
	compileCmd.Flags().StringVar(&overlayFile, "set", "", "JSON document overlaying individual config fields")
	compileCmd.Flags().StringVarP(&outputFile, "output", "o", "", "output file (default: stdout)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func compileAST(_ *cobra.Command, args []string) error {
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	if compileVerbose {
		fmt.Fprintf(os.Stderr, "Decoding AST from %s...\n", filename)
	}

	program, err := astjson.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to decode AST: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	unitName := strings.TrimSuffix(filename, ".json")
	results, err := buildpool.CompileUnits([]buildpool.Unit{{Name: unitName, Program: program}}, cfg, 1)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}
	result := results[0]

	if result.Diagnostics != nil {
		for _, d := range result.Diagnostics.All() {
			fmt.Fprintln(os.Stderr, d.Format(false))
		}
	}
	if result.Err != nil {
		return result.Err
	}
	if result.Diagnostics != nil && result.Diagnostics.HasErrors() {
		return fmt.Errorf("compilation failed with %d error(s)", result.Diagnostics.Count(diag.Error))
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(result.Output), 0o644); err != nil {
			return fmt.Errorf("failed to write output file %s: %w", outputFile, err)
		}
		if compileVerbose {
			fmt.Fprintf(os.Stderr, "Emitted source written to %s (%d bytes)\n", outputFile, len(result.Output))
		}
		return nil
	}

	fmt.Print(result.Output)
	return nil
}

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		doc, err := os.ReadFile(configFile)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to read config %s: %w", configFile, err)
		}
		cfg, err = config.LoadYAML(doc)
		if err != nil {
			return config.Config{}, err
		}
	}
	if overlayFile != "" {
		cfg, err := config.ApplyJSONOverlay(cfg, []byte(overlayFile))
		if err != nil {
			return config.Config{}, err
		}
		return cfg, nil
	}
	return cfg, nil
}
