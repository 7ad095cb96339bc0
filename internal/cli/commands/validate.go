package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wplogin/pkg/config"
	"github.com/ccollicutt/wplogin/pkg/source"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a wplogin configuration file without converting anything.

Checks:
  - YAML syntax
  - Separator is set and fits on one line
  - Output format is text or json
  - Input file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	output := cfg.Output
	if output == "" {
		output = "stdout"
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Separator: %q\n", cfg.Separator)
	fmt.Fprintf(w, "  Format:    %s\n", cfg.Format)
	fmt.Fprintf(w, "  Output:    %s\n", output)

	if len(cfg.Inputs) == 0 {
		fmt.Fprintf(w, "  Inputs:    stdin\n")
		return nil
	}

	// Check if inputs exist (warnings only)
	files, err := source.ExpandGlobs(cfg.Inputs)
	if err != nil {
		fmt.Fprintf(w, "\nWarning: Error expanding input patterns: %v\n", err)
		return nil
	}

	fmt.Fprintf(w, "\nInputs matched: %d\n", len(files))
	for _, f := range files {
		if f == source.StdinName {
			fmt.Fprintf(w, "  - stdin\n")
			continue
		}
		if !fileExists(f) {
			fmt.Fprintf(w, "  - %s (warning: not found)\n", f)
			continue
		}
		fmt.Fprintf(w, "  - %s\n", f)
	}

	return nil
}
