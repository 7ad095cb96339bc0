// Package cli provides the command-line interface for wplogin.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wplogin/internal/cli/commands"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	rootCmd := NewRootCommand()

	if err := rootCmd.Execute(); err != nil {
		// Print error to stderr (SilenceErrors prevents Cobra from doing this)
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return commands.ExitError
	}
	return commands.ExitOK
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wplogin",
		Short: "Convert site -> user:pass lists into wp-login.php URLs",
		Long: `wplogin rewrites credential lists of the form

  https://site.com -> user:pass
  site.com user:pass

into WordPress login fragments:

  https://site.com/wp-login.php#user@pass
  site.com/wp-login.php#user@pass

Blank lines, comment lines (starting with #) and lines with a single field
are skipped. Input is read from files or standard input and written to a file
or standard output.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add subcommands
	rootCmd.AddCommand(commands.NewConvertCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
