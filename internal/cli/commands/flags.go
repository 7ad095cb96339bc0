package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ccollicutt/wplogin/pkg/config"
)

// Exit codes returned by the CLI.
const (
	ExitOK    = 0
	ExitError = 2 // Configuration or runtime error
)

// formatValue is a pflag.Value that only accepts known output formats.
type formatValue config.Format

var _ pflag.Value = (*formatValue)(nil)

func newFormatValue(val config.Format, p *config.Format) *formatValue {
	*p = val
	return (*formatValue)(p)
}

func (f *formatValue) String() string {
	return string(*f)
}

func (f *formatValue) Set(s string) error {
	v := config.Format(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return fmt.Errorf("unknown output format %q (use %s)", s, formatNames())
	}
	*f = formatValue(v)
	return nil
}

func (f *formatValue) Type() string {
	return "format"
}

func formatNames() string {
	names := make([]string, 0, len(config.Formats()))
	for _, f := range config.Formats() {
		names = append(names, string(f))
	}
	return strings.Join(names, "|")
}

// addFormatFlag registers -f/--format with shell completion of the known formats.
func addFormatFlag(cmd *cobra.Command, p *config.Format, usage string) {
	cmd.Flags().VarP(newFormatValue(config.DefaultFormat, p), "format", "f", usage+" ("+formatNames()+")")
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		names := strings.Split(formatNames(), "|")
		return names, cobra.ShellCompDirectiveNoFileComp
	})
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
