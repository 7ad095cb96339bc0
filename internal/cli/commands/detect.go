package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/wplogin/pkg/config"
	"github.com/ccollicutt/wplogin/pkg/detector"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	Format      config.Format
	SampleSize  int
	ShowAll     bool
	WriteConfig string
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <input-file>",
		Short: "Detect the separator used in a credential list",
		Long: `Analyze a credential list to detect the separator between the site and
the credentials.

Samples lines from the file (skipping blanks and comments) and tests them
against common separators. Reports the best match with a confidence score
and a sample conversion.

Optionally generates a starter config file with --write-config.

Supports:
  - Arrows (->, =>)
  - Pipe, tab, semicolon and comma
  - Plain whitespace ("site user:pass")

Example:
  wplogin detect creds.txt
  wplogin detect --sample 500 large.txt
  wplogin detect --write-config wplogin.yaml creds.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	addFormatFlag(cmd, &opts.Format, "Report format")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", config.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().BoolVar(&opts.ShowAll, "all", false, "Show all matching separators, not just the best match")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	inputFile := args[0]
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputFile)
	}

	d := detector.New(detector.WithSampleSize(opts.SampleSize))

	result, err := d.DetectFromFile(ctx, inputFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if opts.WriteConfig != "" {
		if err := writeStarterConfig(cmd.ErrOrStderr(), result, inputFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	switch opts.Format {
	case config.FormatJSON:
		return outputDetectJSON(cmd.OutOrStdout(), result, inputFile, opts)
	default:
		return outputDetectText(cmd.OutOrStdout(), result, inputFile, opts)
	}
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, inputFile string, opts *DetectOptions) error {
	fmt.Fprintln(w, "=== Separator Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", inputFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintln(w)

	if !result.HasMatch() {
		fmt.Fprintln(w, "No separator detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: Lines need a site and credentials, e.g. \"site.com -> user:pass\".")
		fmt.Fprintln(w, "Pass an uncommon separator explicitly with --separator.")
		return nil
	}

	best := result.BestMatch()
	fmt.Fprintf(w, "Detected Separator: %s (%q)\n", best.Candidate.Name, best.Separator())
	fmt.Fprintf(w, "Confidence: %.1f%% (%d/%d lines matched)\n",
		best.Confidence*100, best.MatchCount, result.SampledLines)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sample line:\n  %s\n", best.SampleLine)
	fmt.Fprintf(w, "Converted:\n  %s\n", best.Converted)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "--- Usage ---")
	fmt.Fprintf(w, "wplogin convert --separator '%s' %s\n", best.Separator(), inputFile)
	fmt.Fprintln(w)

	if opts.ShowAll && len(result.Matches) > 1 {
		fmt.Fprintln(w, "--- Alternative separators detected ---")
		for i, m := range result.Matches[1:] {
			fmt.Fprintf(w, "%d. %s %q (%.1f%% confidence)\n", i+2, m.Candidate.Name, m.Separator(), m.Confidence*100)
		}
		fmt.Fprintln(w)
	}

	return nil
}

// JSONMatch represents a separator match in JSON output.
type JSONMatch struct {
	Name       string  `json:"name"`
	Separator  string  `json:"separator"`
	Whitespace bool    `json:"whitespace,omitempty"`
	Confidence float64 `json:"confidence"`
	MatchCount int     `json:"match_count"`
	SampleLine string  `json:"sample_line"`
	Converted  string  `json:"converted"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string      `json:"file"`
	Matches      []JSONMatch `json:"matches"`
	SampledLines int         `json:"sampled_lines"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, inputFile string, opts *DetectOptions) error {
	out := JSONOutput{
		File:         inputFile,
		SampledLines: result.SampledLines,
		Matches:      make([]JSONMatch, 0),
	}

	matches := result.Matches
	if !opts.ShowAll && len(matches) > 1 {
		matches = matches[:1] // Only show best match
	}

	for _, m := range matches {
		out.Matches = append(out.Matches, JSONMatch{
			Name:       m.Candidate.Name,
			Separator:  m.Separator(),
			Whitespace: m.Candidate.Whitespace(),
			Confidence: m.Confidence,
			MatchCount: m.MatchCount,
			SampleLine: m.SampleLine,
			Converted:  m.Converted,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(out)
}

// writeStarterConfig generates a starter config file with the detected
// separator. The notice goes to w, kept apart from the report.
func writeStarterConfig(w io.Writer, result *detector.DetectionResult, inputFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	if !result.HasMatch() {
		return fmt.Errorf("cannot generate config: no separator detected")
	}

	data, err := generateStarterConfig(inputFile, result.BestMatch())
	if err != nil {
		return fmt.Errorf("generating config: %w", err)
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a config for the input with the detected separator.
func generateStarterConfig(inputFile string, match *detector.Match) ([]byte, error) {
	absInput := inputFile
	if abs, err := filepath.Abs(inputFile); err == nil {
		absInput = abs
	}

	cfg := config.DefaultConfig()
	cfg.Separator = match.Separator()
	cfg.Inputs = []string{absInput}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}

	header := fmt.Sprintf("# wplogin configuration\n# Generated by: wplogin detect\n# Detected separator: %s (%.0f%% confidence)\n\n",
		match.Candidate.Name, match.Confidence*100)
	return append([]byte(header), body...), nil
}
