package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/wplogin/pkg/config"
	"github.com/ccollicutt/wplogin/pkg/converter"
	"github.com/ccollicutt/wplogin/pkg/detector"
	"github.com/ccollicutt/wplogin/pkg/output"
	"github.com/ccollicutt/wplogin/pkg/source"
)

// ConvertOptions holds command-line options for the convert command.
type ConvertOptions struct {
	Inputs     []string
	Output     string
	Separator  string
	Format     config.Format
	ConfigFile string
	SampleSize int
	Verbose    bool
	Summary    bool
	Quiet      bool
}

// NewConvertCommand creates the convert command.
func NewConvertCommand() *cobra.Command {
	opts := &ConvertOptions{}

	cmd := &cobra.Command{
		Use:   "convert [input-file...]",
		Short: "Convert credential lines into wp-login.php URLs",
		Long: `Convert lines of the form "<site> <separator> <credentials>" into
"<site>/wp-login.php#<user>@<password>".

Rules:
  - Only the first separator splits the line; without a separator the last
    whitespace-delimited field is the credentials
  - All trailing slashes are removed from the site
  - user:pass becomes user@pass, user@pass is kept, a bare user becomes user@
  - Blank lines, # comments and single-field lines are skipped

Inputs are files, glob patterns or "-" for standard input. With no inputs,
standard input is read. Use --separator auto to detect the separator from
the first input.

Example:
  wplogin convert creds.txt > out.txt
  wplogin convert -i creds.txt -o out.txt
  cat creds.txt | wplogin convert -s '|'
  wplogin convert --format json 'lists/*.txt'

Exit codes:
  0 - Conversion finished
  2 - Configuration or I/O error`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.Inputs, "input", "i", nil, "Input file or glob (default: stdin, can be repeated)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().StringVarP(&opts.Separator, "separator", "s", config.DefaultSeparator, "Separator between site and credentials, or \"auto\"")
	addFormatFlag(cmd, &opts.Format, "Output format")
	cmd.Flags().StringVarP(&opts.ConfigFile, "config", "c", "", "Configuration file")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", config.DefaultSampleSize, "Lines to sample with --separator auto")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Print a detailed summary to stderr")
	cmd.Flags().BoolVar(&opts.Summary, "summary", false, "Print a one-line summary to stderr")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Suppress notices on stderr")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string, opts *ConvertOptions) error {
	started := time.Now()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	stderr := cmd.ErrOrStderr()

	cfg, err := resolveConfig(ctx, cmd, args, opts)
	if err != nil {
		return err
	}

	files, err := source.ExpandGlobs(cfg.Inputs)
	if err != nil {
		return fmt.Errorf("expanding inputs: %w", err)
	}

	if err := checkOutputNotInput(cfg.Output, files); err != nil {
		return err
	}

	stdin := cmd.InOrStdin()
	separator := cfg.Separator
	if cfg.AutoSeparator() {
		separator, stdin, err = detectSeparator(ctx, files, stdin, cfg.SampleSize)
		if err != nil {
			return err
		}
		if !opts.Quiet {
			fmt.Fprintf(stderr, "Detected separator: %q\n", separator)
		}
	}

	src := source.NewFileSource(files, source.WithStdin(stdin))
	defer src.Close()

	sink, err := output.OpenSink(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	formatter, err := createFormatter(cfg.Format, opts)
	if err != nil {
		_ = sink.Discard()
		return err
	}

	stats, err := converter.Stream(ctx, src, separator, func(res *converter.Result) error {
		return formatter.Format(ctx, res, sink)
	})
	if err != nil {
		// A failed run never replaces an existing output file.
		_ = sink.Discard()
		return fmt.Errorf("converting: %w", err)
	}
	if err := sink.Close(); err != nil {
		return err
	}

	report := output.NewReport(stats, output.Metadata{
		Sources:   files,
		Separator: separator,
		Output:    sink.Path(),
		StartedAt: started,
		Duration:  time.Since(started),
	})

	if opts.Verbose || opts.Summary {
		if err := formatter.Summarize(ctx, report, stderr); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}

	if !report.HasOutput() && stats.Read > 0 && !opts.Quiet {
		fmt.Fprintf(stderr, "Warning: no lines converted (%d read, %d malformed)\n", stats.Read, stats.Malformed)
	}

	return nil
}

// resolveConfig layers defaults, the config file, the environment and
// explicitly set flags, in that order.
func resolveConfig(ctx context.Context, cmd *cobra.Command, args []string, opts *ConvertOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.ConfigFile != "" {
		cfg, err = config.Load(ctx, opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.FromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("separator") {
		cfg.Separator = opts.Separator
	}
	if flags.Changed("format") {
		cfg.Format = opts.Format
	}
	if flags.Changed("output") {
		cfg.Output = opts.Output
	}
	if flags.Changed("sample") {
		cfg.SampleSize = opts.SampleSize
	}

	inputs := append(append([]string{}, opts.Inputs...), args...)
	if len(inputs) > 0 {
		cfg.Inputs = inputs
	}
	if len(cfg.Inputs) == 0 {
		cfg.Inputs = []string{source.StdinName}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// checkOutputNotInput refuses to truncate a file that is still to be read.
func checkOutputNotInput(out string, files []string) error {
	if out == "" || out == source.StdinName {
		return nil
	}
	outAbs, err := filepath.Abs(out)
	if err != nil {
		return nil
	}
	for _, f := range files {
		if f == source.StdinName {
			continue
		}
		if abs, err := filepath.Abs(f); err == nil && abs == outAbs {
			return fmt.Errorf("output file %s is also an input", out)
		}
	}
	return nil
}

// detectSeparator samples the first input. Standard input can only be read
// once, so it is buffered and handed back for the conversion pass.
func detectSeparator(ctx context.Context, files []string, stdin io.Reader, sampleSize int) (string, io.Reader, error) {
	if len(files) == 0 {
		return "", stdin, fmt.Errorf("separator detection needs at least one input")
	}

	d := detector.New(detector.WithSampleSize(sampleSize))

	var result *detector.DetectionResult
	if files[0] == source.StdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", stdin, fmt.Errorf("reading stdin: %w", err)
		}
		stdin = bytes.NewReader(data)
		result = d.DetectFromLines(strings.Split(string(data), "\n"))
	} else {
		var err error
		result, err = d.DetectFromFile(ctx, files[0])
		if err != nil {
			return "", stdin, fmt.Errorf("detection failed: %w", err)
		}
	}

	best := result.BestMatch()
	if best == nil {
		return "", stdin, fmt.Errorf("could not detect a separator in %s (%d lines sampled)", files[0], result.SampledLines)
	}
	return best.Separator(), stdin, nil
}

func createFormatter(format config.Format, opts *ConvertOptions) (output.Formatter, error) {
	formatOpts := output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Summary && !opts.Verbose,
	}

	switch format {
	case config.FormatText:
		return output.NewTextFormatter(formatOpts), nil
	case config.FormatJSON:
		return output.NewJSONFormatter(formatOpts), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use %s)", format, formatNames())
	}
}
