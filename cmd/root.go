package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/joshdayorg/vibe-check/internal/config"
	"github.com/joshdayorg/vibe-check/internal/report"
	"github.com/joshdayorg/vibe-check/internal/scan"
)

var (
	cfgFile     string
	ignoreFlags []string
	skipFlags   []string
	verbose     bool
	formatFlag  string
	outputFlag  string
	showPassed  bool
	noColor     bool

	logger *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "vibe-check [directory]",
	Short: "Scan a codebase for common security mistakes",
	Long: `vibe-check walks a source tree and runs a set of pattern-based
security checkers: leaked API keys, missing row-level security, exposed
environment variables, permissive CORS, insecure cookies and more.

Findings are printed to the terminal and can be exported as text, json,
markdown, html or pdf.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = buildLogger(verbose)
	},
	RunE: runScan,
}

// Execute runs the CLI. Setup failures exit non-zero; findings never do.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, colorError("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default: vibecheck.config.{json,yaml} found from the scan root upward)")
	rootCmd.Flags().StringArrayVarP(&ignoreFlags, "ignore", "i", nil, "glob pattern to ignore (repeatable)")
	rootCmd.Flags().StringArrayVarP(&skipFlags, "skip", "s", nil, "checker id to skip (repeatable)")
	rootCmd.Flags().StringVarP(&formatFlag, "format", "f", "", "report format: text, json, markdown, html, pdf")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "report output path")
	rootCmd.Flags().BoolVar(&showPassed, "show-passed", false, "include passing checks in output")
	rootCmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)
}

func buildLogger(verbose bool) *zap.SugaredLogger {
	if verbose {
		l, _ := zap.NewDevelopment()
		return l.Sugar()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	l, _ := cfg.Build()
	return l.Sugar()
}

func runScan(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.Load(root, cfgFile, logger)
	if err != nil {
		return err
	}

	opts := scan.Options{
		Root:           root,
		IgnorePatterns: ignoreFlags,
		SkipCheckers:   skipFlags,
		Verbose:        verbose,
		Config:         cfg,
	}
	if cfg != nil {
		opts.IgnorePatterns = append(cfg.IgnorePatterns, ignoreFlags...)
		opts.SkipCheckers = append(cfg.SkipCheckers, skipFlags...)
	}

	runner := &scan.Runner{Logger: logger}
	result, err := runner.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}

	format, output, show := renderSettings(cmd.Flags(), cfg)
	report.RenderConsole(cmd.OutOrStdout(), result, report.Options{ShowPassed: show, NoColor: noColor})

	if format == "" {
		return nil
	}
	data, err := report.Render(result, format, report.Options{ShowPassed: show})
	if err != nil {
		return err
	}
	if output == "" {
		output = report.DefaultFilename(format)
	}
	output = filepath.Clean(output)
	if err := os.WriteFile(output, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", output)
	return nil
}

// renderSettings resolves format, output path and show-passed from flags
// layered over the config file's reportOptions. An explicitly set flag
// always wins over the config file.
func renderSettings(flags *pflag.FlagSet, cfg *config.Config) (format, output string, show bool) {
	format = formatFlag
	output = outputFlag
	show = showPassed
	if cfg == nil {
		return format, output, show
	}
	if format == "" {
		format = cfg.ReportOptions.Format
	}
	if output == "" {
		output = cfg.ReportOptions.Output
	}
	if !flagChanged(flags, "show-passed") && cfg.ReportOptions.ShowPassed != nil {
		show = *cfg.ReportOptions.ShowPassed
	}
	return format, output, show
}

func flagChanged(flags *pflag.FlagSet, name string) bool {
	if flags == nil {
		return false
	}
	f := flags.Lookup(name)
	return f != nil && f.Changed
}
