package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wasc-audit/internal/checker"
	"wasc-audit/internal/criterion"
	"wasc-audit/internal/fetch"
	"wasc-audit/internal/ioformats"
	"wasc-audit/internal/report"
	"wasc-audit/pkg/logger"
)

const version = "0.3.0"

type options struct {
	checkersFile string
	criteriaFile string
	outputFile   string
	format       string
	listCheckers bool
	concurrency  int
	timeout      time.Duration
	verbose      bool
}

func main() {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "wasc WEBSITES",
		Short: "Websites Accessibility Criteria Checker",
		Long: `wasc evaluates accessibility criteria on a list of websites.

WEBSITES is a CSV file containing one website per line as "label;URL".
Lines starting with '#' are ignored.`,
		Version:      version,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.checkersFile, "checkers", "c", "", "checker list file, one checker name per line")
	flags.StringVarP(&opts.criteriaFile, "criteria", "C", "", "criteria configuration file (yaml)")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "output file (default stdout)")
	flags.StringVarP(&opts.format, "format", "f", "json", "output format: json, csv or table")
	flags.BoolVarP(&opts.listCheckers, "list-checkers", "l", false, "list known checkers and exit")
	flags.IntVar(&opts.concurrency, "concurrency", 8, "number of concurrent downloads")
	flags.DurationVar(&opts.timeout, "timeout", 15*time.Second, "per-page download timeout")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging")
	cmd.MarkFlagsMutuallyExclusive("checkers", "criteria")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	reg := checker.Builtin()

	if opts.listCheckers {
		for _, name := range reg.Available() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("missing WEBSITES argument")
	}

	exec, err := buildExecutor(opts, reg)
	if err != nil {
		return err
	}
	websites, err := ioformats.ReadWebsites(args[0])
	if err != nil {
		return err
	}

	log := logger.New(opts.verbose)
	log.Info("analysis", "websites", len(websites))

	runner := &report.Runner{
		Client:      fetch.NewClient(opts.timeout),
		Exec:        exec,
		Concurrency: opts.concurrency,
		Log:         log,
	}
	entries := runner.Run(context.Background(), websites)

	out := os.Stdout
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
		log.Info("saving results", "file", opts.outputFile)
	}

	cols := report.Columns(exec)
	switch opts.format {
	case "json":
		return report.WriteJSON(out, entries, cols)
	case "csv":
		return report.WriteCSV(out, entries, cols)
	case "table":
		report.WriteTable(out, entries, cols)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.format)
	}
}

func buildExecutor(opts *options, reg *checker.Registry) (criterion.Executor, error) {
	if opts.criteriaFile != "" {
		config, err := ioformats.ReadCriteria(opts.criteriaFile)
		if err != nil {
			return nil, err
		}
		return criterion.NewSet(config, reg)
	}
	names := checker.DefaultCheckers()
	if opts.checkersFile != "" {
		var err error
		names, err = ioformats.ReadCheckers(opts.checkersFile)
		if err != nil {
			return nil, err
		}
	}
	return criterion.NewChecklist(names, reg)
}
