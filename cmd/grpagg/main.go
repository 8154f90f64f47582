package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vegasq/grpagg/config"
	"github.com/vegasq/grpagg/frame"
	"github.com/vegasq/grpagg/groupagg"
	"github.com/vegasq/grpagg/internal/logger"
	"github.com/vegasq/grpagg/output"
	"github.com/vegasq/grpagg/reader"
)

// options are the parsed command line settings.
type options struct {
	by          string
	aggs        aggFlags
	specFile    string
	merge       bool
	noIndex     bool
	format      string
	limit       int
	schema      bool
	sheet       string
	concurrency int
	logLevel    string
	file        string

	// set records which flags were given explicitly
	set map[string]bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	opts, err := parseFlags(args, cfg, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	logger.InitLogger(opts.logLevel, cfg.Logging.JSON, stderr)

	if opts.schema {
		err = showSchema(opts, stdout, stderr)
	} else {
		err = aggregate(ctx, opts, stdout)
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(stderr, "Error: file '%s' not found\n", opts.file)
		} else {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (*options, error) {
	opts := &options{set: make(map[string]bool)}

	fs := flag.NewFlagSet("grpagg", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.by, "by", "", "Comma separated grouping columns (e.g. \"shop,region\")")
	fs.Var(&opts.aggs, "agg", "Aggregation column=func or column=func1,func2 (repeatable)")
	fs.StringVar(&opts.specFile, "spec", "", "YAML job file with by, agg and output settings")
	fs.BoolVar(&opts.merge, "merge", false, "Join the aggregates back onto every input row")
	fs.BoolVar(&opts.noIndex, "no-index", false, "Keep grouping columns as ordinary columns")
	fs.StringVar(&opts.format, "f", cfg.Format, "Output format: "+strings.Join(output.Formats(), ", "))
	fs.IntVar(&opts.limit, "limit", cfg.Limit, "Limit number of output rows (0 = unlimited)")
	fs.BoolVar(&opts.schema, "schema", false, "Show parquet schema information instead of data")
	fs.StringVar(&opts.sheet, "sheet", "", "Worksheet to read from an .xlsx file (default: first)")
	fs.IntVar(&opts.concurrency, "concurrency", cfg.Concurrency, "Files read in parallel for glob patterns")
	fs.StringVar(&opts.logLevel, "log-level", cfg.Logging.Level, "Log level: debug, info, warn, error")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: grpagg [options] <file>\n\n")
		fmt.Fprintf(stderr, "Group a parquet, CSV or XLSX table and name aggregates <column>_<func>.\n\n")
		fmt.Fprintf(stderr, "IMPORTANT: All flags must come BEFORE file arguments.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  grpagg -by shop -agg amount=sum,mean sales.parquet\n")
		fmt.Fprintf(stderr, "  grpagg -by shop -agg amount=max -merge -f csv 'data/*.parquet'\n")
		fmt.Fprintf(stderr, "  grpagg -spec job.yaml\n")
		fmt.Fprintf(stderr, "  grpagg -schema sales.parquet\n")
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	if fs.NArg() > 1 {
		return nil, fmt.Errorf("expected one input file, got %d", fs.NArg())
	}
	opts.file = fs.Arg(0)

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// validate rejects flag values and combinations that cannot work together.
func (o *options) validate() error {
	if o.limit < 0 {
		return fmt.Errorf("-limit must be non-negative, got %d", o.limit)
	}
	if o.schema && (o.by != "" || len(o.aggs) > 0 || o.specFile != "" || o.merge) {
		return fmt.Errorf("-schema cannot be combined with -by, -agg, -spec or -merge")
	}
	if o.specFile != "" && (o.by != "" || len(o.aggs) > 0) {
		return fmt.Errorf("-spec cannot be combined with -by or -agg")
	}
	if o.merge && o.noIndex {
		return fmt.Errorf("-merge and -no-index cannot be used together")
	}
	if !o.schema && o.specFile == "" && o.by == "" {
		return fmt.Errorf("missing -by (or -spec)")
	}
	if o.schema && o.file == "" {
		return fmt.Errorf("missing parquet file argument")
	}
	return nil
}

// aggregate loads the input, runs the renamer or the merger and writes the
// result.
func aggregate(ctx context.Context, opts *options, stdout io.Writer) error {
	job, err := buildJob(opts)
	if err != nil {
		return err
	}
	spec, err := job.Spec()
	if err != nil {
		return err
	}

	if job.Input == "" {
		return fmt.Errorf("missing input file argument")
	}
	opts.file = job.Input

	t, err := reader.Load(ctx, job.Input, reader.LoadOptions{Sheet: job.Sheet, Concurrency: opts.concurrency})
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"input": job.Input, "rows": t.Len(), "columns": t.Width()}).Info("loaded table")

	var result *frame.Table
	if job.Merge {
		result, err = groupagg.MergeGroupedAggregate(t, job.By, spec)
	} else {
		result, err = groupagg.RenameGroupedAggregate(t, job.By, spec, job.Options()...)
	}
	if err != nil {
		return err
	}

	if opts.limit > 0 {
		result = result.Head(opts.limit)
	}

	f, err := output.New(job.Format, stdout)
	if err != nil {
		return err
	}
	if err := f.Format(result); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	logger.WithFields(logrus.Fields{"rows": result.Len(), "format": job.Format}).Info("wrote result")
	return nil
}

// buildJob merges the -spec file, if any, with the command line. Explicit
// flags win over job file values.
func buildJob(opts *options) (*config.Job, error) {
	job := &config.Job{}
	if opts.specFile != "" {
		var err error
		if job, err = config.LoadJob(opts.specFile); err != nil {
			return nil, err
		}
	} else {
		job.By = splitList(opts.by)
		entries, err := aggEntries(opts.aggs)
		if err != nil {
			return nil, err
		}
		job.Agg = aggMapSlice(entries)
	}

	if opts.file != "" {
		job.Input = opts.file
	}
	if opts.sheet != "" {
		job.Sheet = opts.sheet
	}
	if opts.set["f"] || job.Format == "" {
		job.Format = opts.format
	}
	if opts.merge {
		job.Merge = true
	}
	if opts.noIndex {
		asIndex := false
		job.AsIndex = &asIndex
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

// showSchema prints the column listing of a parquet file. For a glob the
// first match is used.
func showSchema(opts *options, stdout, stderr io.Writer) error {
	path := opts.file
	if strings.ContainsAny(path, "*?[") {
		matches, err := filepath.Glob(path)
		if err != nil {
			return fmt.Errorf("invalid glob pattern: %w", err)
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files match pattern: %s", path)
		}
		path = matches[0]
		if len(matches) > 1 {
			fmt.Fprintf(stderr, "# Showing schema from: %s (%d files matched)\n", path, len(matches))
		}
	}
	opts.file = path

	infos, err := reader.ExtractSchemaInfo(path)
	if err != nil {
		return err
	}

	f, err := output.New(opts.format, stdout)
	if err != nil {
		return err
	}
	return f.Format(reader.SchemaTable(infos))
}
