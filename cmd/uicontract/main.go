// uicontract extracts component contracts from UI source files and emits schema-versioned bundles.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/viant/uicontract/bundle"
	"github.com/viant/uicontract/config"
	"github.com/viant/uicontract/contract"
	"github.com/viant/uicontract/inspector"
	"github.com/viant/uicontract/inspector/repository"
	"github.com/viant/uicontract/logging"
	"github.com/viant/uicontract/source"
)

var version = "dev"

var flagsWithValue = map[string]bool{
	"-config": true, "--config": true,
	"-extractor": true, "--extractor": true,
	"-format": true, "--format": true,
	"-o": true, "--o": true,
	"-max-units": true, "--max-units": true,
	"-log-level": true, "--log-level": true,
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("uicontract", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		_, _ = fmt.Fprintf(stderr, "usage: uicontract [flags] <file|dir>...\n")
		fs.PrintDefaults()
	}

	var (
		configPath   string
		extractor    string
		format       string
		output       string
		maxUnits     int
		reproducible bool
		logLevel     string
		showVersion  bool
	)

	fs.StringVar(&configPath, "config", "", "config file (default "+config.DefaultLocation+" when present)")
	fs.StringVar(&extractor, "extractor", "", "fact extractor: heuristic or treesitter")
	fs.StringVar(&format, "format", "", "output format: json or yaml")
	fs.StringVar(&output, "o", "", "output directory or URL; documents are printed when empty")
	fs.IntVar(&maxUnits, "max-units", 0, "maximum number of source units, 0 disables the limit")
	fs.BoolVar(&reproducible, "reproducible", false, "use SOURCE_DATE_EPOCH (or the unix epoch) for createdAt")
	fs.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.BoolVar(&showVersion, "version", false, "show version and exit")

	if err := fs.Parse(reorderArgs(args)); err != nil {
		return err
	}
	if showVersion {
		_, _ = fmt.Fprintf(stdout, "uicontract %s\n", version)
		return nil
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no input locations supplied")
	}

	ctx := context.Background()
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "extractor":
			cfg.Extractor = extractor
		case "format":
			cfg.Format = format
		case "o":
			cfg.Output = output
		case "max-units":
			cfg.MaxUnits = maxUnits
		case "reproducible":
			cfg.Reproducible = reproducible
		case "log-level":
			cfg.Logging.Level = logLevel
		}
	})
	if err = cfg.Validate(); err != nil {
		return err
	}
	logging.Init(cfg.Logging, stderr)

	outputFormat, err := bundle.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	factExtractor, err := inspector.New(cfg.Extractor)
	if err != nil {
		return err
	}

	loader := source.NewLoader(source.WithExtensions(cfg.Extensions...), source.WithSkipTests(cfg.SkipTests))
	units, err := loader.Load(ctx, fs.Args()...)
	if err != nil {
		return fmt.Errorf("loading sources: %w", err)
	}
	if err = source.Limit(units, cfg.MaxUnits); err != nil {
		return err
	}

	builder, err := contract.NewBuilder(
		contract.WithExtractor(factExtractor),
		contract.WithCacheSize(cfg.CacheSize),
	)
	if err != nil {
		return err
	}
	options := []bundle.Option{
		bundle.WithBuilder(builder, factExtractor.Name()),
		bundle.WithClock(cfg.Clock()),
	}
	if cfg.ProjectPath != "" {
		options = append(options, bundle.WithProjectPath(cfg.ProjectPath))
	}
	if project, err := repository.New().DetectProject(ctx, fs.Arg(0)); err != nil {
		logrus.WithError(err).Warn("unable to detect project")
	} else {
		units = source.Rebase(units, project.RootPath)
		options = append(options, bundle.WithProject(project))
	}
	assembler, err := bundle.NewAssembler(options...)
	if err != nil {
		return err
	}
	result, err := assembler.Assemble(ctx, units)
	if err != nil {
		return err
	}

	written, err := bundle.NewWriter(afs.New(), outputFormat, stdout).Write(ctx, cfg.Output, result)
	if err != nil {
		return fmt.Errorf("writing bundles: %w", err)
	}
	for _, location := range written {
		logrus.WithField("url", location).Info("wrote bundle")
	}
	return nil
}

// reorderArgs moves flags ahead of positional arguments so flags may follow input locations
func reorderArgs(args []string) []string {
	var flags, positional []string
	for i := 0; i < len(args); i++ {
		if args[i] == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(args[i]) > 1 && strings.HasPrefix(args[i], "-") {
			flags = append(flags, args[i])
			if flagsWithValue[args[i]] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, args[i])
		}
	}
	return append(flags, positional...)
}
