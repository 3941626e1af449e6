// Command ontograph explores OWL ontologies: it parses OWL/XML into a
// summary document, browses the class hierarchy, looks up properties,
// searches and maps terms, validates annotations, and re-exports RDF.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/c360studio/ontograph/config"
	"github.com/c360studio/ontograph/hierarchy"
	"github.com/c360studio/ontograph/ontology"
	"github.com/c360studio/ontograph/ontology/owl"
	"github.com/c360studio/ontograph/ontology/summary"
	"github.com/c360studio/ontograph/registry"
	"github.com/c360studio/ontograph/source"
)

const appName = "ontograph"

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		// JSON error envelopes are already written by fail(); the
		// original scripts exit 2 on operational failures.
		os.Exit(2)
	}
}

// app carries the per-invocation wiring shared by all subcommands.
type app struct {
	cfg      *config.Config
	registry *registry.Registry
	fetcher  *source.Fetcher
	jsonOut  bool
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)
	a := &app{}

	cmd := &cobra.Command{
		Use:   appName,
		Short: "OWL ontology explorer",
		Long: `Ontograph parses OWL/XML ontologies into compact summary documents and
answers structural queries over them: class hierarchy browsing, property
lookup and inheritance, ranked search, concept mapping, annotation
validation, and RDF re-export.

Each invocation is stateless: the model is loaded (or parsed), the
hierarchy index rebuilt, queries answered, and the process exits.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(logLevel)
			return a.init(configPath)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "Emit JSON output")

	cmd.AddCommand(
		parseCmd(a),
		summarizeCmd(a),
		classCmd(a),
		propertyCmd(a),
		searchCmd(a),
		mapCmd(a),
		validateCmd(a),
		exportCmd(a),
		watchCmd(a),
		versionCmd(),
	)
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s\n", appName, Version)
		},
	}
}

func setupLogging(logLevel string) {
	level := slog.LevelWarn
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
}

// init loads configuration and builds the registry and fetcher.
func (a *app) init(configPath string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromFile(configPath)
	} else {
		cfg, err = config.NewLoader(slog.Default()).Load()
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	a.cfg = cfg

	if cfg.Registry.Path != "" {
		a.registry, err = registry.LoadFile(cfg.Registry.Path)
		if err != nil {
			return fmt.Errorf("load registry: %w", err)
		}
	} else {
		a.registry = registry.New("")
	}
	for _, dir := range cfg.Registry.DiscoverDirs {
		added, err := a.registry.Discover(dir)
		if err != nil {
			slog.Warn("registry discovery failed", "dir", dir, "error", err)
			continue
		}
		slog.Debug("discovered summaries", "dir", dir, "added", added)
	}

	a.fetcher = source.NewFetcher(cfg.Fetch.Timeout)
	a.fetcher.AllowPrivate = cfg.Fetch.AllowPrivate
	return nil
}

// parseSource fetches and parses an OWL/XML document into a fresh model.
func (a *app) parseSource(ctx context.Context, src string) (*ontology.Model, error) {
	body, err := a.fetcher.Fetch(ctx, src)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	model, err := owl.Parse(body)
	if err != nil {
		return nil, err
	}
	if model.Metadata.SourceIRI == "" || source.IsURL(src) {
		model.Metadata.SourceIRI = src
	}
	return model, nil
}

// modelFlags are the mutually exclusive ways a command names its ontology:
// a registered short name, a summary document path, or a raw OWL source.
type modelFlags struct {
	ontologyName string
	summaryFile  string
	source       string
}

func (f *modelFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.ontologyName, "ontology", "", "Registered ontology name (e.g. cmso)")
	cmd.Flags().StringVar(&f.summaryFile, "summary-file", "", "Path to a summary JSON document")
	cmd.Flags().StringVar(&f.source, "source", "", "Path or URL of an OWL/XML document")
	cmd.MarkFlagsMutuallyExclusive("ontology", "summary-file", "source")
}

// loadModel resolves the flags to a model plus the ontology's registry
// entry when one applies.
func (a *app) loadModel(ctx context.Context, f *modelFlags) (*ontology.Model, registry.Entry, error) {
	switch {
	case f.source != "":
		model, err := a.parseSource(ctx, f.source)
		return model, registry.Entry{}, err

	case f.summaryFile != "":
		doc, err := summary.ReadFile(f.summaryFile)
		if err != nil {
			return nil, registry.Entry{}, err
		}
		return summary.Load(doc), registry.Entry{}, nil

	case f.ontologyName != "":
		entry, err := a.registry.Lookup(f.ontologyName)
		if err != nil {
			return nil, registry.Entry{}, err
		}
		doc, err := summary.ReadFile(entry.Summary)
		if err != nil {
			return nil, registry.Entry{}, err
		}
		return summary.Load(doc), entry, nil

	default:
		return nil, registry.Entry{}, fmt.Errorf("provide --ontology, --summary-file, or --source")
	}
}

// loadIndexed loads a model and builds its hierarchy index. A cycle in the
// hierarchy is reported but leaves the index usable for unaffected classes.
func (a *app) loadIndexed(ctx context.Context, f *modelFlags) (*ontology.Model, *hierarchy.Index, registry.Entry, error) {
	model, entry, err := a.loadModel(ctx, f)
	if err != nil {
		return nil, nil, registry.Entry{}, err
	}
	idx, err := hierarchy.Build(model)
	if err != nil {
		var cycleErr *hierarchy.CycleDetectedError
		if idx != nil && errors.As(err, &cycleErr) {
			slog.Warn("class hierarchy contains a cycle", "cycle", cycleErr.IRIs)
			return model, idx, entry, nil
		}
		return nil, nil, registry.Entry{}, err
	}
	return model, idx, entry, nil
}
