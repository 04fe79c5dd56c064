// Package app wires the engine's components together: configuration,
// logging, the incremental cache, the builder, and manifest publishing.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hexadocs/docbuild/internal/builder"
	"github.com/hexadocs/docbuild/internal/cache"
	"github.com/hexadocs/docbuild/internal/config"
	"github.com/hexadocs/docbuild/internal/diagnostics"
	"github.com/hexadocs/docbuild/internal/manifest"
	"github.com/hexadocs/docbuild/internal/utils"
)

// Orchestrator coordinates a complete build run.
type Orchestrator struct {
	cfg       *config.Config
	logger    *utils.Logger
	cache     cache.Cache
	collector *diagnostics.Collector
	builder   *builder.Builder
}

// OrchestratorOptions contains per-invocation overrides on top of config.
type OrchestratorOptions struct {
	DryRun       bool
	ShowProgress bool
}

// NewOrchestrator creates an orchestrator from configuration.
func NewOrchestrator(cfg *config.Config, logger *utils.Logger, opts OrchestratorOptions) (*Orchestrator, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}

	var buildCache cache.Cache
	if cfg.Cache.Enabled {
		c, err := cache.NewBadgerCache(cache.Options{Directory: utils.ExpandPath(cfg.Cache.Directory)})
		if err != nil {
			return nil, fmt.Errorf("opening build cache: %w", err)
		}
		buildCache = c
	}

	collector := diagnostics.NewCollector()
	sink := diagnostics.Tee{collector, diagnostics.NewLogSink(logger)}

	b := builder.New(builder.Options{
		OutputDir:    cfg.Output.Directory,
		Workers:      cfg.Build.Workers,
		Force:        cfg.Output.Force,
		DryRun:       opts.DryRun,
		Exclude:      cfg.Build.Exclude,
		ShowProgress: opts.ShowProgress,
	}, buildCache, sink, logger)

	return &Orchestrator{
		cfg:       cfg,
		logger:    logger,
		cache:     buildCache,
		collector: collector,
		builder:   b,
	}, nil
}

// Run builds sourceDir and publishes the manifest into the output
// directory. Warnings do not fail the run.
func (o *Orchestrator) Run(ctx context.Context, sourceDir string) error {
	m, err := o.builder.Build(ctx, sourceDir)
	if err != nil {
		return err
	}

	manifestPath := filepath.Join(o.cfg.Output.Directory, o.cfg.Output.ManifestName)
	if err := m.Save(manifestPath); err != nil {
		return fmt.Errorf("saving manifest: %w", err)
	}

	o.logger.Info().
		Int("items", m.Len()).
		Int("warnings", o.collector.CountBySeverity(diagnostics.SeverityWarning)).
		Str("manifest", manifestPath).
		Msg("Build published")
	return nil
}

// MergeFiles loads the given manifest files, merges them in argument order,
// resolves duplicate output paths, and writes the result to outPath.
func (o *Orchestrator) MergeFiles(paths []string, outPath string) error {
	if len(paths) == 0 {
		return manifest.ErrNoInputs
	}

	inputs := make([]*manifest.Manifest, 0, len(paths))
	for _, path := range paths {
		m, err := manifest.Load(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
		inputs = append(inputs, m)
	}

	merged, err := manifest.Merge(inputs)
	if err != nil {
		return err
	}

	resolver := manifest.NewDuplicateResolver(diagnostics.Tee{o.collector, diagnostics.NewLogSink(o.logger)})
	removed, err := resolver.Resolve(merged)
	if err != nil {
		return err
	}

	if err := merged.Save(outPath); err != nil {
		return fmt.Errorf("saving merged manifest: %w", err)
	}

	o.logger.Info().
		Int("inputs", len(paths)).
		Int("items", merged.Len()).
		Int("removed", removed).
		Str("manifest", outPath).
		Msg("Manifests merged")
	return nil
}

// Warnings returns the diagnostics collected during the run.
func (o *Orchestrator) Warnings() []diagnostics.Record {
	return o.collector.Records()
}

// Close releases held resources.
func (o *Orchestrator) Close() error {
	if o.cache != nil {
		return o.cache.Close()
	}
	return nil
}
