// Package builder runs the local documentation build: it scans markdown
// sources, renders them to HTML in parallel groups, and records every
// produced artifact in a manifest. One partial manifest is built per group;
// the partials are merged and duplicate output paths resolved before the
// result is returned.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hexadocs/docbuild/internal/cache"
	"github.com/hexadocs/docbuild/internal/diagnostics"
	"github.com/hexadocs/docbuild/internal/manifest"
	"github.com/hexadocs/docbuild/internal/utils"
)

// KindHTML is the artifact kind for rendered HTML output.
const KindHTML = "html"

// rootGroup is the group name for sources at the top of the source tree.
const rootGroup = "root"

// Builder orchestrates one build phase.
type Builder struct {
	opts     Options
	cache    cache.Cache
	sink     diagnostics.Sink
	logger   *utils.Logger
	renderer *Renderer
	writer   *Writer
}

// Options contains builder configuration.
type Options struct {
	OutputDir    string
	Workers      int
	Force        bool
	DryRun       bool
	Exclude      []string
	ShowProgress bool
}

// New creates a builder. The cache may be nil, which disables incremental
// skipping.
func New(opts Options, c cache.Cache, sink diagnostics.Sink, logger *utils.Logger) *Builder {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if logger == nil {
		logger = utils.NewDefaultLogger()
	}
	return &Builder{
		opts:     opts,
		cache:    c,
		sink:     sink,
		logger:   logger.WithComponent("builder"),
		renderer: NewRenderer(),
		writer: NewWriter(WriterOptions{
			BaseDir: opts.OutputDir,
			DryRun:  opts.DryRun,
		}),
	}
}

// Build scans sourceDir, builds each group's partial manifest in parallel,
// merges them, applies per-file diagnostic codes, and resolves duplicate
// output paths. The returned manifest is final and consistent.
func (b *Builder) Build(ctx context.Context, sourceDir string) (*manifest.Manifest, error) {
	scanner, err := NewScanner(sourceDir, b.opts.Exclude)
	if err != nil {
		return nil, err
	}
	sources, err := scanner.Scan()
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", sourceDir, err)
	}
	b.logger.Info().Int("sources", len(sources)).Str("dir", sourceDir).Msg("Scan complete")

	if !b.opts.DryRun {
		if err := b.writer.EnsureBaseDir(); err != nil {
			return nil, err
		}
	}

	groups := partition(sources)
	groupNames := make([]string, 0, len(groups))
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Strings(groupNames)

	var progress progressCounter = noopProgress{}
	if b.opts.ShowProgress {
		progress = utils.NewProgressBar(len(sources), utils.DescRendering)
	}

	codes := newCodeSet()
	partials := make([]*manifest.Manifest, len(groupNames))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range groupNames {
		eg.Go(func() error {
			m, err := b.buildGroup(egCtx, sourceDir, name, groups[name], codes, progress)
			if err != nil {
				return err
			}
			partials[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged, err := manifest.Merge(partials)
	if err != nil {
		return nil, err
	}
	if err := manifest.ApplyLogCodes(merged, codes.snapshot()); err != nil {
		return nil, err
	}

	resolver := manifest.NewDuplicateResolver(b.sink)
	removed, err := resolver.Resolve(merged)
	if err != nil {
		return nil, err
	}
	if removed > 0 {
		b.logger.Warn().Int("removed", removed).Msg("Removed items with duplicate output paths")
	}

	b.logger.Info().Int("items", merged.Len()).Msg("Build complete")
	return merged, nil
}

// buildGroup renders one group's sources with a worker pool, all workers
// mutating the group's partial manifest through its mutation API.
func (b *Builder) buildGroup(ctx context.Context, sourceDir, name string, sources []string, codes *codeSet, progress progressCounter) (*manifest.Manifest, error) {
	logger := b.logger.WithGroup(name)
	m := manifest.New(utils.NormalizePath(sourceDir))
	m.AddGroup(manifest.Group{Name: name})

	errs := utils.ParallelForEach(ctx, sources, b.opts.Workers, func(ctx context.Context, rel string) error {
		if err := b.buildFile(ctx, sourceDir, rel, m, codes); err != nil {
			return fmt.Errorf("building %s: %w", rel, err)
		}
		progress.Add(1)
		return nil
	})
	if err := utils.FirstError(errs); err != nil {
		return nil, err
	}

	logger.Debug().Int("sources", len(sources)).Msg("Group built")
	return m, nil
}

func (b *Builder) buildFile(ctx context.Context, sourceDir, rel string, m *manifest.Manifest, codes *codeSet) error {
	data, err := os.ReadFile(filepath.Join(sourceDir, filepath.FromSlash(rel)))
	if err != nil {
		return err
	}

	outRel := utils.OutputPathFor(rel)
	hash := cache.HashContent(data)

	if b.upToDate(ctx, rel, outRel, hash) {
		b.logger.Debug().Str("source", rel).Msg("Unchanged, skipping render")
	} else {
		html, fileCodes, err := b.renderer.Render(data)
		if err != nil {
			return err
		}
		if err := b.writer.Write(outRel, html); err != nil {
			return err
		}
		codes.add(rel, fileCodes)
		if b.cache != nil && !b.opts.DryRun {
			if err := b.cache.Set(ctx, cache.SourceKey(rel), []byte(hash)); err != nil {
				b.logger.Warn().Err(err).Str("source", rel).Msg("Failed to update build cache")
			}
		}
	}

	// Manifest registration happens whether or not the render was skipped:
	// the manifest must record every current source.
	if _, err := m.AddItem(rel); err != nil {
		return err
	}
	if _, err := m.AddOutputFile(rel, KindHTML, outRel); err != nil {
		return err
	}
	return nil
}

func (b *Builder) upToDate(ctx context.Context, rel, outRel, hash string) bool {
	if b.cache == nil || b.opts.Force {
		return false
	}
	prev, err := b.cache.Get(ctx, cache.SourceKey(rel))
	if err != nil || string(prev) != hash {
		return false
	}
	return b.writer.Exists(outRel)
}

// partition splits sources into build groups by top-level directory.
func partition(sources []string) map[string][]string {
	groups := make(map[string][]string)
	for _, rel := range sources {
		name := utils.TopLevelDir(rel)
		if name == "" {
			name = rootGroup
		}
		groups[name] = append(groups[name], rel)
	}
	return groups
}

// codeSet accumulates per-source diagnostic codes across groups.
type codeSet struct {
	mu    sync.Mutex
	codes map[string][]string
}

func newCodeSet() *codeSet {
	return &codeSet{codes: make(map[string][]string)}
}

func (c *codeSet) add(source string, codes []string) {
	if len(codes) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[source] = append(c.codes[source], codes...)
}

func (c *codeSet) snapshot() map[string][]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string][]string, len(c.codes))
	for source, codes := range c.codes {
		out[source] = append([]string(nil), codes...)
	}
	return out
}

// progressCounter abstracts the progress bar so quiet builds skip it.
type progressCounter interface {
	Add(int) error
}

type noopProgress struct{}

func (noopProgress) Add(int) error { return nil }
