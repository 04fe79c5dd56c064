package manifest

import (
	"fmt"
	"strings"

	"github.com/hexadocs/docbuild/internal/diagnostics"
)

// DuplicateResolver removes items whose output files collide on path after
// a merge. For each colliding path the first item by manifest order
// survives; the rest are removed, cascading artifact removal through the
// index. Collisions are a configuration problem, not a build failure: they
// are reported as warnings through the sink and never abort the build.
type DuplicateResolver struct {
	sink diagnostics.Sink
}

// NewDuplicateResolver creates a resolver reporting to sink.
func NewDuplicateResolver(sink diagnostics.Sink) *DuplicateResolver {
	return &DuplicateResolver{sink: sink}
}

// Resolve removes duplicate-output-path items from the manifest and returns
// the number of items removed. Diagnostics are emitted after the manifest's
// critical section ends, so the sink never runs under the lock.
func (r *DuplicateResolver) Resolve(m *Manifest) (int, error) {
	if m == nil {
		return 0, ErrNilManifest
	}

	m.mu.Lock()
	records, removed, err := r.resolveLocked(m)
	m.mu.Unlock()
	if err != nil {
		return removed, err
	}

	if r.sink != nil {
		for _, rec := range records {
			r.sink.Emit(rec)
		}
	}
	return removed, nil
}

func (r *DuplicateResolver) resolveLocked(m *Manifest) ([]diagnostics.Record, int, error) {
	// Group items by every output path any of their artifacts resolve to,
	// preserving first-seen path order and manifest order within a group.
	var paths []string
	itemsByPath := make(map[string][]*BuildItem)
	for _, it := range m.items {
		for _, kind := range it.sortedKinds() {
			path := it.outputFiles[kind].relativePath
			group := itemsByPath[path]
			if len(group) == 0 {
				paths = append(paths, path)
			}
			if !containsItem(group, it) {
				itemsByPath[path] = append(group, it)
			}
		}
	}

	var records []diagnostics.Record
	var removed int
	dropped := make(map[*BuildItem]bool)

	for _, path := range paths {
		var survivors []*BuildItem
		for _, it := range itemsByPath[path] {
			if !dropped[it] {
				survivors = append(survivors, it)
			}
		}
		if len(survivors) < 2 {
			continue
		}

		keeper := survivors[0]
		removedSources := make([]string, 0, len(survivors)-1)
		for _, loser := range survivors[1:] {
			if err := m.removeItemLocked(loser); err != nil {
				return records, removed, err
			}
			dropped[loser] = true
			removed++
			removedSources = append(removedSources, loser.sourceRelativePath)
		}

		records = append(records, diagnostics.Record{
			Severity: diagnostics.SeverityWarning,
			Code:     diagnostics.CodeDuplicateOutputPath,
			Message: fmt.Sprintf("output path %q is claimed by multiple sources; keeping %q, removing %s",
				path, keeper.sourceRelativePath, strings.Join(quoteAll(removedSources), ", ")),
			Sources: append([]string{keeper.sourceRelativePath}, removedSources...),
		})
	}
	return records, removed, nil
}

func containsItem(items []*BuildItem, it *BuildItem) bool {
	for _, existing := range items {
		if existing == it {
			return true
		}
	}
	return false
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return quoted
}
