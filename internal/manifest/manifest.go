package manifest

import (
	"fmt"
	"sync"

	"github.com/hexadocs/docbuild/internal/utils"
)

// Group describes one build group that contributed items to the manifest.
type Group struct {
	Name        string `json:"name" yaml:"name"`
	Destination string `json:"destination,omitempty" yaml:"destination,omitempty"`
}

// Manifest is the complete, consistent record of one build: an ordered
// collection of BuildItems, a derived reverse index over their output
// paths, the source base path, the opaque cross-reference payload, and the
// contributing groups.
//
// A single-writer/multiple-reader lock guards all structural mutation and
// all index access. Mutation methods never perform I/O and never call out
// of the package while holding the lock.
type Manifest struct {
	mu sync.RWMutex

	sourceBasePath string
	items          []*BuildItem
	itemsBySource  map[string]*BuildItem
	index          *reverseIndex
	xrefs          []string
	groups         []Group
}

// New creates an empty manifest for sources rooted at sourceBasePath.
func New(sourceBasePath string) *Manifest {
	return &Manifest{
		sourceBasePath: sourceBasePath,
		itemsBySource:  make(map[string]*BuildItem),
		index:          newReverseIndex(),
	}
}

// SourceBasePath returns the base path all item source paths are relative to.
func (m *Manifest) SourceBasePath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sourceBasePath
}

// Items returns a snapshot of the manifest's items in manifest order.
func (m *Manifest) Items() []*BuildItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]*BuildItem, len(m.items))
	copy(items, m.items)
	return items
}

// Len returns the number of items in the manifest.
func (m *Manifest) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

// Item returns the item for the source path, or nil. When merge has left
// more than one item with the same identity, the first by manifest order is
// returned.
func (m *Manifest) Item(sourceRelPath string) *BuildItem {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.itemsBySource[utils.NormalizePath(sourceRelPath)]
}

// Groups returns a copy of the manifest's group descriptors.
func (m *Manifest) Groups() []Group {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.groups) == 0 {
		return nil
	}
	groups := make([]Group, len(m.groups))
	copy(groups, m.groups)
	return groups
}

// AddGroup appends a group descriptor.
func (m *Manifest) AddGroup(g Group) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.groups = append(m.groups, g)
}

// CrossReference returns the cross-reference payload as an ordered list:
// nil when absent, one entry when scalar. The payload is carried opaquely;
// the manifest never interprets it.
func (m *Manifest) CrossReference() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.xrefs) == 0 {
		return nil
	}
	xrefs := make([]string, len(m.xrefs))
	copy(xrefs, m.xrefs)
	return xrefs
}

// SetCrossReference replaces the cross-reference payload.
func (m *Manifest) SetCrossReference(values ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.xrefs = append([]string(nil), values...)
}

// AddItem creates and registers a new item for the source path. The path is
// the item's identity and must be unique within the manifest.
func (m *Manifest) AddItem(sourceRelPath string) (*BuildItem, error) {
	if sourceRelPath == "" {
		return nil, ErrEmptySourcePath
	}
	source := utils.NormalizePath(sourceRelPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.itemsBySource[source]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, source)
	}

	it := &BuildItem{
		owner:              m,
		sourceRelativePath: source,
		outputFiles:        make(map[string]*OutputArtifact),
	}
	m.items = append(m.items, it)
	m.itemsBySource[source] = it
	m.index.itemAdded(it)
	return it, nil
}

// RemoveItem removes the item for the source path, unregistering all of its
// artifacts from the index.
func (m *Manifest) RemoveItem(sourceRelPath string) error {
	if sourceRelPath == "" {
		return ErrEmptySourcePath
	}
	source := utils.NormalizePath(sourceRelPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	it, exists := m.itemsBySource[source]
	if !exists {
		return fmt.Errorf("%w: %s", ErrItemNotFound, source)
	}
	return m.removeItemLocked(it)
}

// AddOutputFile registers a new output file of the given kind for the item
// identified by sourceRelPath.
func (m *Manifest) AddOutputFile(sourceRelPath, kind, outputRelPath string) (*OutputArtifact, error) {
	if sourceRelPath == "" {
		return nil, ErrEmptySourcePath
	}
	if kind == "" {
		return nil, ErrEmptyKind
	}
	if outputRelPath == "" {
		return nil, ErrEmptyOutputPath
	}
	source := utils.NormalizePath(sourceRelPath)
	output := utils.NormalizePath(outputRelPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	it, exists := m.itemsBySource[source]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrItemNotFound, source)
	}
	if _, exists := it.outputFiles[kind]; exists {
		return nil, fmt.Errorf("%w: %s %q", ErrDuplicateArtifact, source, kind)
	}

	art := &OutputArtifact{
		owner:              m,
		relativePath:       output,
		sourceRelativePath: source,
	}
	it.outputFiles[kind] = art
	m.index.add(art)
	return art, nil
}

// RemoveOutputFile unregisters the output file of the given kind from the
// item identified by sourceRelPath.
func (m *Manifest) RemoveOutputFile(sourceRelPath, kind string) error {
	if sourceRelPath == "" {
		return ErrEmptySourcePath
	}
	if kind == "" {
		return ErrEmptyKind
	}
	source := utils.NormalizePath(sourceRelPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	it, exists := m.itemsBySource[source]
	if !exists {
		return fmt.Errorf("%w: %s", ErrItemNotFound, source)
	}
	art, exists := it.outputFiles[kind]
	if !exists {
		return fmt.Errorf("%w: %s %q", ErrArtifactNotFound, source, kind)
	}
	if err := m.index.remove(art); err != nil {
		return err
	}
	delete(it.outputFiles, kind)
	return nil
}

// SetOutputPath rewrites the output path of the artifact registered under
// kind for the item identified by sourceRelPath, relocating its index entry
// in the same critical section.
func (m *Manifest) SetOutputPath(sourceRelPath, kind, newRelPath string) error {
	if sourceRelPath == "" {
		return ErrEmptySourcePath
	}
	if kind == "" {
		return ErrEmptyKind
	}
	if newRelPath == "" {
		return ErrEmptyOutputPath
	}
	source := utils.NormalizePath(sourceRelPath)
	newPath := utils.NormalizePath(newRelPath)

	m.mu.Lock()
	defer m.mu.Unlock()

	it, exists := m.itemsBySource[source]
	if !exists {
		return fmt.Errorf("%w: %s", ErrItemNotFound, source)
	}
	art, exists := it.outputFiles[kind]
	if !exists {
		return fmt.Errorf("%w: %s %q", ErrArtifactNotFound, source, kind)
	}
	if art.relativePath == newPath {
		return nil
	}

	m.index.pathChanged(art, art.relativePath, newPath)
	art.relativePath = newPath
	return nil
}

// FindOutputFileInfo returns the first-registered artifact whose current
// output path equals relPath (after normalization), or nil. It reflects only
// fully committed mutations.
func (m *Manifest) FindOutputFileInfo(relPath string) *OutputArtifact {
	path := utils.NormalizePath(relPath)

	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.lookup(path)
}

// removeItemLocked detaches the item and unregisters its artifacts. Caller
// must hold the write lock.
func (m *Manifest) removeItemLocked(it *BuildItem) error {
	if err := m.index.itemRemoved(it); err != nil {
		return err
	}
	for i, candidate := range m.items {
		if candidate == it {
			m.items = append(m.items[:i], m.items[i+1:]...)
			break
		}
	}
	if m.itemsBySource[it.sourceRelativePath] == it {
		delete(m.itemsBySource, it.sourceRelativePath)
		// Re-point the identity map at the next item with the same source,
		// if merge left one behind.
		for _, candidate := range m.items {
			if candidate.sourceRelativePath == it.sourceRelativePath {
				m.itemsBySource[it.sourceRelativePath] = candidate
				break
			}
		}
	}
	return nil
}

// addItemUnchecked appends a fully formed item without enforcing identity
// uniqueness. Used by merge and deserialization, where duplicate identities
// are legitimate until duplicate resolution runs. Caller must hold the
// write lock.
func (m *Manifest) addItemUnchecked(source string, outputs map[string]*OutputArtifact, logCodes []string) *BuildItem {
	it := &BuildItem{
		owner:              m,
		sourceRelativePath: source,
		outputFiles:        outputs,
		logCodes:           logCodes,
	}
	for _, art := range outputs {
		art.owner = m
	}
	m.items = append(m.items, it)
	if _, exists := m.itemsBySource[source]; !exists {
		m.itemsBySource[source] = it
	}
	m.index.itemAdded(it)
	return it
}
