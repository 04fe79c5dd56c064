package manifest

import "fmt"

// Merge combines partial manifests into one, in input order. Items are
// concatenated preserving manifest order then item order; an item that is
// content-equal in every observable field to an already merged item is
// collapsed into the first occurrence. Cross-reference payloads are
// composed in input order, group lists are concatenated, and the source
// base path is the first non-empty one among the inputs.
//
// The inputs are treated as frozen for the duration of the call: the caller
// must not mutate any contributing manifest concurrently. The output
// depends only on the ordered input list and item content equality.
func Merge(inputs []*Manifest) (*Manifest, error) {
	if len(inputs) == 0 {
		return nil, ErrNoInputs
	}
	for i, in := range inputs {
		if in == nil {
			return nil, fmt.Errorf("input %d: %w", i, ErrNilManifest)
		}
	}

	snapshots := make([]*mergeSnapshot, len(inputs))
	for i, in := range inputs {
		snapshots[i] = snapshotForMerge(in)
	}

	var basePath string
	for _, snap := range snapshots {
		if snap.sourceBasePath != "" {
			basePath = snap.sourceBasePath
			break
		}
	}

	result := New(basePath)
	var merged []*BuildItem
	var xrefs []string
	var groups []Group

	for _, snap := range snapshots {
		for _, it := range snap.items {
			if containsEqualItem(merged, it) {
				continue
			}
			merged = append(merged, it)
		}
		xrefs = append(xrefs, snap.xrefs...)
		groups = append(groups, snap.groups...)
	}

	result.mu.Lock()
	for _, it := range merged {
		result.addItemUnchecked(it.sourceRelativePath, it.outputFiles, it.logCodes)
	}
	result.xrefs = xrefs
	result.groups = groups
	result.mu.Unlock()

	return result, nil
}

// mergeSnapshot is a frozen copy of one input manifest's observable state.
type mergeSnapshot struct {
	sourceBasePath string
	items          []*BuildItem
	xrefs          []string
	groups         []Group
}

// snapshotForMerge deep-copies the manifest's items under its read lock so
// the merge can compare and rehome them without holding any input's lock.
func snapshotForMerge(m *Manifest) *mergeSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := &mergeSnapshot{
		sourceBasePath: m.sourceBasePath,
		items:          make([]*BuildItem, 0, len(m.items)),
		xrefs:          append([]string(nil), m.xrefs...),
		groups:         append([]Group(nil), m.groups...),
	}
	for _, it := range m.items {
		clone := &BuildItem{
			sourceRelativePath: it.sourceRelativePath,
			outputFiles:        make(map[string]*OutputArtifact, len(it.outputFiles)),
			logCodes:           append([]string(nil), it.logCodes...),
		}
		for kind, art := range it.outputFiles {
			clone.outputFiles[kind] = &OutputArtifact{
				relativePath:       art.relativePath,
				sourceRelativePath: art.sourceRelativePath,
			}
		}
		snap.items = append(snap.items, clone)
	}
	return snap
}

func containsEqualItem(items []*BuildItem, it *BuildItem) bool {
	for _, existing := range items {
		if existing.equalContent(it) {
			return true
		}
	}
	return false
}
