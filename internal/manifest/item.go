package manifest

import "sort"

// OutputArtifact is one physical output file produced for a BuildItem. Its
// relative path is mutable through Manifest.SetOutputPath; every other field
// is fixed at registration.
type OutputArtifact struct {
	owner *Manifest

	// relativePath is slash-normalized and guarded by owner.mu.
	relativePath       string
	sourceRelativePath string
}

// RelativePath returns the artifact's current output path relative to the
// build output root.
func (a *OutputArtifact) RelativePath() string {
	a.owner.mu.RLock()
	defer a.owner.mu.RUnlock()
	return a.relativePath
}

// SourceRelativePath returns the path of the source file this artifact was
// produced from. It never changes after registration.
func (a *OutputArtifact) SourceRelativePath() string {
	return a.sourceRelativePath
}

// BuildItem is one source document's build result: the set of output files
// it produced, keyed by kind, plus any diagnostic codes attached after the
// build. Its source relative path is its identity within the owning
// Manifest.
type BuildItem struct {
	owner *Manifest

	sourceRelativePath string
	outputFiles        map[string]*OutputArtifact
	logCodes           []string
}

// SourceRelativePath returns the item's identity: the source file path
// relative to the manifest's source base.
func (it *BuildItem) SourceRelativePath() string {
	return it.sourceRelativePath
}

// OutputFile returns the artifact registered under kind, or nil.
func (it *BuildItem) OutputFile(kind string) *OutputArtifact {
	it.owner.mu.RLock()
	defer it.owner.mu.RUnlock()
	return it.outputFiles[kind]
}

// OutputFiles returns a snapshot of the item's artifacts keyed by kind.
func (it *BuildItem) OutputFiles() map[string]*OutputArtifact {
	it.owner.mu.RLock()
	defer it.owner.mu.RUnlock()
	files := make(map[string]*OutputArtifact, len(it.outputFiles))
	for kind, art := range it.outputFiles {
		files[kind] = art
	}
	return files
}

// LogCodes returns a copy of the diagnostic codes attached to the item.
func (it *BuildItem) LogCodes() []string {
	it.owner.mu.RLock()
	defer it.owner.mu.RUnlock()
	if len(it.logCodes) == 0 {
		return nil
	}
	codes := make([]string, len(it.logCodes))
	copy(codes, it.logCodes)
	return codes
}

// sortedKinds returns the item's artifact kinds in deterministic order.
// Caller must hold the owner's lock.
func (it *BuildItem) sortedKinds() []string {
	kinds := make([]string, 0, len(it.outputFiles))
	for kind := range it.outputFiles {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// equalContent reports whether two items agree in every observable field:
// identity, artifact kinds, artifact paths, and log codes. Caller must hold
// the locks of both owners (or the items must be frozen).
func (it *BuildItem) equalContent(other *BuildItem) bool {
	if it.sourceRelativePath != other.sourceRelativePath {
		return false
	}
	if len(it.outputFiles) != len(other.outputFiles) {
		return false
	}
	for kind, art := range it.outputFiles {
		o, ok := other.outputFiles[kind]
		if !ok {
			return false
		}
		if art.relativePath != o.relativePath || art.sourceRelativePath != o.sourceRelativePath {
			return false
		}
	}
	if len(it.logCodes) != len(other.logCodes) {
		return false
	}
	for i, code := range it.logCodes {
		if other.logCodes[i] != code {
			return false
		}
	}
	return true
}
