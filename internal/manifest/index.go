package manifest

import "fmt"

// reverseIndex is the derived lookup from normalized output path to the
// artifacts registered under it, in registration order. It owns nothing: it
// holds references into the manifest's items and is only ever touched inside
// the manifest's critical sections, so it needs no lock of its own.
//
// A path can transiently map to more than one artifact (legitimate duplicate
// registrations before duplicate resolution runs); lookup is first-wins so
// the result is deterministic regardless.
type reverseIndex struct {
	byPath map[string][]*OutputArtifact
}

func newReverseIndex() *reverseIndex {
	return &reverseIndex{byPath: make(map[string][]*OutputArtifact)}
}

// lookup returns the first-registered artifact under the normalized path,
// or nil.
func (ix *reverseIndex) lookup(path string) *OutputArtifact {
	arts := ix.byPath[path]
	if len(arts) == 0 {
		return nil
	}
	return arts[0]
}

// add registers the artifact under its current path.
func (ix *reverseIndex) add(art *OutputArtifact) {
	ix.byPath[art.relativePath] = append(ix.byPath[art.relativePath], art)
}

// remove unregisters the artifact from under its current path. An artifact
// that was never registered means the index and the owned data have
// diverged.
func (ix *reverseIndex) remove(art *OutputArtifact) error {
	if !ix.removeAt(art, art.relativePath) {
		return fmt.Errorf("%w: artifact %q not registered under %q",
			ErrIndexCorrupt, art.sourceRelativePath, art.relativePath)
	}
	return nil
}

// pathChanged relocates the artifact's entry from oldPath to newPath. A miss
// under oldPath is tolerated: mutation is serialized by the manifest lock,
// so a miss can only mean the entry was already relocated.
func (ix *reverseIndex) pathChanged(art *OutputArtifact, oldPath, newPath string) {
	ix.removeAt(art, oldPath)
	ix.byPath[newPath] = append(ix.byPath[newPath], art)
}

// itemAdded registers all artifacts currently owned by the item.
func (ix *reverseIndex) itemAdded(it *BuildItem) {
	for _, kind := range it.sortedKinds() {
		ix.add(it.outputFiles[kind])
	}
}

// itemRemoved unregisters all artifacts owned by the item.
func (ix *reverseIndex) itemRemoved(it *BuildItem) error {
	for _, kind := range it.sortedKinds() {
		if err := ix.remove(it.outputFiles[kind]); err != nil {
			return err
		}
	}
	return nil
}

// removeAt deletes the artifact from the list under path, preserving the
// order of the remaining entries. Reports whether the artifact was found.
func (ix *reverseIndex) removeAt(art *OutputArtifact, path string) bool {
	arts := ix.byPath[path]
	for i, a := range arts {
		if a == art {
			arts = append(arts[:i], arts[i+1:]...)
			if len(arts) == 0 {
				delete(ix.byPath, path)
			} else {
				ix.byPath[path] = arts
			}
			return true
		}
	}
	return false
}
