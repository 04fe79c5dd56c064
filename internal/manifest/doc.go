// Package manifest maintains the canonical record of a documentation build:
// which source files were built, which output files each of them produced,
// and where those outputs live. It is the reconciliation point for builds
// that run in parallel groups.
//
// # Ownership Model
//
// A Manifest exclusively owns its BuildItems and their OutputArtifacts. All
// structural mutation (adding or removing items, registering output files,
// rewriting an output path) goes through Manifest methods, which update the
// owned collections and the derived reverse index atomically under a single
// per-manifest lock. Handles returned to callers (*BuildItem,
// *OutputArtifact) are read-only views; their accessors take the owning
// manifest's read lock.
//
// # Merging
//
// Partial manifests produced by independent build groups are combined with
// Merge, which concatenates items in input order and collapses items that
// are content-equal in every observable field. Output-path collisions that
// survive the merge are removed by a DuplicateResolver, which keeps the
// first item by manifest order and reports the rest through a
// diagnostics.Sink.
//
// # Persistence
//
// Save and Load round-trip the manifest through YAML or JSON, selected by
// file extension:
//
//	m, err := manifest.Load("docs/manifest.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if art := m.FindOutputFileInfo("guide/intro.html"); art != nil {
//	    fmt.Println(art.SourceRelativePath())
//	}
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrDuplicateItem: an item already exists for the source path
//   - ErrItemNotFound: no item exists for the source path
//   - ErrIndexCorrupt: the reverse index disagrees with the owned data
//   - ErrInvalidFormat: a manifest file is not valid YAML/JSON
package manifest
