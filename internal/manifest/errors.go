package manifest

import "errors"

// Sentinel errors for the manifest package.
//
// Input-contract errors (ErrNilManifest through ErrArtifactNotFound) are
// returned before any state is modified. ErrIndexCorrupt signals an internal
// inconsistency between the owned collections and the reverse index and is
// never recoverable at the call site.
var (
	// ErrNilManifest indicates a nil manifest was passed where one is required
	ErrNilManifest = errors.New("manifest cannot be nil")

	// ErrNoInputs indicates Merge was called with no input manifests
	ErrNoInputs = errors.New("merge requires at least one input manifest")

	// ErrEmptySourcePath indicates an empty source relative path
	ErrEmptySourcePath = errors.New("source relative path cannot be empty")

	// ErrEmptyOutputPath indicates an empty output relative path
	ErrEmptyOutputPath = errors.New("output relative path cannot be empty")

	// ErrEmptyKind indicates an empty output kind
	ErrEmptyKind = errors.New("output kind cannot be empty")

	// ErrDuplicateItem indicates an item already exists for the source path
	ErrDuplicateItem = errors.New("item already exists for source path")

	// ErrItemNotFound indicates no item exists for the source path
	ErrItemNotFound = errors.New("no item for source path")

	// ErrDuplicateArtifact indicates an output file is already registered
	// under the kind
	ErrDuplicateArtifact = errors.New("output file already registered for kind")

	// ErrArtifactNotFound indicates no output file is registered under the kind
	ErrArtifactNotFound = errors.New("no output file for kind")

	// ErrIndexCorrupt indicates the reverse index disagrees with the
	// manifest's owned items and artifacts
	ErrIndexCorrupt = errors.New("output index is inconsistent with manifest contents")

	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrInvalidFormat indicates the manifest file is not valid YAML or JSON
	ErrInvalidFormat = errors.New("manifest must be valid YAML or JSON")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .yaml, .yml, or .json)")
)
