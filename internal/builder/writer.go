package builder

import (
	"os"
	"path/filepath"

	"github.com/hexadocs/docbuild/internal/utils"
)

// Writer handles writing rendered artifacts to the filesystem
type Writer struct {
	baseDir string
	dryRun  bool
}

// WriterOptions contains options for the writer
type WriterOptions struct {
	BaseDir string
	DryRun  bool
}

// NewWriter creates a new artifact writer
func NewWriter(opts WriterOptions) *Writer {
	if opts.BaseDir == "" {
		opts.BaseDir = "./site"
	}
	return &Writer{
		baseDir: opts.BaseDir,
		dryRun:  opts.DryRun,
	}
}

// Write saves an artifact under its output-relative path, overwriting any
// existing file. Deciding whether a source needs rendering at all is the
// cache's job; by the time Write is called the content is current.
func (w *Writer) Write(relPath string, data []byte) error {
	if w.dryRun {
		return nil
	}

	path := w.pathFor(relPath)
	if err := utils.EnsureDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Exists checks if an artifact already exists on disk.
func (w *Writer) Exists(relPath string) bool {
	_, err := os.Stat(w.pathFor(relPath))
	return err == nil
}

// EnsureBaseDir creates the base directory if it doesn't exist
func (w *Writer) EnsureBaseDir() error {
	return os.MkdirAll(w.baseDir, 0755)
}

func (w *Writer) pathFor(relPath string) string {
	return filepath.Join(w.baseDir, filepath.FromSlash(utils.NormalizePath(relPath)))
}
