package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// NormalizePath converts backslash separators to forward slashes. Every
// path stored in or looked up against a manifest goes through this first,
// so Windows-style and POSIX-style spellings of the same path compare
// equal.
func NormalizePath(path string) string {
	return strings.ReplaceAll(path, `\`, "/")
}

// OutputPathFor maps a markdown source path to its HTML output path.
func OutputPathFor(sourceRelPath string) string {
	normalized := NormalizePath(sourceRelPath)
	ext := filepath.Ext(normalized)
	switch strings.ToLower(ext) {
	case ".md", ".markdown":
		return strings.TrimSuffix(normalized, ext) + ".html"
	}
	return normalized + ".html"
}

// TopLevelDir returns the first path segment of a slash-normalized relative
// path, or "" for paths at the root.
func TopLevelDir(relPath string) string {
	normalized := NormalizePath(relPath)
	if i := strings.Index(normalized, "/"); i >= 0 {
		return normalized[:i]
	}
	return ""
}

// EnsureDir ensures the parent directory of path exists, creating it if
// necessary.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return home
	}
	return path
}
