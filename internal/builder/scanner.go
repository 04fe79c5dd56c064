package builder

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/hexadocs/docbuild/internal/utils"
)

// Scanner discovers markdown sources under a root directory.
type Scanner struct {
	root    string
	exclude []*regexp.Regexp
}

// NewScanner creates a scanner for root. Exclude patterns are regular
// expressions matched against slash-normalized relative paths.
func NewScanner(root string, exclude []string) (*Scanner, error) {
	patterns := make([]*regexp.Regexp, 0, len(exclude))
	for _, expr := range exclude {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", expr, err)
		}
		patterns = append(patterns, re)
	}
	return &Scanner{root: root, exclude: patterns}, nil
}

// Scan walks the root and returns the relative paths of all markdown
// sources, slash-normalized and sorted.
func (s *Scanner) Scan() ([]string, error) {
	var sources []string

	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !isMarkdown(path) {
			return nil
		}

		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		rel = utils.NormalizePath(rel)

		if s.excluded(rel) {
			return nil
		}
		sources = append(sources, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(sources)
	return sources, nil
}

func (s *Scanner) excluded(relPath string) bool {
	for _, re := range s.exclude {
		if re.MatchString(relPath) {
			return true
		}
	}
	return false
}

func isMarkdown(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".md", ".markdown":
		return true
	}
	return false
}
