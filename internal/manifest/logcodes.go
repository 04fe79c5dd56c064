package manifest

import (
	"sort"

	"github.com/hexadocs/docbuild/internal/utils"
)

// ApplyLogCodes attaches diagnostic codes to items by source path. Every
// item whose source path is a key in codesBySource gets its code set
// replaced with the mapped codes (deduplicated, sorted); items absent from
// the map are left unchanged. Applying the same map twice is a no-op. Codes
// are additive metadata: the manifest never derives or clears them itself.
func ApplyLogCodes(m *Manifest, codesBySource map[string][]string) error {
	if m == nil {
		return ErrNilManifest
	}
	if len(codesBySource) == 0 {
		return nil
	}

	normalized := make(map[string][]string, len(codesBySource))
	for source, codes := range codesBySource {
		normalized[utils.NormalizePath(source)] = normalizeCodes(codes)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, it := range m.items {
		if codes, ok := normalized[it.sourceRelativePath]; ok {
			it.logCodes = append([]string(nil), codes...)
		}
	}
	return nil
}

func normalizeCodes(codes []string) []string {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
