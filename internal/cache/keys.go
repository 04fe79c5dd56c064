package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/hexadocs/docbuild/internal/utils"
)

// Key prefixes for different entry types
const (
	PrefixHash = "hash"
)

// SourceKey generates the cache key for a source file's content hash. The
// path is slash-normalized first so the key is stable across platforms.
func SourceKey(sourceRelPath string) string {
	normalized := utils.NormalizePath(sourceRelPath)
	sum := sha256.Sum256([]byte(normalized))
	return PrefixHash + ":" + hex.EncodeToString(sum[:])
}

// HashContent returns the hex content hash stored for a source file.
func HashContent(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
