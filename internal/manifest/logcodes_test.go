package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyLogCodes(t *testing.T) {
	t.Run("sets codes for listed items only", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"x.md": "x.html", "y.md": "y.html"})

		require.NoError(t, ApplyLogCodes(m, map[string][]string{"x.md": {"WRN001"}}))

		assert.Equal(t, []string{"WRN001"}, m.Item("x.md").LogCodes())
		assert.Nil(t, m.Item("y.md").LogCodes())
	})

	t.Run("reapplying is idempotent", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"x.md": "x.html"})
		codes := map[string][]string{"x.md": {"WRN001"}}

		require.NoError(t, ApplyLogCodes(m, codes))
		require.NoError(t, ApplyLogCodes(m, codes))

		assert.Equal(t, []string{"WRN001"}, m.Item("x.md").LogCodes())
	})

	t.Run("replaces previous codes for listed items", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"x.md": "x.html"})

		require.NoError(t, ApplyLogCodes(m, map[string][]string{"x.md": {"WRN001"}}))
		require.NoError(t, ApplyLogCodes(m, map[string][]string{"x.md": {"WRN002"}}))

		assert.Equal(t, []string{"WRN002"}, m.Item("x.md").LogCodes())
	})

	t.Run("deduplicates and sorts codes", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"x.md": "x.html"})

		require.NoError(t, ApplyLogCodes(m, map[string][]string{
			"x.md": {"WRN002", "WRN001", "WRN002", ""},
		}))

		assert.Equal(t, []string{"WRN001", "WRN002"}, m.Item("x.md").LogCodes())
	})

	t.Run("normalizes map keys", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"a/b.md": "b.html"})

		require.NoError(t, ApplyLogCodes(m, map[string][]string{`a\b.md`: {"WRN001"}}))
		assert.Equal(t, []string{"WRN001"}, m.Item("a/b.md").LogCodes())
	})

	t.Run("unknown keys are ignored", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"x.md": "x.html"})
		require.NoError(t, ApplyLogCodes(m, map[string][]string{"missing.md": {"WRN001"}}))
		assert.Nil(t, m.Item("x.md").LogCodes())
	})

	t.Run("nil manifest", func(t *testing.T) {
		assert.ErrorIs(t, ApplyLogCodes(nil, map[string][]string{"x.md": {"WRN001"}}), ErrNilManifest)
	})

	t.Run("empty map is a no-op", func(t *testing.T) {
		m := buildManifest(t, "docs", map[string]string{"x.md": "x.html"})
		require.NoError(t, ApplyLogCodes(m, nil))
		assert.Nil(t, m.Item("x.md").LogCodes())
	})
}
