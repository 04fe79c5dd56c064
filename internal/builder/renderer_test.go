package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexadocs/docbuild/internal/diagnostics"
)

func TestRenderer_Render(t *testing.T) {
	r := NewRenderer()

	t.Run("renders headings", func(t *testing.T) {
		out, codes, err := r.Render([]byte("# Title\n\nbody text"))
		require.NoError(t, err)
		assert.Empty(t, codes)
		assert.Contains(t, string(out), "<h1>Title</h1>")
		assert.Contains(t, string(out), "<p>body text</p>")
	})

	t.Run("renders GFM tables", func(t *testing.T) {
		src := "| a | b |\n|---|---|\n| 1 | 2 |\n"
		out, _, err := r.Render([]byte(src))
		require.NoError(t, err)
		assert.Contains(t, string(out), "<table>")
	})

	t.Run("empty source gets a diagnostic code", func(t *testing.T) {
		_, codes, err := r.Render([]byte("   \n\t\n"))
		require.NoError(t, err)
		assert.Contains(t, codes, diagnostics.CodeEmptySource)
	})
}
