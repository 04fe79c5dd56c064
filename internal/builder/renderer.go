package builder

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/hexadocs/docbuild/internal/diagnostics"
)

// Renderer converts markdown sources to HTML.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a GFM-flavored markdown renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithUnsafe()),
		),
	}
}

// Render converts source markdown to HTML. The returned codes are
// diagnostic codes to attach to the source's manifest item.
func (r *Renderer) Render(source []byte) (output []byte, codes []string, err error) {
	if len(bytes.TrimSpace(source)) == 0 {
		codes = append(codes, diagnostics.CodeEmptySource)
	}

	var buf bytes.Buffer
	if err := r.md.Convert(source, &buf); err != nil {
		return nil, codes, fmt.Errorf("markdown conversion failed: %w", err)
	}
	return buf.Bytes(), codes, nil
}
