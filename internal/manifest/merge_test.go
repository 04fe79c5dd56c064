package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildManifest(t *testing.T, base string, files map[string]string) *Manifest {
	t.Helper()
	m := New(base)
	for source, output := range files {
		_, err := m.AddItem(source)
		require.NoError(t, err)
		_, err = m.AddOutputFile(source, "html", output)
		require.NoError(t, err)
	}
	return m
}

func sourcesOf(m *Manifest) []string {
	var sources []string
	for _, it := range m.Items() {
		sources = append(sources, it.SourceRelativePath())
	}
	return sources
}

func TestMerge_InputValidation(t *testing.T) {
	t.Run("no inputs", func(t *testing.T) {
		_, err := Merge(nil)
		assert.ErrorIs(t, err, ErrNoInputs)
	})

	t.Run("nil input element", func(t *testing.T) {
		_, err := Merge([]*Manifest{New("docs"), nil})
		assert.ErrorIs(t, err, ErrNilManifest)
		assert.Contains(t, err.Error(), "input 1")
	})
}

func TestMerge_ConcatenatesInOrder(t *testing.T) {
	a := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})
	b := buildManifest(t, "docs", map[string]string{"b.md": "b.html"})

	merged, err := Merge([]*Manifest{a, b})
	require.NoError(t, err)

	assert.Equal(t, []string{"a.md", "b.md"}, sourcesOf(merged))
	assert.NotNil(t, merged.FindOutputFileInfo("a.html"))
	assert.NotNil(t, merged.FindOutputFileInfo("b.html"))
}

func TestMerge_CollapsesContentEqualItems(t *testing.T) {
	a := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})
	b := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})

	merged, err := Merge([]*Manifest{a, b})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md"}, sourcesOf(merged))
}

func TestMerge_KeepsSameIdentityDifferentContent(t *testing.T) {
	a := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})
	b := buildManifest(t, "docs", map[string]string{"a.md": "other.html"})

	merged, err := Merge([]*Manifest{a, b})
	require.NoError(t, err)

	// Not content-equal, so neither is dropped; duplicate resolution is a
	// separate, later step.
	assert.Equal(t, []string{"a.md", "a.md"}, sourcesOf(merged))
}

func TestMerge_Associativity(t *testing.T) {
	newInputs := func() (*Manifest, *Manifest, *Manifest) {
		a := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})
		b := buildManifest(t, "docs", map[string]string{"b.md": "b.html", "a.md": "a.html"})
		c := buildManifest(t, "docs", map[string]string{"c.md": "c.html"})
		return a, b, c
	}

	a, b, c := newInputs()
	ab, err := Merge([]*Manifest{a, b})
	require.NoError(t, err)
	left, err := Merge([]*Manifest{ab, c})
	require.NoError(t, err)

	a, b, c = newInputs()
	flat, err := Merge([]*Manifest{a, b, c})
	require.NoError(t, err)

	assert.ElementsMatch(t, sourcesOf(left), sourcesOf(flat))
	assert.Equal(t, flat.Len(), left.Len())
}

func TestMerge_CrossReferenceComposition(t *testing.T) {
	tests := []struct {
		name   string
		xrefs  [][]string
		expect []string
	}{
		{
			name:   "no contributing payloads",
			xrefs:  [][]string{nil, nil},
			expect: nil,
		},
		{
			name:   "single payload propagates as scalar",
			xrefs:  [][]string{nil, {"xrefmap.yml"}},
			expect: []string{"xrefmap.yml"},
		},
		{
			name:   "multiple payloads keep input order",
			xrefs:  [][]string{{"x.yml"}, {"y.yml"}},
			expect: []string{"x.yml", "y.yml"},
		},
		{
			name:   "list payloads are spliced, not nested",
			xrefs:  [][]string{{"x.yml", "y.yml"}, {"z.yml"}},
			expect: []string{"x.yml", "y.yml", "z.yml"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inputs := make([]*Manifest, len(tt.xrefs))
			for i, xrefs := range tt.xrefs {
				m := New("docs")
				if xrefs != nil {
					m.SetCrossReference(xrefs...)
				}
				inputs[i] = m
			}

			merged, err := Merge(inputs)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, merged.CrossReference())
		})
	}
}

func TestMerge_SourceBasePath(t *testing.T) {
	a := New("")
	b := New("docs")
	c := New("other")

	merged, err := Merge([]*Manifest{a, b, c})
	require.NoError(t, err)
	assert.Equal(t, "docs", merged.SourceBasePath())
}

func TestMerge_Groups(t *testing.T) {
	t.Run("concatenates groups in input order", func(t *testing.T) {
		a := New("docs")
		a.AddGroup(Group{Name: "api"})
		b := New("docs")
		b.AddGroup(Group{Name: "guide"})

		merged, err := Merge([]*Manifest{a, b})
		require.NoError(t, err)
		assert.Equal(t, []Group{{Name: "api"}, {Name: "guide"}}, merged.Groups())
	})

	t.Run("empty result is unset", func(t *testing.T) {
		merged, err := Merge([]*Manifest{New("docs"), New("docs")})
		require.NoError(t, err)
		assert.Nil(t, merged.Groups())
	})
}

func TestMerge_PreservesLogCodes(t *testing.T) {
	a := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})
	require.NoError(t, ApplyLogCodes(a, map[string][]string{"a.md": {"WRN001"}}))

	merged, err := Merge([]*Manifest{a})
	require.NoError(t, err)
	assert.Equal(t, []string{"WRN001"}, merged.Item("a.md").LogCodes())
}

func TestMerge_DoesNotAliasInputs(t *testing.T) {
	a := buildManifest(t, "docs", map[string]string{"a.md": "a.html"})

	merged, err := Merge([]*Manifest{a})
	require.NoError(t, err)

	// Rewriting a path in the merged manifest must not touch the input.
	require.NoError(t, merged.SetOutputPath("a.md", "html", "moved.html"))
	assert.NotNil(t, a.FindOutputFileInfo("a.html"))
	assert.Nil(t, a.FindOutputFileInfo("moved.html"))
}
