package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullManifest(t *testing.T) *Manifest {
	t.Helper()
	m := New("docs")
	_, err := m.AddItem("guide/intro.md")
	require.NoError(t, err)
	_, err = m.AddOutputFile("guide/intro.md", "html", "guide/intro.html")
	require.NoError(t, err)
	_, err = m.AddItem("api/ref.md")
	require.NoError(t, err)
	_, err = m.AddOutputFile("api/ref.md", "html", "api/ref.html")
	require.NoError(t, err)
	_, err = m.AddOutputFile("api/ref.md", "raw", "api/ref.md.txt")
	require.NoError(t, err)
	require.NoError(t, ApplyLogCodes(m, map[string][]string{"api/ref.md": {"WRN001"}}))
	m.AddGroup(Group{Name: "guide"})
	m.AddGroup(Group{Name: "api", Destination: "reference"})
	m.SetCrossReference("xrefmap.yml")
	return m
}

func assertSameManifest(t *testing.T, want, got *Manifest) {
	t.Helper()
	assert.Equal(t, want.SourceBasePath(), got.SourceBasePath())
	assert.Equal(t, want.Groups(), got.Groups())
	assert.Equal(t, want.CrossReference(), got.CrossReference())
	require.Equal(t, want.Len(), got.Len())

	wantItems := want.Items()
	gotItems := got.Items()
	for i, wantItem := range wantItems {
		gotItem := gotItems[i]
		assert.Equal(t, wantItem.SourceRelativePath(), gotItem.SourceRelativePath())
		assert.Equal(t, wantItem.LogCodes(), gotItem.LogCodes())

		wantFiles := wantItem.OutputFiles()
		gotFiles := gotItem.OutputFiles()
		require.Len(t, gotFiles, len(wantFiles))
		for kind, wantArt := range wantFiles {
			gotArt, ok := gotFiles[kind]
			require.True(t, ok, "missing kind %q", kind)
			assert.Equal(t, wantArt.RelativePath(), gotArt.RelativePath())
			assert.Equal(t, wantArt.SourceRelativePath(), gotArt.SourceRelativePath())
		}
	}
}

func TestManifest_JSONRoundTrip(t *testing.T) {
	m := fullManifest(t)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var loaded Manifest
	require.NoError(t, json.Unmarshal(data, &loaded))
	assertSameManifest(t, m, &loaded)

	// The index must be rebuilt, not just the items.
	art := loaded.FindOutputFileInfo("api/ref.html")
	require.NotNil(t, art)
	assert.Equal(t, "api/ref.md", art.SourceRelativePath())
}

func TestManifest_SaveLoad(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{name: "json", file: "manifest.json"},
		{name: "yaml", file: "manifest.yaml"},
		{name: "yml", file: "manifest.yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := fullManifest(t)
			path := filepath.Join(t.TempDir(), tt.file)

			require.NoError(t, m.Save(path))
			loaded, err := Load(path)
			require.NoError(t, err)
			assertSameManifest(t, m, loaded)
		})
	}
}

func TestManifest_Save_UnsupportedExt(t *testing.T) {
	m := New("docs")
	err := m.Save(filepath.Join(t.TempDir(), "manifest.toml"))
	assert.ErrorIs(t, err, ErrUnsupportedExt)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("file not found", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
		assert.ErrorIs(t, err, ErrFileNotFound)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "manifest.toml")
		require.NoError(t, os.WriteFile(path, []byte(""), 0644))
		_, err := Load(path)
		assert.ErrorIs(t, err, ErrUnsupportedExt)
	})
}

func TestManifest_JSONSchema(t *testing.T) {
	t.Run("unset base path serializes as null", func(t *testing.T) {
		data, err := json.Marshal(New(""))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, "null", string(raw["source_base_path"]))
	})

	t.Run("groups omitted when empty", func(t *testing.T) {
		data, err := json.Marshal(New("docs"))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		_, present := raw["groups"]
		assert.False(t, present)
	})

	t.Run("cross_reference absent when unset", func(t *testing.T) {
		data, err := json.Marshal(New("docs"))
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		_, present := raw["cross_reference"]
		assert.False(t, present)
	})

	t.Run("scalar cross_reference serializes as string", func(t *testing.T) {
		m := New("docs")
		m.SetCrossReference("xrefmap.yml")

		data, err := json.Marshal(m)
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, `"xrefmap.yml"`, string(raw["cross_reference"]))
	})

	t.Run("list cross_reference serializes as array", func(t *testing.T) {
		m := New("docs")
		m.SetCrossReference("x.yml", "y.yml")

		data, err := json.Marshal(m)
		require.NoError(t, err)

		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &raw))
		assert.JSONEq(t, `["x.yml","y.yml"]`, string(raw["cross_reference"]))
	})
}

func TestXRefSpec_UnmarshalForms(t *testing.T) {
	t.Run("json scalar", func(t *testing.T) {
		var x XRefSpec
		require.NoError(t, json.Unmarshal([]byte(`"a.yml"`), &x))
		assert.Equal(t, XRefSpec{"a.yml"}, x)
	})

	t.Run("json list", func(t *testing.T) {
		var x XRefSpec
		require.NoError(t, json.Unmarshal([]byte(`["a.yml","b.yml"]`), &x))
		assert.Equal(t, XRefSpec{"a.yml", "b.yml"}, x)
	})

	t.Run("yaml scalar and list via manifest load", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "m.yaml")
		content := "source_base_path: docs\nfiles: []\ncross_reference:\n  - a.yml\n  - b.yml\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		m, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"a.yml", "b.yml"}, m.CrossReference())
	})
}

func TestLoad_DuplicateSourcesAccepted(t *testing.T) {
	// A manifest persisted before duplicate resolution may repeat an
	// identity; loading must not reject it.
	content := `{
	  "source_base_path": "docs",
	  "files": [
	    {"source_relative_path": "a.md", "output_files": {"html": {"relative_path": "a.html"}}},
	    {"source_relative_path": "a.md", "output_files": {"html": {"relative_path": "other.html"}}}
	  ]
	}`
	m, err := LoadFromBytes([]byte(content), ".json")
	require.NoError(t, err)
	assert.Equal(t, 2, m.Len())
	assert.NotNil(t, m.FindOutputFileInfo("a.html"))
	assert.NotNil(t, m.FindOutputFileInfo("other.html"))
}
