package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// XRefSpec is the serialized form of the cross-reference payload: absent
// when empty, a bare scalar when it has exactly one entry, an ordered list
// otherwise.
type XRefSpec []string

// MarshalJSON implements json.Marshaler.
func (x XRefSpec) MarshalJSON() ([]byte, error) {
	if len(x) == 1 {
		return json.Marshal(x[0])
	}
	return json.Marshal([]string(x))
}

// UnmarshalJSON implements json.Unmarshaler, accepting a scalar or a list.
func (x *XRefSpec) UnmarshalJSON(data []byte) error {
	var scalar string
	if err := json.Unmarshal(data, &scalar); err == nil {
		*x = XRefSpec{scalar}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*x = XRefSpec(list)
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (x XRefSpec) MarshalYAML() (any, error) {
	if len(x) == 1 {
		return x[0], nil
	}
	return []string(x), nil
}

// UnmarshalYAML implements yaml.Unmarshaler, accepting a scalar or a list.
func (x *XRefSpec) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var scalar string
		if err := node.Decode(&scalar); err != nil {
			return err
		}
		*x = XRefSpec{scalar}
		return nil
	}
	var list []string
	if err := node.Decode(&list); err != nil {
		return err
	}
	*x = XRefSpec(list)
	return nil
}

// manifestDTO is the persisted manifest schema.
type manifestDTO struct {
	SourceBasePath *string   `json:"source_base_path" yaml:"source_base_path"`
	Files          []fileDTO `json:"files" yaml:"files"`
	Groups         []Group   `json:"groups,omitempty" yaml:"groups,omitempty"`
	CrossReference XRefSpec  `json:"cross_reference,omitempty" yaml:"cross_reference,omitempty"`
}

type fileDTO struct {
	SourceRelativePath string               `json:"source_relative_path" yaml:"source_relative_path"`
	OutputFiles        map[string]outputDTO `json:"output_files" yaml:"output_files"`
	LogCodes           []string             `json:"log_codes,omitempty" yaml:"log_codes,omitempty"`
}

type outputDTO struct {
	RelativePath string `json:"relative_path" yaml:"relative_path"`
}

// toDTO snapshots the manifest into its persisted shape.
func (m *Manifest) toDTO() *manifestDTO {
	m.mu.RLock()
	defer m.mu.RUnlock()

	dto := &manifestDTO{
		Files:          make([]fileDTO, 0, len(m.items)),
		Groups:         append([]Group(nil), m.groups...),
		CrossReference: append(XRefSpec(nil), m.xrefs...),
	}
	if m.sourceBasePath != "" {
		base := m.sourceBasePath
		dto.SourceBasePath = &base
	}
	for _, it := range m.items {
		file := fileDTO{
			SourceRelativePath: it.sourceRelativePath,
			OutputFiles:        make(map[string]outputDTO, len(it.outputFiles)),
			LogCodes:           append([]string(nil), it.logCodes...),
		}
		for kind, art := range it.outputFiles {
			file.OutputFiles[kind] = outputDTO{RelativePath: art.relativePath}
		}
		dto.Files = append(dto.Files, file)
	}
	return dto
}

// fromDTO rebuilds a manifest, its items, and its index from the persisted
// shape. Duplicate source paths are accepted: a persisted manifest may
// predate duplicate resolution.
func fromDTO(dto *manifestDTO) *Manifest {
	var base string
	if dto.SourceBasePath != nil {
		base = *dto.SourceBasePath
	}
	m := New(base)

	m.mu.Lock()
	for _, file := range dto.Files {
		outputs := make(map[string]*OutputArtifact, len(file.OutputFiles))
		for kind, out := range file.OutputFiles {
			outputs[kind] = &OutputArtifact{
				relativePath:       out.RelativePath,
				sourceRelativePath: file.SourceRelativePath,
			}
		}
		m.addItemUnchecked(file.SourceRelativePath, outputs, append([]string(nil), file.LogCodes...))
	}
	m.groups = append([]Group(nil), dto.Groups...)
	m.xrefs = append([]string(nil), dto.CrossReference...)
	m.mu.Unlock()
	return m
}

// MarshalJSON implements json.Marshaler.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.toDTO())
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	var dto manifestDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return err
	}
	m.replaceFrom(fromDTO(&dto))
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m *Manifest) MarshalYAML() (any, error) {
	return m.toDTO(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *Manifest) UnmarshalYAML(node *yaml.Node) error {
	var dto manifestDTO
	if err := node.Decode(&dto); err != nil {
		return err
	}
	m.replaceFrom(fromDTO(&dto))
	return nil
}

// replaceFrom adopts the rebuilt manifest's state without copying the lock,
// re-homing every item and artifact to m.
func (m *Manifest) replaceFrom(src *Manifest) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sourceBasePath = src.sourceBasePath
	m.items = src.items
	m.itemsBySource = src.itemsBySource
	m.index = src.index
	m.xrefs = src.xrefs
	m.groups = src.groups
	for _, it := range m.items {
		it.owner = m
		for _, art := range it.outputFiles {
			art.owner = m
		}
	}
}

// Save writes the manifest to path, choosing the codec by file extension.
func (m *Manifest) Save(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m.toDTO())
	case ".json":
		data, err = json.MarshalIndent(m.toDTO(), "", "  ")
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedExt, filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads and parses a manifest file from the given path.
func Load(path string) (*Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	return LoadFromBytes(data, filepath.Ext(path))
}

// LoadFromBytes parses a manifest from raw bytes in the format implied by
// the file extension.
func LoadFromBytes(data []byte, ext string) (*Manifest, error) {
	var dto manifestDTO

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &dto); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedExt, ext)
	}

	return fromDTO(&dto), nil
}
