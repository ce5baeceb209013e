package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// IsFileRef reports whether a --preset value names a file rather than a
// registry entry.
func IsFileRef(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml", ".toml":
		return true
	}
	return strings.ContainsRune(name, '/') || strings.ContainsRune(name, filepath.Separator)
}

// ParseInline decodes an inline JSON preset.
func ParseInline(payload string) (Preset, error) {
	return decodeJSON("inline", []byte(payload))
}

// LoadFile reads a preset from a .json, .yaml, .yml or .toml file. The
// document is converted to JSON and checked against the preset schema.
func LoadFile(path string) (Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Preset{}, err
	}

	var raw any
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", "":
		p, err := decodeJSON(path, data)
		if err != nil {
			return Preset{}, err
		}
		return nameFromFile(p, path), nil
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &raw)
	case ".toml":
		err = toml.Unmarshal(data, &raw)
	default:
		return Preset{}, &ValidationError{Source: path, Err: fmt.Errorf("unsupported preset format %q", ext)}
	}
	if err != nil {
		return Preset{}, &ValidationError{Source: path, Err: err}
	}

	jsonData, err := json.Marshal(normalize(raw))
	if err != nil {
		return Preset{}, &ValidationError{Source: path, Err: err}
	}
	p, err := decodeJSON(path, jsonData)
	if err != nil {
		return Preset{}, err
	}
	return nameFromFile(p, path), nil
}

// nameFromFile names an unnamed preset after its file stem.
func nameFromFile(p Preset, path string) Preset {
	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return p
}

// normalize converts decoder-specific maps into map[string]any so the
// document marshals to JSON.
func normalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = normalize(item)
		}
		return m
	case map[any]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[fmt.Sprint(k)] = normalize(item)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = normalize(item)
		}
		return s
	default:
		return val
	}
}
