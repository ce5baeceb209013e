package project

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/Masterminds/semver/v3"

	"github.com/modu-ai/seedkit/internal/preset"
)

// InitialVersion is the version written into a new manifest.
const InitialVersion = "0.1.0"

// Manifest is the package.json of a generated project. Fields not modeled
// here are carried in Extra and written back unchanged.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Private         bool              `json:"private"`
	Scripts         map[string]string `json:"scripts,omitempty"`
	DevDependencies map[string]string `json:"devDependencies,omitempty"`
	Extra           map[string]any    `json:"-"`
}

// NewManifest builds the initial manifest for name from the preset's
// plugins. Each plugin becomes a dev dependency at its "version" option,
// or "latest" when none is given.
func NewManifest(name string, p preset.Preset) (*Manifest, error) {
	m := &Manifest{
		Name:            NormalizeName(name),
		Version:         InitialVersion,
		Private:         true,
		Scripts:         map[string]string{},
		DevDependencies: map[string]string{},
	}
	var issues []string
	for _, id := range p.PluginIDs() {
		version, err := PluginVersion(p.Plugins[id])
		if err != nil {
			issues = append(issues, fmt.Sprintf("plugin %s: %v", id, err))
			continue
		}
		m.DevDependencies[id] = version
	}
	if len(issues) > 0 {
		return nil, &preset.ValidationError{Source: fmt.Sprintf("preset %q", p.Name), Issues: issues}
	}
	return m, nil
}

// PluginVersion returns the semver range from plugin options.
func PluginVersion(opts preset.PluginOptions) (string, error) {
	raw, ok := opts["version"]
	if !ok {
		return "latest", nil
	}
	version, ok := raw.(string)
	if !ok || version == "" {
		return "", fmt.Errorf("version must be a non-empty string, got %v", raw)
	}
	if version == "latest" {
		return version, nil
	}
	if _, err := semver.NewConstraint(version); err != nil {
		return "", fmt.Errorf("version %q: %w", version, err)
	}
	return version, nil
}

// MarshalJSON merges Extra with the modeled fields. Modeled fields win on
// key collisions and keys are written in sorted order.
func (m *Manifest) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(m.Extra)+5)
	maps.Copy(out, m.Extra)
	out["name"] = m.Name
	out["version"] = m.Version
	out["private"] = m.Private
	if len(m.Scripts) > 0 {
		out["scripts"] = m.Scripts
	}
	if len(m.DevDependencies) > 0 {
		out["devDependencies"] = m.DevDependencies
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads the modeled fields and keeps the rest in Extra.
func (m *Manifest) UnmarshalJSON(data []byte) error {
	type plain Manifest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	var extra map[string]any
	if err := json.Unmarshal(data, &extra); err != nil {
		return err
	}
	for _, k := range []string{"name", "version", "private", "scripts", "devDependencies"} {
		delete(extra, k)
	}
	*m = Manifest(p)
	m.Extra = extra
	return nil
}

// Set stores an extra top-level field, such as "eslintConfig".
func (m *Manifest) Set(key string, value any) {
	if m.Extra == nil {
		m.Extra = map[string]any{}
	}
	m.Extra[key] = value
}

// Encode renders the manifest as indented JSON with a trailing newline.
func (m *Manifest) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode package.json: %w", err)
	}
	return append(data, '\n'), nil
}

// DecodeManifest parses package.json content.
func DecodeManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse package.json: %w", err)
	}
	return &m, nil
}
