package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
)

// envBindings maps settings keys to environment variables.
var envBindings = map[string]string{
	"packageManager": defs.EnvPrefix + "_PACKAGE_MANAGER",
	"registry":       defs.EnvPrefix + "_REGISTRY",
	"useConfigFiles": defs.EnvPrefix + "_USE_CONFIG_FILES",
	"logLevel":       defs.EnvPrefix + "_LOG_LEVEL",
	"git.skip":       defs.EnvPrefix + "_GIT_SKIP",
	"git.message":    defs.EnvPrefix + "_GIT_MESSAGE",
}

var validLogLevels = []string{"debug", "info", "warn", "error"}

// Manager reads and writes the rc file. It is safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	path     string
	settings *Settings
	presets  map[string]preset.Preset
	logger   *slog.Logger
}

// DefaultPath returns the rc file path: $SEED_RC when set, otherwise
// ~/.seedrc.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv(defs.RCEnv); p != "" {
		return homedir.Expand(p)
	}
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, defs.RCFile), nil
}

// NewManager creates a Manager for the rc file at path.
func NewManager(path string, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Manager{path: path, logger: logger.With("module", "config")}
}

// Path returns the rc file path.
func (m *Manager) Path() string {
	return m.path
}

// Load reads the rc file and environment. A missing file yields defaults.
//
// Scalar settings go through viper so environment variables override the
// file. Saved presets are decoded with yaml.v3 directly because viper
// lower-cases map keys, which would corrupt preset and plugin names.
func (m *Manager) Load() (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(m.path)
	v.SetConfigType("yaml")
	defaults := NewDefaultSettings()
	v.SetDefault("logLevel", defaults.LogLevel)
	v.SetDefault("useConfigFiles", defaults.UseConfigFiles)
	v.SetDefault("git.message", defaults.Git.Message)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	raw, err := os.ReadFile(m.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		m.logger.Debug("rc file not found, using defaults", "path", m.path)
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", m.path, err)
	default:
		if err := v.ReadConfig(bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, m.path, err)
		}
	}

	s := NewDefaultSettings()
	if err := v.Unmarshal(s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := Validate(s); err != nil {
		return nil, err
	}

	presets, err := decodePresets(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, m.path, err)
	}

	m.settings = s
	m.presets = presets
	return s, nil
}

// Settings returns the loaded settings.
func (m *Manager) Settings() (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.settings == nil {
		return nil, ErrNotLoaded
	}
	cp := *m.settings
	return &cp, nil
}

// SavedPresets returns copies of the presets stored in the rc file.
func (m *Manager) SavedPresets() map[string]preset.Preset {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]preset.Preset, len(m.presets))
	for name, p := range m.presets {
		out[name] = p.Clone()
	}
	return out
}

// SavePreset stores p under name in the rc file, keeping every other key
// as it was.
func (m *Manager) SavePreset(name string, p preset.Preset) error {
	if name == "" {
		return &ValidationError{Field: "presets", Message: "preset name must not be empty"}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	doc := map[string]any{}
	raw, err := os.ReadFile(m.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("read %s: %w", m.path, err)
	}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, m.path, err)
		}
	}

	presets, _ := doc["presets"].(map[string]any)
	if presets == nil {
		presets = map[string]any{}
	}
	p = p.Clone()
	p.Name = ""
	presets[name] = p
	doc["presets"] = presets

	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode rc file: %w", err)
	}
	if err := writeAtomic(m.path, out); err != nil {
		return err
	}

	if m.presets == nil {
		m.presets = map[string]preset.Preset{}
	}
	p.Name = name
	m.presets[name] = p
	m.logger.Debug("preset saved", "name", name, "path", m.path)
	return nil
}

// Validate checks setting values.
func Validate(s *Settings) error {
	if s.PackageManager != "" {
		if _, err := pkgmgr.ParseVariant(s.PackageManager); err != nil {
			return &ValidationError{Field: "packageManager", Message: "must be one of npm, yarn, pnpm", Value: s.PackageManager}
		}
	}
	if !slices.Contains(validLogLevels, s.LogLevel) {
		return &ValidationError{Field: "logLevel", Message: "must be one of debug, info, warn, error", Value: s.LogLevel}
	}
	return nil
}

func decodePresets(raw []byte) (map[string]preset.Preset, error) {
	var doc struct {
		Presets map[string]preset.Preset `yaml:"presets"`
	}
	if len(raw) > 0 {
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}
	out := make(map[string]preset.Preset, len(doc.Presets))
	for name, p := range doc.Presets {
		p.Name = name
		if err := p.Validate(); err != nil {
			return nil, err
		}
		out[name] = p
	}
	return out, nil
}

// writeAtomic writes through a temporary file and rename.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, defs.DirPerm); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".seedrc-*.tmp")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
