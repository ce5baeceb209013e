package preset

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Metadata is written to the root of every created project and serves
// as a fallback registry for later named-preset lookups.
type Metadata struct {
	Preset  Preset    `json:"preset"`
	Name    string    `json:"name"`
	Created time.Time `json:"created"`
}

// EncodeMetadata renders m as indented JSON with a trailing newline.
// Created is written in UTC as RFC 3339.
func EncodeMetadata(m Metadata) ([]byte, error) {
	m.Created = m.Created.UTC()
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return append(data, '\n'), nil
}

// ReadMetadata loads a metadata file.
func ReadMetadata(path string) (Metadata, error) {
	var m Metadata
	data, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return m, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}
