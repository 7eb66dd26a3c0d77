package artifact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// decodeFile reads path and decodes it into v based on the file extension.
// Supports: .json, .yaml/.yml, .toml
func decodeFile(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(b))
		dec.KnownFields(true)
		return dec.Decode(v)
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(b))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	default:
		return fmt.Errorf("unsupported artifact extension: %q", ext)
	}
}

// LoadScaler decodes a scaler document.
func LoadScaler(path string) (Scaler, error) {
	var doc scalerDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	s, err := doc.build()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return s, nil
}

// LoadModel decodes a model document.
func LoadModel(path string) (Model, error) {
	var doc modelDoc
	if err := decodeFile(path, &doc); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	m, err := doc.build()
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	return m, nil
}
