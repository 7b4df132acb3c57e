package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Decode parses a JSON or YAML scenario document and normalizes it. Only
// syntactically invalid input is an error; any well-formed tree normalizes.
func Decode(data []byte) (Document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Default(), nil
	}

	var raw interface{}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.UseNumber()
		if err := decoder.Decode(&raw); err != nil {
			return Document{}, fmt.Errorf("error reading scenario JSON, %w", err)
		}
	} else if err := yaml.Unmarshal(trimmed, &raw); err != nil {
		return Document{}, fmt.Errorf("error reading scenario YAML, %w", err)
	}
	return Normalize(raw), nil
}

// DecodeReader reads r fully and decodes it.
func DecodeReader(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read scenario: %w", err)
	}
	return Decode(data)
}

// LoadFile reads and decodes the scenario document at path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}
	return Decode(data)
}

// EncodeJSON returns the canonical JSON form of the document.
func EncodeJSON(doc Document) ([]byte, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenario: %w", err)
	}
	return data, nil
}

// EncodeYAML returns the YAML form of the document.
func EncodeYAML(doc Document) ([]byte, error) {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode scenario: %w", err)
	}
	return data, nil
}
