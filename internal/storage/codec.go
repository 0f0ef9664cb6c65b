package storage

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// JSONCodec encodes records as indented JSON
type JSONCodec struct{}

// Encode writes rec as JSON
func (JSONCodec) Encode(w io.Writer, rec *Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	return nil
}

// Decode reads a JSON record
func (JSONCodec) Decode(r io.Reader) (*Record, error) {
	var rec Record
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}
	return &rec, nil
}

// YAMLCodec encodes records as YAML
type YAMLCodec struct{}

// Encode writes rec as YAML
func (YAMLCodec) Encode(w io.Writer, rec *Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return fmt.Errorf("marshal tree: %w", err)
	}
	return enc.Close()
}

// Decode reads a YAML record
func (YAMLCodec) Decode(r io.Reader) (*Record, error) {
	var rec Record
	if err := yaml.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("parse tree: %w", err)
	}
	return &rec, nil
}
