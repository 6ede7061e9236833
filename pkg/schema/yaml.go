package schema

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// document is the YAML shape of a schema file.
type document struct {
	Name   string  `yaml:"name"`
	Fields []Field `yaml:"fields"`
}

// ParseYAML builds a schema from a YAML document:
//
//	name: payment
//	fields:
//	  - path: method
//	    label: Payment method
//	    required: true
func ParseYAML(data []byte) (*Schema, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}
	if doc.Name == "" {
		return nil, fmt.Errorf("schema document missing name")
	}
	return New(doc.Name, doc.Fields...)
}

// ReadYAML parses a schema from a reader.
func ReadYAML(r io.Reader) (*Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema document: %w", err)
	}
	return ParseYAML(data)
}
