package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadModule reads, parses, and validates a lesson module file.
func LoadModule(path string) (Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Module{}, fmt.Errorf("read module: %w", err)
	}
	module, err := parseModule(data, path)
	if err != nil {
		return Module{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	normalized, err := NormalizeModule(module)
	if err != nil {
		return Module{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return normalized, nil
}

// isModuleFile reports whether a path has a supported module extension.
func isModuleFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml", ".json":
		return true
	default:
		return false
	}
}

func parseModule(data []byte, path string) (Module, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".json" {
		return parseJSONModule(data)
	}
	return parseYAMLModule(data)
}

func parseJSONModule(data []byte) (Module, error) {
	var module Module
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&module); err != nil {
		return Module{}, fmt.Errorf("parse json: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Module{}, fmt.Errorf("parse json: multiple documents are not supported")
		}
		return Module{}, fmt.Errorf("parse json: %w", err)
	}
	return module, nil
}

func parseYAMLModule(data []byte) (Module, error) {
	var module Module
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&module); err != nil {
		return Module{}, fmt.Errorf("parse yaml: %w", err)
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return Module{}, fmt.Errorf("parse yaml: multiple documents are not supported")
		}
		return Module{}, fmt.Errorf("parse yaml: %w", err)
	}
	return module, nil
}
