package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed default_categories.yaml
var defaultCategories []byte

const kindCategories = "Categories"

type categoriesFile struct {
	Kind       string         `yaml:"kind"`
	Version    string         `yaml:"version"`
	Categories []MainCategory `yaml:"categories"`
}

// LoadYAML decodes a taxonomy document.
func LoadYAML(r io.Reader) (*Taxonomy, error) {
	var doc categoriesFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	if doc.Kind != "" && doc.Kind != kindCategories {
		return nil, fmt.Errorf("decode categories: unexpected kind %q", doc.Kind)
	}
	return NewTaxonomy(doc.Categories)
}

// LoadFile reads a taxonomy from path, falling back to the built-in one when path is empty.
func LoadFile(path string) (*Taxonomy, error) {
	if path == "" {
		return Default()
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open categories file: %w", err)
	}
	defer f.Close()

	return LoadYAML(f)
}

// Default is the built-in site taxonomy.
func Default() (*Taxonomy, error) {
	return LoadYAML(bytes.NewReader(defaultCategories))
}
