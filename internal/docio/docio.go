// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docio loads parsed-document files into the analysis input
// model. The external converter emits a document as JSON or YAML with
// pages, optional named sections, and metadata.
package docio

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-analyzer/pkg/types"
)

// Load reads a document file. The format is chosen by extension: .json
// for JSON, .yaml or .yml for YAML.
func Load(path string) (*types.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading document %s: %w", path, err)
	}

	var doc types.Document
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing document %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("parsing document %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported document format %q (want .json, .yaml, or .yml)", ext)
	}

	normalize(&doc)
	return &doc, nil
}

// normalize orders pages by index and fills defaulted metadata so the
// rest of the pipeline can rely on page order.
func normalize(doc *types.Document) {
	sort.SliceStable(doc.Pages, func(i, j int) bool {
		return doc.Pages[i].Index < doc.Pages[j].Index
	})
	if doc.Meta.Title == "" {
		doc.Meta.Title = "Unknown"
	}
}
