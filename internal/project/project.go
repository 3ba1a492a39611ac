// Package project persists a board session as a JSON document: the
// serialized stroke list (carried as an opaque payload, schema owned by
// the engine) plus the background PDF path and page it annotates.
package project

import (
	"encoding/json"
	"fmt"
	"os"
)

// CurrentVersion is written into every saved document.
const CurrentVersion = 1

// Document is the on-disk project format.
type Document struct {
	Version int             `json:"version"`
	PDFPath string          `json:"pdf_path,omitempty"`
	Page    int             `json:"page,omitempty"`
	Strokes json.RawMessage `json:"strokes"`
}

// Save writes the document to path as indented JSON.
func Save(path string, doc *Document) error {
	doc.Version = CurrentVersion
	if doc.Strokes == nil {
		doc.Strokes = json.RawMessage("[]")
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return nil
}

// Load reads a document from path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse project: %w", err)
	}
	if doc.Version > CurrentVersion {
		return nil, fmt.Errorf("project version %d is newer than supported %d", doc.Version, CurrentVersion)
	}
	if doc.Strokes == nil {
		doc.Strokes = json.RawMessage("[]")
	}
	return &doc, nil
}
