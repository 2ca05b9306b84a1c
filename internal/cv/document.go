// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cv loads, validates, merges, and saves CV documents.
package cv

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Parse decodes CV JSON. Unknown top-level sections survive a
// parse/encode round trip untouched.
func Parse(data []byte) (types.CVDocument, error) {
	var doc types.CVDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return types.CVDocument{}, fmt.Errorf("parsing CV JSON: %w", err)
	}
	return doc, nil
}

// Load reads and decodes a CV JSON file.
func Load(path string) (types.CVDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.CVDocument{}, fmt.Errorf("reading CV file: %w", err)
	}
	return Parse(data)
}

// Encode renders a document as indented JSON with a trailing newline.
func Encode(doc types.CVDocument) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding CV JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes a document to path as indented JSON.
func Save(doc types.CVDocument, path string) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing CV file: %w", err)
	}
	return nil
}

// Touch updates meta.lastModified to now in RFC 3339 form, creating the
// meta section if absent. now is injectable for tests; nil uses the wall
// clock.
func Touch(doc *types.CVDocument, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	if doc.Meta == nil {
		doc.Meta = &types.Meta{}
	}
	doc.Meta.LastModified = now().Format(time.RFC3339)
}

// Title derives the export filename stem from the owner's name.
func Title(doc types.CVDocument) string {
	name := strings.TrimSpace(doc.Basics.Name)
	if name == "" {
		return "cv"
	}
	return name + " CV"
}
