// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/cv-engine/pkg/types"
)

const sampleCVJSON = `{
  "basics": {"name": "Jane Doe", "email": "jane@example.edu"},
  "publications": [
    {"type": "journal", "citation": "J. Doe, \"A Study,\" 2020.", "source": "bibtex"}
  ],
  "mentees": [{"name": "Alex Student", "style": "asterisk"}],
  "education": [{"institution": "Example University", "studyType": "Ph.D."}],
  "meta": {"theme": "reorx", "pageSize": "A4"}
}`

func TestParseAndEncodeRoundTripKeepsUnknownSections(t *testing.T) {
	doc, err := Parse([]byte(sampleCVJSON))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Basics.Name != "Jane Doe" {
		t.Errorf("Name = %q", doc.Basics.Name)
	}
	if len(doc.Publications) != 1 || doc.Publications[0].Type != types.CategoryJournal {
		t.Errorf("Publications = %+v", doc.Publications)
	}

	sections := doc.ExtraSections()
	if len(sections) != 1 || sections[0] != "education" {
		t.Fatalf("ExtraSections = %v, want [education]", sections)
	}

	out, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !strings.Contains(string(out), "Example University") {
		t.Errorf("education section dropped on encode:\n%s", out)
	}

	// A second round trip must be lossless too.
	doc2, err := Parse(out)
	if err != nil {
		t.Fatalf("re-Parse: %v", err)
	}
	var edu []map[string]string
	if err := json.Unmarshal(doc2.ExtraSection("education"), &edu); err != nil {
		t.Fatalf("education section corrupted: %v", err)
	}
	if edu[0]["institution"] != "Example University" {
		t.Errorf("education content = %v", edu)
	}
}

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("{not json")); err == nil {
		t.Fatal("expected error for invalid JSON")
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.json")
	doc := types.CVDocument{Basics: types.Basics{Name: "Jane Doe"}}

	if err := Save(doc, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Basics.Name != "Jane Doe" {
		t.Errorf("Name = %q", loaded.Basics.Name)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestTouch(t *testing.T) {
	doc := types.CVDocument{}
	stamp := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	Touch(&doc, func() time.Time { return stamp })

	if doc.Meta == nil {
		t.Fatal("Touch should create the meta section")
	}
	if doc.Meta.LastModified != "2026-08-29T12:00:00Z" {
		t.Errorf("LastModified = %q", doc.Meta.LastModified)
	}
}

func TestTouchPreservesExistingMeta(t *testing.T) {
	doc := types.CVDocument{Meta: &types.Meta{Theme: "cuiv"}}
	Touch(&doc, func() time.Time { return time.Unix(0, 0).UTC() })
	if doc.Meta.Theme != "cuiv" {
		t.Errorf("Theme = %q, want cuiv", doc.Meta.Theme)
	}
	if doc.Meta.LastModified == "" {
		t.Error("LastModified not set")
	}
}

func TestTitle(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Jane Doe", "Jane Doe CV"},
		{"  Jane Doe  ", "Jane Doe CV"},
		{"", "cv"},
		{"   ", "cv"},
	}
	for _, tt := range tests {
		doc := types.CVDocument{Basics: types.Basics{Name: tt.name}}
		if got := Title(doc); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}
