// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"sort"
)

// Publication source markers. Bibliography imports tag their output so a
// later merge can tell generated entries from hand-authored ones.
const (
	SourceBibliography = "bibtex"
	SourceManual       = "manual"
)

// Publication is the CV-facing output unit of the citation pipeline.
type Publication struct {
	// Type is the publication category: journal, conference, or other.
	Type Category `json:"type" yaml:"type"`

	// Citation is the fully formatted, highlighted citation string.
	Citation string `json:"citation" yaml:"citation"`

	// DOI is the bare identifier without URL prefix, if known.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// Source marks where the entry came from: "bibtex" or "manual".
	Source string `json:"source,omitempty" yaml:"source,omitempty"`
}

// Profile is one social or academic profile link in the CV basics.
type Profile struct {
	Network  string `json:"network,omitempty"`
	Username string `json:"username,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Location is the CV owner's location.
type Location struct {
	City        string `json:"city,omitempty"`
	Region      string `json:"region,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// Basics holds the CV owner's identity section.
type Basics struct {
	Name     string    `json:"name"`
	Label    string    `json:"label,omitempty"`
	Email    string    `json:"email,omitempty"`
	URL      string    `json:"url,omitempty"`
	Summary  string    `json:"summary,omitempty"`
	Location *Location `json:"location,omitempty"`
	Profiles []Profile `json:"profiles,omitempty"`
}

// Mentee is a person whose name receives distinguishing highlighting in
// citations. Style selects the marker: "asterisk", "plus", or "bold".
type Mentee struct {
	Name  string `json:"name"`
	Style string `json:"style,omitempty"`
}

// Meta holds presentation settings carried inside the CV document.
type Meta struct {
	Theme        string `json:"theme,omitempty"`
	ColorPrimary string `json:"colorPrimary,omitempty"`
	PageSize     string `json:"pageSize,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
}

// CVDocument is the full CV data model. Sections the engine does not
// interpret (work, education, skills, ...) are preserved verbatim in
// extras so a load/save round trip never drops them.
type CVDocument struct {
	Schema       string        `json:"$schema,omitempty"`
	Basics       Basics        `json:"basics"`
	Publications []Publication `json:"publications,omitempty"`
	Mentees      []Mentee      `json:"mentees,omitempty"`
	Meta         *Meta         `json:"meta,omitempty"`

	extras map[string]json.RawMessage
}

// knownCVKeys are the top-level keys the typed fields above consume.
var knownCVKeys = map[string]bool{
	"$schema":      true,
	"basics":       true,
	"publications": true,
	"mentees":      true,
	"meta":         true,
}

// UnmarshalJSON decodes the typed sections and stashes every other
// top-level key untouched.
func (d *CVDocument) UnmarshalJSON(data []byte) error {
	type alias CVDocument
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for k := range raw {
		if knownCVKeys[k] {
			delete(raw, k)
		}
	}
	if len(raw) == 0 {
		raw = nil
	}

	*d = CVDocument(a)
	d.extras = raw
	return nil
}

// MarshalJSON re-emits the typed sections plus the preserved extras.
func (d CVDocument) MarshalJSON() ([]byte, error) {
	type alias CVDocument
	data, err := json.Marshal(alias(d))
	if err != nil {
		return nil, err
	}
	if len(d.extras) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range d.extras {
		merged[k] = v
	}
	return json.Marshal(merged)
}

// ExtraSections returns the preserved top-level keys in sorted order.
func (d CVDocument) ExtraSections() []string {
	keys := make([]string, 0, len(d.extras))
	for k := range d.extras {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ExtraSection returns the raw JSON for a preserved section, or nil.
func (d CVDocument) ExtraSection(key string) json.RawMessage {
	return d.extras[key]
}
