// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Category is the top-level publication grouping used by the CV.
type Category string

const (
	CategoryJournal    Category = "journal"
	CategoryConference Category = "conference"
	CategoryOther      Category = "other"
)

// YearUnknown is the year value assigned to entries without a usable date.
// It sorts after every numeric year.
const YearUnknown = "unknown"

// Author is one name from a bibliographic entry's author list.
type Author struct {
	// Given is the first (and middle) name portion, e.g. "Jane A.".
	Given string `json:"given,omitempty" yaml:"given,omitempty"`

	// Family is the surname, e.g. "Doe".
	Family string `json:"family,omitempty" yaml:"family,omitempty"`
}

// FullName returns "Given Family", degrading to whichever part is present.
func (a Author) FullName() string {
	switch {
	case a.Given == "":
		return a.Family
	case a.Family == "":
		return a.Given
	default:
		return a.Given + " " + a.Family
	}
}

// RawEntry is one bibliographic record as parsed from BibTeX source.
// It is immutable once parsed; downstream stages only read it.
type RawEntry struct {
	// Key is the BibTeX citation key (e.g. "doe2023attention").
	Key string `json:"key" yaml:"key"`

	// Type is the normalized entry type: "article", "paper-conference",
	// or the original BibTeX type for anything unmapped.
	Type string `json:"type" yaml:"type"`

	// Title is the entry title with LaTeX braces unwrapped.
	Title string `json:"title" yaml:"title"`

	// Authors lists the authors in source order.
	Authors []Author `json:"authors,omitempty" yaml:"authors,omitempty"`

	// ContainerTitle is the journal or proceedings name.
	ContainerTitle string `json:"container_title,omitempty" yaml:"container_title,omitempty"`

	// Year is the publication year as a string, or "unknown".
	Year string `json:"year" yaml:"year"`

	// Volume, Issue and Pages are optional locator fields.
	Volume string `json:"volume,omitempty" yaml:"volume,omitempty"`
	Issue  string `json:"issue,omitempty" yaml:"issue,omitempty"`
	Pages  string `json:"pages,omitempty" yaml:"pages,omitempty"`

	// DOI is the bare identifier without any URL prefix.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is a non-DOI link, if the entry carried one.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Abstract is the entry abstract, if present.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`
}

// Category maps the normalized entry type to its CV category.
func (e RawEntry) Category() Category {
	switch e.Type {
	case "article":
		return CategoryJournal
	case "paper-conference":
		return CategoryConference
	default:
		return CategoryOther
	}
}
