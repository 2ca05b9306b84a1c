// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bibliography

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// CSLItem represents a bibliographic entry in CSL (Citation Style Language)
// format. The field names and structure follow the CSL-JSON/CSL-YAML schema
// so that output is consumable by Pandoc and reference managers.
type CSLItem struct {
	ID             string    `yaml:"id"`
	Type           string    `yaml:"type"`
	Title          string    `yaml:"title"`
	Author         []CSLName `yaml:"author,omitempty"`
	ContainerTitle string    `yaml:"container-title,omitempty"`
	Volume         string    `yaml:"volume,omitempty"`
	Issue          string    `yaml:"issue,omitempty"`
	Page           string    `yaml:"page,omitempty"`
	Abstract       string    `yaml:"abstract,omitempty"`
	Issued         *CSLDate  `yaml:"issued,omitempty"`
	DOI            string    `yaml:"DOI,omitempty"`
	URL            string    `yaml:"URL,omitempty"`
}

// CSLName represents a person's name in CSL format.
type CSLName struct {
	Family  string `yaml:"family,omitempty"`
	Given   string `yaml:"given,omitempty"`
	Literal string `yaml:"literal,omitempty"`
}

// CSLDate represents a date in CSL format using date-parts.
type CSLDate struct {
	DateParts [][]int `yaml:"date-parts"`
}

// FormatCSL writes parsed entries as a CSL-YAML list to w.
func FormatCSL(entries []types.RawEntry, w io.Writer) error {
	items := make([]CSLItem, len(entries))
	for i, e := range entries {
		items[i] = toCSLItem(e)
	}
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(items)
}

// toCSLItem converts a RawEntry to a CSLItem.
func toCSLItem(e types.RawEntry) CSLItem {
	cslType := "article-journal"
	switch e.Category() {
	case types.CategoryConference:
		cslType = "paper-conference"
	case types.CategoryOther:
		cslType = "document"
	}

	item := CSLItem{
		ID:             e.Key,
		Type:           cslType,
		Title:          e.Title,
		ContainerTitle: e.ContainerTitle,
		Volume:         e.Volume,
		Issue:          e.Issue,
		Page:           e.Pages,
		Abstract:       e.Abstract,
		DOI:            e.DOI,
		URL:            e.URL,
	}

	for _, a := range e.Authors {
		if a.Given == "" && a.Family != "" {
			item.Author = append(item.Author, CSLName{Literal: a.Family})
			continue
		}
		item.Author = append(item.Author, CSLName{Family: a.Family, Given: a.Given})
	}

	if year, err := strconv.Atoi(e.Year); err == nil {
		item.Issued = &CSLDate{DateParts: [][]int{{year}}}
	}

	return item
}

// GenerateBibTeX regenerates BibTeX source from parsed entries, for export
// when the original source text is not cached.
func GenerateBibTeX(entries []types.RawEntry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		writeBibTeXEntry(&b, e)
	}
	return b.String()
}

func writeBibTeXEntry(b *strings.Builder, e types.RawEntry) {
	entryType := "misc"
	venueField := "howpublished"
	switch e.Category() {
	case types.CategoryJournal:
		entryType = "article"
		venueField = "journal"
	case types.CategoryConference:
		entryType = "inproceedings"
		venueField = "booktitle"
	}

	key := e.Key
	if key == "" {
		key = "unknown"
	}
	fmt.Fprintf(b, "@%s{%s,\n", entryType, key)
	if len(e.Authors) > 0 {
		names := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			if a.Given != "" {
				names = append(names, fmt.Sprintf("%s, %s", a.Family, a.Given))
			} else {
				names = append(names, a.Family)
			}
		}
		fmt.Fprintf(b, "  author = {%s},\n", strings.Join(names, " and "))
	}
	fmt.Fprintf(b, "  title = {%s},\n", escapeLatex(e.Title))
	if e.ContainerTitle != "" {
		fmt.Fprintf(b, "  %s = {%s},\n", venueField, escapeLatex(e.ContainerTitle))
	}
	if e.Volume != "" {
		fmt.Fprintf(b, "  volume = {%s},\n", e.Volume)
	}
	if e.Issue != "" {
		fmt.Fprintf(b, "  number = {%s},\n", e.Issue)
	}
	if e.Pages != "" {
		fmt.Fprintf(b, "  pages = {%s},\n", strings.ReplaceAll(e.Pages, "-", "--"))
	}
	if e.Year != types.YearUnknown {
		fmt.Fprintf(b, "  year = {%s},\n", e.Year)
	}
	if e.DOI != "" {
		fmt.Fprintf(b, "  doi = {%s},\n", e.DOI)
	}
	if e.URL != "" {
		fmt.Fprintf(b, "  url = {%s},\n", e.URL)
	}
	b.WriteString("}\n")
}

// escapeLatex escapes special LaTeX characters in field values.
func escapeLatex(s string) string {
	replacer := strings.NewReplacer(
		"&", `\&`,
		"%", `\%`,
		"$", `\$`,
		"#", `\#`,
		"_", `\_`,
	)
	return replacer.Replace(s)
}
