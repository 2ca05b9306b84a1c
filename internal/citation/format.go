// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Post-processing patterns applied to every formatted citation.
var (
	// doiURLRe removes embedded DOI URLs; the DOI lives in its own field.
	doiURLRe = regexp.MustCompile(`\s*\bhttps?://(?:dx\.)?doi\.org/\S+\s*`)

	// doiTextRe removes a ", doi: 10.x/..." clause mid-citation.
	doiTextRe = regexp.MustCompile(`,\s*doi:\s*10\.\d+/\S+\s*\.`)

	// citeNumRe strips a leading "[1] " citation number; numbering is a
	// renderer concern.
	citeNumRe = regexp.MustCompile(`^\[\d+\]\s*`)

	spaceBeforePeriodRe = regexp.MustCompile(`\s+\.`)
	doublePeriodRe      = regexp.MustCompile(`\.\s*\.\s*$`)

	// trailingQuoteCommaRe fixes a citation that ends on the quoted
	// title: the comma inside the quote gives way to the final period.
	trailingQuoteCommaRe = regexp.MustCompile(`,"\.$`)
)

// Formatter renders RawEntries into single-line citation strings in a
// fixed bibliographic style.
type Formatter struct {
	style Style
	warn  io.Writer
}

// NewFormatter creates a formatter for the given style. Diagnostic detail
// for recovered per-entry failures is written to warn; pass io.Discard to
// silence it.
func NewFormatter(style Style, warn io.Writer) *Formatter {
	if warn == nil {
		warn = io.Discard
	}
	return &Formatter{style: style, warn: warn}
}

// Format renders one entry as a single-line citation ending in exactly one
// period, with no citation-number bracket and no raw DOI text. A failure
// for a single entry never propagates: it degrades to a placeholder
// embedding the entry title and logs the cause.
func (f *Formatter) Format(e types.RawEntry) string {
	s, err := f.format(e)
	if err != nil {
		title := e.Title
		if title == "" {
			title = "Unknown title"
		}
		fmt.Fprintf(f.warn, "warning: formatting citation %q: %v\n", e.Key, err)
		return fmt.Sprintf("[Error formatting citation: %s]", title)
	}
	return s
}

func (f *Formatter) format(e types.RawEntry) (string, error) {
	if e.Title == "" && len(e.Authors) == 0 {
		return "", fmt.Errorf("entry has neither title nor authors")
	}

	parts := make([]string, 0, 7)
	if authors := f.formatAuthors(e.Authors); authors != "" {
		parts = append(parts, authors)
	}
	if e.Title != "" {
		parts = append(parts, `"`+e.Title+`,"`)
	}
	if e.ContainerTitle != "" {
		parts = append(parts, e.ContainerTitle)
	}
	if e.Volume != "" {
		parts = append(parts, "vol. "+e.Volume)
	}
	if e.Issue != "" {
		parts = append(parts, "no. "+e.Issue)
	}
	if e.Pages != "" {
		parts = append(parts, "pp. "+e.Pages)
	}
	if e.Year != "" && e.Year != types.YearUnknown {
		parts = append(parts, e.Year)
	}

	// The quoted title already ends in `,"`; joining with ", " after it
	// would double the comma.
	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			if strings.HasSuffix(parts[i-1], `,"`) {
				b.WriteString(" ")
			} else {
				b.WriteString(", ")
			}
		}
		b.WriteString(part)
	}
	b.WriteString(".")

	return Cleanup(b.String()), nil
}

// formatAuthors renders the author list as abbreviated initials plus
// family name ("J. A. Doe"), truncating per the style's et-al settings.
func (f *Formatter) formatAuthors(authors []types.Author) string {
	if len(authors) == 0 {
		return ""
	}

	names := make([]string, len(authors))
	for i, a := range authors {
		names[i] = abbreviateAuthor(a)
	}

	etAlMin, useFirst := f.style.EtAlMin, f.style.EtAlUseFirst
	if etAlMin <= 0 {
		etAlMin = BuiltinStyle.EtAlMin
	}
	if useFirst <= 0 {
		useFirst = BuiltinStyle.EtAlUseFirst
	}

	if len(names) >= etAlMin {
		// Remote styles may declare et-al-use-first above et-al-min.
		if useFirst > len(names) {
			useFirst = len(names)
		}
		return strings.Join(names[:useFirst], ", ") + " et al."
	}
	return strings.Join(names, ", ")
}

// abbreviateAuthor reduces a given name to dotted initials: {Jane A, Doe}
// becomes "J. A. Doe". Authors with only a family name pass through.
func abbreviateAuthor(a types.Author) string {
	if a.Given == "" {
		return a.Family
	}
	parts := strings.Fields(a.Given)
	initials := make([]string, len(parts))
	for i, p := range parts {
		initials[i] = string([]rune(strings.TrimSuffix(p, "."))[0]) + "."
	}
	if a.Family == "" {
		return strings.Join(initials, " ")
	}
	return strings.Join(initials, " ") + " " + a.Family
}

// Cleanup fixes the punctuation artifacts a formatted citation can carry:
// leading citation numbers, embedded DOI text, duplicated whitespace,
// space-before-period, and doubled trailing periods.
func Cleanup(s string) string {
	s = citeNumRe.ReplaceAllString(s, "")
	s = doiURLRe.ReplaceAllString(s, " ")
	s = doiTextRe.ReplaceAllString(s, ".")
	s = strings.Join(strings.Fields(s), " ")
	s = spaceBeforePeriodRe.ReplaceAllString(s, ".")
	s = doublePeriodRe.ReplaceAllString(s, ".")
	s = trailingQuoteCommaRe.ReplaceAllString(s, `."`)
	s = strings.TrimSpace(s)
	if s != "" && !strings.HasSuffix(s, ".") && !strings.HasSuffix(s, `."`) {
		s += "."
	}
	return s
}
