// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// Highlight styles. Unknown styles pass text through unchanged.
const (
	StyleBold     = "bold"
	StyleAsterisk = "asterisk"
	StylePlus     = "plus"
)

// NameProfile holds one person's canonical name, highlight style, and the
// patterns derived from it. Patterns are compiled once at construction so
// per-citation highlighting never recompiles.
type NameProfile struct {
	CanonicalName string
	Style         string

	variants     []string
	patterns     []*regexp.Regexp
	widePatterns []*regexp.Regexp
	middleSlots  int
}

// NewNameProfile builds a profile for one person, precompiling a
// word-boundary-anchored pattern per name variant.
func NewNameProfile(name, style string) *NameProfile {
	p := &NameProfile{
		CanonicalName: strings.Join(strings.Fields(name), " "),
		Style:         style,
		variants:      Variants(name),
		widePatterns:  WidePatterns(name),
		middleSlots:   middleSlots(name),
	}
	for _, v := range p.variants {
		p.patterns = append(p.patterns, compileVariant(v))
	}
	return p
}

// compileVariant anchors a variant on word boundaries. Variants ending in
// a period cannot take a trailing \b (a period is a non-word character),
// so the literal period itself terminates the match.
func compileVariant(v string) *regexp.Regexp {
	expr := `\b` + regexp.QuoteMeta(v)
	if !strings.HasSuffix(v, ".") {
		expr += `\b`
	}
	return regexp.MustCompile(expr)
}

// Variants returns the variant strings the profile matches on.
func (p *NameProfile) Variants() []string { return p.variants }

// BuildProfiles derives the highlight profiles from a CV document: the
// owner (bold) first, then each mentee in list order. Mentees without an
// explicit style default to asterisk.
func BuildProfiles(cv types.CVDocument) []*NameProfile {
	var profiles []*NameProfile
	if cv.Basics.Name != "" {
		profiles = append(profiles, NewNameProfile(cv.Basics.Name, StyleBold))
	}
	for _, m := range cv.Mentees {
		if m.Name == "" {
			continue
		}
		style := m.Style
		if style == "" {
			style = StyleAsterisk
		}
		profiles = append(profiles, NewNameProfile(m.Name, style))
	}
	return profiles
}

// wrap applies the profile's style marker to a matched span.
func (p *NameProfile) wrap(match string) string {
	switch p.Style {
	case StyleBold:
		return "<strong>" + match + "</strong>"
	case StyleAsterisk:
		return match + "<sup>*</sup>"
	case StylePlus:
		return match + "<sup>+</sup>"
	default:
		return match
	}
}

// initialsRe counts single-capital-letter initials inside a matched span.
var initialsRe = regexp.MustCompile(`\b[A-Z]\.`)

// Highlight wraps every whole-word, case-sensitive match of a profile's
// name variants in that profile's style marker. Profiles are applied in
// order (owner before mentees); within a profile, spans wrapped by an
// earlier variant are locked against that profile's later variants. A
// different profile may still match inside an already-wrapped span.
//
// After substitution the wide patterns run diagnostics only: when a span
// carries more initials than the canonical name has middle slots, a
// warning is written to warn (the CV's stored name may be missing a
// middle initial present in the citation). Output text is never altered
// by wide patterns.
func Highlight(text string, profiles []*NameProfile, warn io.Writer) string {
	for _, p := range profiles {
		text = p.apply(text)
	}
	if warn != nil {
		for _, p := range profiles {
			p.warnWideMatches(text, warn)
		}
	}
	return text
}

// apply substitutes this profile's patterns into text. Wrapped spans are
// swapped for placeholder tokens while the remaining patterns run, then
// restored, so one variant never re-matches inside another's output.
func (p *NameProfile) apply(text string) string {
	var locked []string
	for _, re := range p.patterns {
		text = re.ReplaceAllStringFunc(text, func(match string) string {
			locked = append(locked, p.wrap(match))
			return fmt.Sprintf("\x01%d\x01", len(locked)-1)
		})
	}
	for i := len(locked) - 1; i >= 0; i-- {
		text = strings.Replace(text, fmt.Sprintf("\x01%d\x01", i), locked[i], 1)
	}
	return text
}

// warnWideMatches reports spans that look like this person's name but
// carry more initials than the stored name accounts for.
func (p *NameProfile) warnWideMatches(text string, warn io.Writer) {
	for _, re := range p.widePatterns {
		for _, span := range re.FindAllString(text, -1) {
			embedded := len(initialsRe.FindAllString(span, -1))
			if embedded > p.middleSlots+1 {
				fmt.Fprintf(warn, "warning: citation span %q has more initials than stored name %q; a middle initial may be missing from the CV\n",
					span, p.CanonicalName)
			}
		}
	}
}
