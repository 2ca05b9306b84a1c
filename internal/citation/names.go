// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package citation formats bibliographic entries into citation strings and
// highlights the CV owner's and mentees' names within them.
package citation

import (
	"fmt"
	"regexp"
	"strings"
)

// nameParts splits a "First [Middle...] Last" name into its components.
// Trailing periods on parts are dropped so "Jane A. Doe" and "Jane A Doe"
// produce the same variants.
type nameParts struct {
	first   string
	middles []string
	last    string
}

func splitName(fullName string) nameParts {
	fields := strings.Fields(fullName)
	for i, f := range fields {
		fields[i] = strings.TrimSuffix(f, ".")
	}
	switch len(fields) {
	case 0:
		return nameParts{}
	case 1:
		return nameParts{first: fields[0]}
	default:
		return nameParts{
			first:   fields[0],
			middles: fields[1 : len(fields)-1],
			last:    fields[len(fields)-1],
		}
	}
}

// Variants produces the set of string patterns that could plausibly
// represent fullName in a formatted citation, in deterministic order:
// the original, "Last, First", abbreviated-initial forms with and without
// periods, first+last with middles dropped, and middle-initial
// combinations in both orders. Single-part names collapse to the name
// itself.
func Variants(fullName string) []string {
	fullName = strings.Join(strings.Fields(fullName), " ")
	p := splitName(fullName)
	if p.first == "" {
		return nil
	}
	if p.last == "" {
		return []string{p.first}
	}

	initials := make([]string, 0, 1+len(p.middles))
	initials = append(initials, initial(p.first))
	for _, m := range p.middles {
		initials = append(initials, initial(m))
	}

	dotted := make([]string, len(initials))
	bare := make([]string, len(initials))
	for i, in := range initials {
		dotted[i] = in + "."
		bare[i] = in
	}

	var variants []string
	add := func(v string) {
		for _, existing := range variants {
			if existing == v {
				return
			}
		}
		variants = append(variants, v)
	}

	add(fullName)
	add(p.last + ", " + p.first)
	add(strings.Join(dotted, " ") + " " + p.last)
	add(p.last + ", " + strings.Join(dotted, " "))
	add(strings.Join(bare, " ") + " " + p.last)
	add(p.first + " " + p.last)

	if len(p.middles) > 0 {
		middleInitials := make([]string, len(p.middles))
		for i, m := range p.middles {
			middleInitials[i] = initial(m) + "."
		}
		mid := strings.Join(middleInitials, " ")
		add(p.first + " " + mid + " " + p.last)
		add(p.last + ", " + p.first + " " + mid)
	}

	return variants
}

// WidePatterns returns two wildcard patterns matching the last name
// preceded by one or two single-capital-letter initials. They catch
// over-abbreviated forms the enumerated variants miss and are used only
// for a post-hoc mismatch warning, never for positive highlighting;
// matching them for highlighting would wrap unrelated same-surname
// authors.
func WidePatterns(fullName string) []*regexp.Regexp {
	p := splitName(fullName)
	if p.first == "" || p.last == "" {
		return nil
	}
	last := regexp.QuoteMeta(p.last)
	return []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`\b[A-Z]\.\s?%s\b`, last)),
		regexp.MustCompile(fmt.Sprintf(`\b[A-Z]\.\s?[A-Z]\.\s?%s\b`, last)),
	}
}

// middleSlots returns the number of middle-name parts in fullName.
func middleSlots(fullName string) int {
	return len(splitName(fullName).middles)
}

func initial(name string) string {
	if name == "" {
		return ""
	}
	return string([]rune(name)[0])
}
