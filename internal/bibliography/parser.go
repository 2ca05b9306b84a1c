// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibliography parses BibTeX source text into normalized entries
// and groups them for CV output.
package bibliography

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// ParseError reports that bibliography source text could not be parsed.
// It is fatal to the import that triggered it; callers must surface it.
type ParseError struct {
	Detail string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parsing bibliography: %s: %v", e.Detail, e.Err)
	}
	return fmt.Sprintf("parsing bibliography: %s", e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Err }

// frontMatterRe strips a leading ----delimited front-matter block, which
// some exporters prepend to .bib files.
var frontMatterRe = regexp.MustCompile(`(?s)\A---\n.*?\n---\n`)

// typeMap normalizes BibTeX and CSL entry types to the two categories the
// CV distinguishes. Unmapped types pass through and bucket as "other".
var typeMap = map[string]string{
	"article":         "article",
	"article-journal": "article",
	"inproceedings":   "paper-conference",
	"paper-conference": "paper-conference",
}

// Parse converts raw BibTeX source text into an ordered sequence of
// RawEntry. Record order is preserved. Malformed source (unterminated
// records, no extractable entries) fails with a *ParseError.
func Parse(src string) ([]types.RawEntry, error) {
	src = frontMatterRe.ReplaceAllString(src, "")
	if strings.TrimSpace(src) == "" {
		return nil, &ParseError{Detail: "source is empty"}
	}

	p := &parser{src: src, strings: map[string]string{}}
	var entries []types.RawEntry

	for {
		rec, ok, err := p.nextRecord()
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		if rec == nil {
			continue // @comment, @preamble, @string
		}
		entries = append(entries, rec.toEntry())
	}

	if len(entries) == 0 {
		return nil, &ParseError{Detail: "no bibliographic entries found"}
	}
	return entries, nil
}

// record is one @type{key, ...} block before normalization.
type record struct {
	entryType string
	key       string
	fields    map[string]string
}

type parser struct {
	src     string
	pos     int
	strings map[string]string // @string abbreviations
}

// nextRecord scans forward to the next '@' and parses one record.
// It returns (nil, true, nil) for directives that produce no entry.
func (p *parser) nextRecord() (*record, bool, error) {
	for p.pos < len(p.src) && p.src[p.pos] != '@' {
		p.pos++
	}
	if p.pos >= len(p.src) {
		return nil, false, nil
	}
	start := p.pos
	p.pos++ // consume '@'

	entryType := strings.ToLower(p.readIdent())
	if entryType == "" {
		return nil, false, &ParseError{Detail: fmt.Sprintf("missing entry type at offset %d", start)}
	}

	p.skipSpace()
	if p.pos >= len(p.src) || (p.src[p.pos] != '{' && p.src[p.pos] != '(') {
		return nil, false, &ParseError{Detail: fmt.Sprintf("expected '{' after @%s", entryType)}
	}
	open := p.src[p.pos]
	closer := byte('}')
	if open == '(' {
		closer = ')'
	}
	p.pos++

	switch entryType {
	case "comment", "preamble":
		if err := p.skipBalanced(open, closer, entryType); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	case "string":
		if err := p.readStringDef(closer); err != nil {
			return nil, false, err
		}
		return nil, true, nil
	}

	p.skipSpace()
	key := p.readUntil(',', closer)
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == ',' {
		p.pos++
	}

	fields := make(map[string]string)
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return nil, false, &ParseError{Detail: fmt.Sprintf("unterminated entry %q", key)}
		}
		if p.src[p.pos] == closer {
			p.pos++
			break
		}
		name := strings.ToLower(p.readIdent())
		if name == "" {
			return nil, false, &ParseError{Detail: fmt.Sprintf("malformed field in entry %q", key)}
		}
		p.skipSpace()
		if p.pos >= len(p.src) || p.src[p.pos] != '=' {
			return nil, false, &ParseError{Detail: fmt.Sprintf("expected '=' after field %q in entry %q", name, key)}
		}
		p.pos++

		value, err := p.readValue(key)
		if err != nil {
			return nil, false, err
		}
		fields[name] = value

		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == ',' {
			p.pos++
		}
	}

	return &record{entryType: entryType, key: strings.TrimSpace(key), fields: fields}, true, nil
}

// readValue reads one field value: a braced group, a quoted string, or a
// bare token. Concatenations with '#' are joined; bare tokens resolve
// against @string abbreviations.
func (p *parser) readValue(entryKey string) (string, error) {
	var parts []string
	for {
		p.skipSpace()
		if p.pos >= len(p.src) {
			return "", &ParseError{Detail: fmt.Sprintf("unterminated value in entry %q", entryKey)}
		}
		switch p.src[p.pos] {
		case '{':
			v, err := p.readBraced(entryKey)
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		case '"':
			v, err := p.readQuoted(entryKey)
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		default:
			tok := p.readBareToken()
			if tok == "" {
				return "", &ParseError{Detail: fmt.Sprintf("empty value in entry %q", entryKey)}
			}
			if sub, ok := p.strings[strings.ToLower(tok)]; ok {
				tok = sub
			}
			parts = append(parts, tok)
		}

		p.skipSpace()
		if p.pos < len(p.src) && p.src[p.pos] == '#' {
			p.pos++
			continue
		}
		return strings.Join(parts, ""), nil
	}
}

// readBraced consumes a {...} group tracking nesting depth and returns the
// inner text.
func (p *parser) readBraced(entryKey string) (string, error) {
	p.pos++ // consume '{'
	depth := 1
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := p.src[start:p.pos]
				p.pos++
				return v, nil
			}
		case '\\':
			p.pos++ // skip escaped character
		}
		p.pos++
	}
	return "", &ParseError{Detail: fmt.Sprintf("unterminated braced value in entry %q", entryKey)}
}

func (p *parser) readQuoted(entryKey string) (string, error) {
	p.pos++ // consume '"'
	start := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '"':
			v := p.src[start:p.pos]
			p.pos++
			return v, nil
		case '\\':
			p.pos++
		}
		p.pos++
	}
	return "", &ParseError{Detail: fmt.Sprintf("unterminated quoted value in entry %q", entryKey)}
}

func (p *parser) readBareToken() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == ',' || c == '}' || c == ')' || c == '#' || unicode.IsSpace(rune(c)) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) readIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '-' || c == '_') {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *parser) readUntil(stops ...byte) string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		for _, s := range stops {
			if c == s {
				return strings.TrimSpace(p.src[start:p.pos])
			}
		}
		p.pos++
	}
	return strings.TrimSpace(p.src[start:])
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

// skipBalanced consumes the body of a directive block without parsing it.
func (p *parser) skipBalanced(open, closer byte, what string) error {
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case open:
			depth++
		case closer:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return &ParseError{Detail: fmt.Sprintf("unterminated @%s block", what)}
}

// readStringDef parses one @string{name = value} definition.
func (p *parser) readStringDef(closer byte) error {
	p.skipSpace()
	name := strings.ToLower(p.readIdent())
	p.skipSpace()
	if p.pos >= len(p.src) || p.src[p.pos] != '=' {
		return &ParseError{Detail: "malformed @string definition"}
	}
	p.pos++
	value, err := p.readValue("@string")
	if err != nil {
		return err
	}
	p.strings[name] = cleanValue(value)
	p.skipSpace()
	if p.pos < len(p.src) && p.src[p.pos] == closer {
		p.pos++
	}
	return nil
}

// --- record → RawEntry normalization ---

var doiPrefixRe = regexp.MustCompile(`^(?i)https?://(?:dx\.)?doi\.org/`)

// toEntry normalizes a parsed record into a RawEntry.
func (r *record) toEntry() types.RawEntry {
	normType := r.entryType
	if mapped, ok := typeMap[r.entryType]; ok {
		normType = mapped
	}

	e := types.RawEntry{
		Key:      r.key,
		Type:     normType,
		Title:    cleanValue(r.fields["title"]),
		Year:     extractYear(r.fields),
		Volume:   cleanValue(r.fields["volume"]),
		Issue:    firstNonEmpty(cleanValue(r.fields["number"]), cleanValue(r.fields["issue"])),
		Pages:    strings.ReplaceAll(cleanValue(r.fields["pages"]), "--", "-"),
		URL:      strings.TrimSpace(r.fields["url"]),
		Abstract: cleanValue(r.fields["abstract"]),
	}

	e.ContainerTitle = firstNonEmpty(
		cleanValue(r.fields["journal"]),
		cleanValue(r.fields["booktitle"]),
		cleanValue(r.fields["container-title"]),
	)

	if doi := strings.TrimSpace(r.fields["doi"]); doi != "" {
		e.DOI = doiPrefixRe.ReplaceAllString(doi, "")
	}

	if authors := r.fields["author"]; authors != "" {
		e.Authors = parseAuthors(authors)
	}

	return e
}

// extractYear prefers the first component of a structured date field and
// falls back to a literal year field, defaulting to "unknown".
func extractYear(fields map[string]string) string {
	if date := cleanValue(fields["date"]); date != "" {
		year := date
		if i := strings.IndexAny(date, "-/"); i > 0 {
			year = date[:i]
		}
		if isYear(year) {
			return year
		}
	}
	if year := cleanValue(fields["year"]); isYear(year) {
		return year
	}
	return types.YearUnknown
}

func isYear(s string) bool {
	if len(s) != 4 {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// parseAuthors splits a BibTeX author field on " and " and normalizes each
// name. "Last, First" becomes {Given: First, Family: Last}; "First Last"
// splits on the final space.
func parseAuthors(field string) []types.Author {
	var authors []types.Author
	for _, name := range strings.Split(field, " and ") {
		name = cleanValue(name)
		if name == "" {
			continue
		}
		if i := strings.Index(name, ","); i >= 0 {
			authors = append(authors, types.Author{
				Given:  strings.TrimSpace(name[i+1:]),
				Family: strings.TrimSpace(name[:i]),
			})
			continue
		}
		if i := strings.LastIndex(name, " "); i >= 0 {
			authors = append(authors, types.Author{
				Given:  strings.TrimSpace(name[:i]),
				Family: strings.TrimSpace(name[i+1:]),
			})
			continue
		}
		authors = append(authors, types.Author{Family: name})
	}
	return authors
}

// latexReplacer undoes the common LaTeX escapes found in .bib values.
var latexReplacer = strings.NewReplacer(
	`\&`, "&",
	`\%`, "%",
	`\_`, "_",
	`\$`, "$",
	`\#`, "#",
	"~", " ",
	"{", "",
	"}", "",
)

// cleanValue strips protective braces, undoes LaTeX escapes, and collapses
// internal whitespace runs (field values may span source lines).
func cleanValue(v string) string {
	v = latexReplacer.Replace(v)
	return strings.Join(strings.Fields(v), " ")
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
