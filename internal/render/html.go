// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns a CV document into themed HTML and PDF output.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"sort"
	"strings"

	"github.com/pdiddy/cv-engine/pkg/types"
)

//go:embed themes/*.html.tmpl
var themeFS embed.FS

// themeColors maps each theme to its default primary color.
var themeColors = map[string]string{
	"reorx": "#aaaaaa",
	"cuiv":  "#cc0000",
}

const defaultTheme = "reorx"

// Themes returns the available theme names, sorted.
func Themes() []string {
	names := make([]string, 0, len(themeColors))
	for name := range themeColors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultColor returns the default primary color for a theme.
func DefaultColor(theme string) string {
	if c, ok := themeColors[theme]; ok {
		return c
	}
	return themeColors[defaultTheme]
}

// publicationView is one citation prepared for display: numbered within
// its category, with the highlight markers rendered as markup.
type publicationView struct {
	Number   int
	Citation template.HTML
	DOI      string
}

// sectionView is one publication category with its display heading.
type sectionView struct {
	Title        string
	Publications []publicationView
}

// renderData is the template input.
type renderData struct {
	Doc          types.CVDocument
	PrimaryColor string
	PageSize     string
	Sections     []sectionView
}

var sectionTitles = []struct {
	category types.Category
	title    string
}{
	{types.CategoryJournal, "Journal Articles"},
	{types.CategoryConference, "Conference Papers"},
	{types.CategoryOther, "Other Publications"},
}

// groupForDisplay builds the read-time category view of the flat
// publications list. Numbering restarts per category.
func groupForDisplay(pubs []types.Publication) []sectionView {
	var sections []sectionView
	for _, st := range sectionTitles {
		var views []publicationView
		for _, p := range pubs {
			if p.Type != st.category {
				continue
			}
			views = append(views, publicationView{
				Number:   len(views) + 1,
				// Highlight markers are engine-generated markup, not user input.
				Citation: template.HTML(p.Citation),
				DOI:      p.DOI,
			})
		}
		if len(views) > 0 {
			sections = append(sections, sectionView{Title: st.title, Publications: views})
		}
	}
	return sections
}

// Options is the effective presentation settings for one render, after
// config, document meta, and theme defaults are reconciled.
type Options struct {
	Theme        string
	PrimaryColor string
	PageSize     string
}

// ResolveOptions reconciles presentation settings: cfg overrides the
// document's meta section, which overrides theme defaults.
func ResolveOptions(doc types.CVDocument, cfg types.RenderConfig) (Options, error) {
	theme := cfg.Theme
	if theme == "" && doc.Meta != nil {
		theme = doc.Meta.Theme
	}
	if theme == "" {
		theme = defaultTheme
	}
	if _, ok := themeColors[theme]; !ok {
		return Options{}, fmt.Errorf("unknown theme %q (available: %s)", theme, strings.Join(Themes(), ", "))
	}

	color := cfg.ColorPrimary
	if color == "" && doc.Meta != nil {
		color = doc.Meta.ColorPrimary
	}
	if color == "" {
		color = DefaultColor(theme)
	}

	pageSize := cfg.PageSize
	if pageSize == "" && doc.Meta != nil {
		pageSize = doc.Meta.PageSize
	}
	if pageSize == "" {
		pageSize = "A4"
	}

	return Options{Theme: theme, PrimaryColor: color, PageSize: pageSize}, nil
}

// RenderHTML writes the themed HTML rendition of doc to w. Theme and
// color from cfg override the document's meta section; both fall back to
// theme defaults.
func RenderHTML(w io.Writer, doc types.CVDocument, cfg types.RenderConfig) error {
	opts, err := ResolveOptions(doc, cfg)
	if err != nil {
		return err
	}
	theme := opts.Theme

	tmpl, err := template.ParseFS(themeFS, "themes/"+theme+".html.tmpl")
	if err != nil {
		return fmt.Errorf("loading theme %q: %w", theme, err)
	}

	data := renderData{
		Doc:          doc,
		PrimaryColor: opts.PrimaryColor,
		PageSize:     opts.PageSize,
		Sections:     groupForDisplay(doc.Publications),
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("rendering theme %q: %w", theme, err)
	}
	return nil
}
