// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"sync"

	"github.com/pdiddy/cv-engine/internal/httputil"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// DefaultStyleURL is the IEEE CSL style definition fetched when no
// template URL is configured.
const DefaultStyleURL = "https://raw.githubusercontent.com/citation-style-language/styles/refs/heads/master/ieee.csl"

// Style holds the formatting knobs the engine reads from a CSL template.
// The built-in fallback style mirrors IEEE defaults.
type Style struct {
	// Name identifies the style ("ieee", "builtin").
	Name string

	// EtAlMin is the author count at which the list is truncated.
	EtAlMin int

	// EtAlUseFirst is the number of authors shown when truncating.
	EtAlUseFirst int
}

// BuiltinStyle is the minimal fallback used when the remote template
// cannot be loaded.
var BuiltinStyle = Style{Name: "builtin", EtAlMin: 7, EtAlUseFirst: 6}

// StyleLoadError reports that a remote style template could not be
// fetched or understood. It is recoverable: formatting falls back to
// BuiltinStyle.
type StyleLoadError struct {
	URL string
	Err error
}

func (e *StyleLoadError) Error() string {
	return fmt.Sprintf("loading style template %s: %v", e.URL, e.Err)
}

func (e *StyleLoadError) Unwrap() error { return e.Err }

// CSL attribute patterns. A full CSL interpreter is out of scope; the
// engine reads the truncation attributes and formats with its own layout.
var (
	etAlMinRe      = regexp.MustCompile(`et-al-min="(\d+)"`)
	etAlUseFirstRe = regexp.MustCompile(`et-al-use-first="(\d+)"`)
	styleIDRe      = regexp.MustCompile(`<id>.*/(.+?)</id>`)
)

// StyleLoader fetches a CSL style template once and memoizes the result.
// Concurrent callers before the fetch resolves share the same in-flight
// request rather than issuing duplicates.
type StyleLoader struct {
	cfg    types.StyleConfig
	client *http.Client

	once  sync.Once
	style Style
	err   error
}

// NewStyleLoader creates a loader for the configured template URL.
func NewStyleLoader(cfg types.StyleConfig) *StyleLoader {
	if cfg.TemplateURL == "" {
		cfg.TemplateURL = DefaultStyleURL
	}
	return &StyleLoader{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// Load returns the remote style, fetching it on first call. On failure it
// returns BuiltinStyle alongside a *StyleLoadError so the caller can log
// the degradation; the error never aborts an import. A configured
// MaxAuthors overrides the style's et-al thresholds, on the fallback
// style too.
func (l *StyleLoader) Load(ctx context.Context) (Style, error) {
	l.once.Do(func() {
		l.style, l.err = l.fetch(ctx)
	})
	style := l.style
	if l.err != nil {
		style = BuiltinStyle
	}
	if l.cfg.MaxAuthors > 0 {
		style.EtAlUseFirst = l.cfg.MaxAuthors
		style.EtAlMin = l.cfg.MaxAuthors + 1
	}
	return style, l.err
}

func (l *StyleLoader) fetch(ctx context.Context) (Style, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.cfg.TemplateURL, nil)
	if err != nil {
		return Style{}, &StyleLoadError{URL: l.cfg.TemplateURL, Err: err}
	}
	if l.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", l.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, l.client, req, l.cfg.MaxRetries)
	if err != nil {
		return Style{}, &StyleLoadError{URL: l.cfg.TemplateURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Style{}, &StyleLoadError{
			URL: l.cfg.TemplateURL,
			Err: fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Style{}, &StyleLoadError{URL: l.cfg.TemplateURL, Err: err}
	}

	return parseStyle(string(body)), nil
}

// parseStyle extracts the supported attributes from CSL XML, falling back
// to built-in defaults per attribute.
func parseStyle(cslXML string) Style {
	style := BuiltinStyle
	style.Name = "remote"

	if m := styleIDRe.FindStringSubmatch(cslXML); m != nil {
		style.Name = m[1]
	}
	if m := etAlMinRe.FindStringSubmatch(cslXML); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			style.EtAlMin = n
		}
	}
	if m := etAlUseFirstRe.FindStringSubmatch(cslXML); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil && n > 0 {
			style.EtAlUseFirst = n
		}
	}
	return style
}
