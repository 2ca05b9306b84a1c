// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a BibTeX import end to end: parse, group,
// format, highlight, and assemble the CV publications list.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/pdiddy/cv-engine/internal/bibliography"
	"github.com/pdiddy/cv-engine/internal/citation"
	"github.com/pdiddy/cv-engine/internal/store"
	"github.com/pdiddy/cv-engine/pkg/types"
)

// TextStore is the persistence contract the pipeline calls to cache the
// last-imported source text. The storage medium is the store's concern.
type TextStore interface {
	SaveText(ctx context.Context, key, value string) error
	GetText(ctx context.Context, key string) (string, error)
}

// Subscriber receives the new publications list after each successful
// import. Callbacks run synchronously on the importing goroutine and must
// tolerate being invoked multiple times in quick succession.
type Subscriber func(pubs []types.Publication)

// Pipeline owns the citation pipeline state: the current source text, the
// last computed publications, and the subscriber list. State mutates only
// through ImportBibliography; a failed import leaves it untouched.
type Pipeline struct {
	store  TextStore
	styles *citation.StyleLoader
	warn   io.Writer

	mu      sync.Mutex
	seq     uint64 // next import sequence number
	applied uint64 // sequence of the import currently reflected in state
	raw     string
	pubs    []types.Publication
	loaded  bool
	subs    map[int]Subscriber
	nextSub int
}

// New creates a pipeline over the given store and style loader. Warnings
// (style fallback, per-entry format failures, name mismatch diagnostics)
// go to warn; pass nil to discard them.
func New(ts TextStore, styles *citation.StyleLoader, warn io.Writer) *Pipeline {
	if warn == nil {
		warn = io.Discard
	}
	return &Pipeline{
		store:  ts,
		styles: styles,
		warn:   warn,
		subs:   make(map[int]Subscriber),
	}
}

// Restore seeds the pipeline from previously cached source text, if any.
// It is called once at startup; a cache miss is not an error.
func (p *Pipeline) Restore(ctx context.Context, cv types.CVDocument) error {
	raw, err := p.store.GetText(ctx, store.KeyBibTeX)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	_, err = p.ImportBibliography(ctx, raw, cv)
	return err
}

// ImportBibliography runs the full pipeline over src: the raw text is
// cached, name profiles are derived from cv, and each parsed entry is
// formatted and highlighted. On success the pipeline state is replaced
// and subscribers are notified synchronously. On failure (unparseable
// source, store error) the state is left unchanged and the error
// propagates; callers surface it to the user.
//
// Imports are expected to run one at a time. If a second import starts
// before the first completes, the later invocation wins: a slow earlier
// import that finishes afterwards is discarded rather than overwriting
// newer state.
func (p *Pipeline) ImportBibliography(ctx context.Context, src string, cv types.CVDocument) ([]types.Publication, error) {
	p.mu.Lock()
	p.seq++
	seq := p.seq
	p.mu.Unlock()

	if err := p.store.SaveText(ctx, store.KeyBibTeX, src); err != nil {
		return nil, fmt.Errorf("caching bibliography source: %w", err)
	}

	entries, err := bibliography.Parse(src)
	if err != nil {
		return nil, err
	}

	style, err := p.styles.Load(ctx)
	if err != nil {
		var styleErr *citation.StyleLoadError
		if !errors.As(err, &styleErr) {
			return nil, err
		}
		fmt.Fprintf(p.warn, "warning: %v; using built-in style\n", styleErr)
	}

	formatter := citation.NewFormatter(style, p.warn)
	profiles := citation.BuildProfiles(cv)

	flattened := bibliography.Group(entries).Flatten()
	pubs := make([]types.Publication, 0, len(flattened))
	for _, e := range flattened {
		formatted := formatter.Format(e)
		highlighted := citation.Highlight(formatted, profiles, p.warn)
		pubs = append(pubs, types.Publication{
			Type:     e.Category(),
			Citation: highlighted,
			DOI:      e.DOI,
			Source:   types.SourceBibliography,
		})
	}

	p.mu.Lock()
	if seq < p.applied {
		// A newer import already completed; drop this stale result.
		p.mu.Unlock()
		return pubs, nil
	}
	p.applied = seq
	p.raw = src
	p.pubs = pubs
	p.loaded = true
	ids := make([]int, 0, len(p.subs))
	for id := range p.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	subs := make([]Subscriber, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, p.subs[id])
	}
	p.mu.Unlock()

	for _, fn := range subs {
		fn(pubs)
	}
	return pubs, nil
}

// Subscribe registers a callback for publication changes and returns an
// unregister function.
func (p *Pipeline) Subscribe(fn Subscriber) (unsubscribe func()) {
	p.mu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// Current returns the last computed publications list. It is empty until
// the first successful import.
func (p *Pipeline) Current() []types.Publication {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]types.Publication(nil), p.pubs...)
}

// RawText returns the source text of the last successful import.
func (p *Pipeline) RawText() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.raw
}

// Loaded reports whether at least one import has succeeded.
func (p *Pipeline) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}
