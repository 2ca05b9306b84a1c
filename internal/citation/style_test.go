// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pdiddy/cv-engine/pkg/types"
)

const sampleCSL = `<?xml version="1.0" encoding="utf-8"?>
<style xmlns="http://purl.org/net/xbiblio/csl" class="in-text" version="1.0">
  <info>
    <title>IEEE</title>
    <id>http://www.zotero.org/styles/ieee</id>
  </info>
  <bibliography entry-spacing="0" second-field-align="flush" et-al-min="7" et-al-use-first="6">
  </bibliography>
</style>`

func testStyleConfig(url string) types.StyleConfig {
	return types.StyleConfig{
		HTTPConfig:  types.HTTPConfig{Timeout: 5 * time.Second},
		TemplateURL: url,
		MaxRetries:  1,
	}
}

func TestStyleLoaderFetchesRemote(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleCSL))
	}))
	defer ts.Close()

	loader := NewStyleLoader(testStyleConfig(ts.URL))
	style, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if style.Name != "ieee" {
		t.Errorf("Name = %q, want %q", style.Name, "ieee")
	}
	if style.EtAlMin != 7 || style.EtAlUseFirst != 6 {
		t.Errorf("et-al = %d/%d, want 7/6", style.EtAlMin, style.EtAlUseFirst)
	}
}

func TestStyleLoaderMemoizes(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(sampleCSL))
	}))
	defer ts.Close()

	loader := NewStyleLoader(testStyleConfig(ts.URL))
	for i := 0; i < 3; i++ {
		if _, err := loader.Load(context.Background()); err != nil {
			t.Fatalf("Load %d: %v", i, err)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("fetch calls = %d, want 1", n)
	}
}

func TestStyleLoaderFallsBackOnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	loader := NewStyleLoader(testStyleConfig(ts.URL))
	style, err := loader.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	var styleErr *StyleLoadError
	if !errors.As(err, &styleErr) {
		t.Fatalf("error type = %T, want *StyleLoadError", err)
	}
	if style != BuiltinStyle {
		t.Errorf("fallback style = %+v, want BuiltinStyle", style)
	}
}

func TestStyleLoaderMaxAuthorsOverride(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleCSL))
	}))
	defer ts.Close()

	cfg := testStyleConfig(ts.URL)
	cfg.MaxAuthors = 3
	loader := NewStyleLoader(cfg)
	style, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if style.EtAlUseFirst != 3 || style.EtAlMin != 4 {
		t.Errorf("et-al = %d/%d, want 4/3", style.EtAlMin, style.EtAlUseFirst)
	}
}

func TestStyleLoaderMaxAuthorsOverridesFallback(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	cfg := testStyleConfig(ts.URL)
	cfg.MaxAuthors = 2
	loader := NewStyleLoader(cfg)
	style, err := loader.Load(context.Background())
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if style.EtAlUseFirst != 2 || style.EtAlMin != 3 {
		t.Errorf("et-al = %d/%d, want 3/2", style.EtAlMin, style.EtAlUseFirst)
	}
}

func TestParseStyleDefaults(t *testing.T) {
	style := parseStyle("<style></style>")
	if style.EtAlMin != BuiltinStyle.EtAlMin || style.EtAlUseFirst != BuiltinStyle.EtAlUseFirst {
		t.Errorf("missing attributes should keep built-in defaults, got %+v", style)
	}
	if style.Name != "remote" {
		t.Errorf("Name = %q, want %q", style.Name, "remote")
	}
}

func TestParseStyleCustomThresholds(t *testing.T) {
	xml := strings.Replace(sampleCSL, `et-al-min="7" et-al-use-first="6"`, `et-al-min="4" et-al-use-first="2"`, 1)
	style := parseStyle(xml)
	if style.EtAlMin != 4 || style.EtAlUseFirst != 2 {
		t.Errorf("et-al = %d/%d, want 4/2", style.EtAlMin, style.EtAlUseFirst)
	}
}
