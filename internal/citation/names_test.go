// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"reflect"
	"testing"
)

func TestVariantsWithMiddleName(t *testing.T) {
	got := Variants("Jane A. Doe")
	want := []string{
		"Jane A. Doe",
		"Doe, Jane",
		"J. A. Doe",
		"Doe, J. A.",
		"J A Doe",
		"Jane Doe",
		"Doe, Jane A.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variants(Jane A. Doe) = %v, want %v", got, want)
	}
}

func TestVariantsNoMiddleName(t *testing.T) {
	got := Variants("Jane Doe")
	want := []string{
		"Jane Doe",
		"Doe, Jane",
		"J. Doe",
		"Doe, J.",
		"J Doe",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Variants(Jane Doe) = %v, want %v", got, want)
	}
}

func TestVariantsSingleName(t *testing.T) {
	got := Variants("Madonna")
	if len(got) != 1 || got[0] != "Madonna" {
		t.Errorf("Variants(Madonna) = %v, want [Madonna]", got)
	}
}

func TestVariantsEmpty(t *testing.T) {
	if got := Variants(""); got != nil {
		t.Errorf("Variants(\"\") = %v, want nil", got)
	}
	if got := Variants("   "); got != nil {
		t.Errorf("Variants(whitespace) = %v, want nil", got)
	}
}

func TestVariantsNormalizesWhitespace(t *testing.T) {
	got := Variants("  Jane   Doe ")
	if got[0] != "Jane Doe" {
		t.Errorf("first variant = %q, want %q", got[0], "Jane Doe")
	}
}

func TestVariantsDeterministic(t *testing.T) {
	a := Variants("Jane A. Doe")
	b := Variants("Jane A. Doe")
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Variants not deterministic: %v vs %v", a, b)
	}
}

func TestWidePatterns(t *testing.T) {
	patterns := WidePatterns("Jane Doe")
	if len(patterns) != 2 {
		t.Fatalf("len(WidePatterns) = %d, want 2", len(patterns))
	}

	tests := []struct {
		text  string
		one   bool
		two   bool
	}{
		{"J. Doe", true, false},
		// The one-initial pattern also hits the trailing "A. Doe".
		{"J. A. Doe", true, true},
		{"X.Doe", true, false},
		{"Jane Doe", false, false},
		{"J. Doering", false, false},
	}
	for _, tt := range tests {
		if got := patterns[0].MatchString(tt.text); got != tt.one {
			t.Errorf("one-initial pattern on %q = %v, want %v", tt.text, got, tt.one)
		}
		if got := patterns[1].MatchString(tt.text); got != tt.two {
			t.Errorf("two-initial pattern on %q = %v, want %v", tt.text, got, tt.two)
		}
	}
}

func TestWidePatternsSingleName(t *testing.T) {
	if got := WidePatterns("Madonna"); got != nil {
		t.Errorf("WidePatterns(single name) = %v, want nil", got)
	}
}
