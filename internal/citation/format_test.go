// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package citation

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/pdiddy/cv-engine/pkg/types"
)

func TestFormatFullEntry(t *testing.T) {
	f := NewFormatter(BuiltinStyle, io.Discard)
	e := types.RawEntry{
		Key:   "doe2020",
		Title: "A Study of Things",
		Authors: []types.Author{
			{Given: "Jane A", Family: "Doe"},
			{Given: "John", Family: "Smith"},
		},
		ContainerTitle: "IEEE Transactions on Networking",
		Volume:         "12",
		Issue:          "3",
		Pages:          "1-10",
		Year:           "2020",
	}

	got := f.Format(e)
	want := `J. A. Doe, J. Smith, "A Study of Things," IEEE Transactions on Networking, vol. 12, no. 3, pp. 1-10, 2020.`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatMinimalEntry(t *testing.T) {
	f := NewFormatter(BuiltinStyle, io.Discard)
	got := f.Format(types.RawEntry{Title: "Untitled Work", Year: types.YearUnknown})
	want := `"Untitled Work."`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatTitleEndsCitation(t *testing.T) {
	f := NewFormatter(BuiltinStyle, io.Discard)
	got := f.Format(types.RawEntry{
		Title:   "Last Word",
		Authors: []types.Author{{Given: "Jane", Family: "Doe"}},
		Year:    types.YearUnknown,
	})
	want := `J. Doe, "Last Word."`
	if got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestFormatUnknownYearOmitted(t *testing.T) {
	f := NewFormatter(BuiltinStyle, io.Discard)
	got := f.Format(types.RawEntry{
		Title:   "Old Work",
		Authors: []types.Author{{Given: "Jane", Family: "Doe"}},
		Year:    types.YearUnknown,
	})
	if strings.Contains(got, "unknown") {
		t.Errorf("unknown year leaked into citation: %q", got)
	}
}

func TestFormatEtAlTruncation(t *testing.T) {
	f := NewFormatter(BuiltinStyle, io.Discard)
	e := types.RawEntry{Title: "Crowded Paper", Year: "2021"}
	for _, fam := range []string{"Aa", "Bb", "Cc", "Dd", "Ee", "Ff", "Gg"} {
		e.Authors = append(e.Authors, types.Author{Given: "X", Family: fam})
	}

	got := f.Format(e)
	if !strings.Contains(got, " et al.") {
		t.Errorf("7 authors should truncate: %q", got)
	}
	if strings.Contains(got, "Gg") {
		t.Errorf("7th author should be dropped: %q", got)
	}
	if !strings.Contains(got, "X. Ff") {
		t.Errorf("6th author should be kept: %q", got)
	}
}

func TestFormatEtAlUseFirstAboveAuthorCount(t *testing.T) {
	// Remote styles can declare et-al-use-first above et-al-min; an
	// author count between the two must not slice past the list.
	f := NewFormatter(Style{Name: "odd", EtAlMin: 3, EtAlUseFirst: 6}, io.Discard)
	e := types.RawEntry{Title: "Mid-Sized Paper", Year: "2022"}
	for _, fam := range []string{"Aa", "Bb", "Cc", "Dd"} {
		e.Authors = append(e.Authors, types.Author{Given: "X", Family: fam})
	}

	got := f.Format(e)
	if !strings.Contains(got, " et al.") {
		t.Errorf("4 authors with et-al-min 3 should truncate: %q", got)
	}
	for _, fam := range []string{"Aa", "Bb", "Cc", "Dd"} {
		if !strings.Contains(got, "X. "+fam) {
			t.Errorf("author %s should survive: %q", fam, got)
		}
	}
}

func TestFormatNoTruncationBelowThreshold(t *testing.T) {
	f := NewFormatter(BuiltinStyle, io.Discard)
	e := types.RawEntry{Title: "Small Paper", Year: "2021"}
	for _, fam := range []string{"Aa", "Bb", "Cc", "Dd", "Ee", "Ff"} {
		e.Authors = append(e.Authors, types.Author{Given: "X", Family: fam})
	}

	got := f.Format(e)
	if strings.Contains(got, "et al.") {
		t.Errorf("6 authors should not truncate: %q", got)
	}
}

func TestFormatEntryWithoutTitleOrAuthors(t *testing.T) {
	var warnings bytes.Buffer
	f := NewFormatter(BuiltinStyle, &warnings)

	got := f.Format(types.RawEntry{Key: "broken", Year: "2020"})
	if got != "[Error formatting citation: Unknown title]" {
		t.Errorf("Format = %q, want error placeholder", got)
	}
	if !strings.Contains(warnings.String(), "broken") {
		t.Errorf("warning should name the entry key, got %q", warnings.String())
	}
}

func TestAbbreviateAuthor(t *testing.T) {
	tests := []struct {
		author types.Author
		want   string
	}{
		{types.Author{Given: "Jane A", Family: "Doe"}, "J. A. Doe"},
		{types.Author{Given: "Jane A.", Family: "Doe"}, "J. A. Doe"},
		{types.Author{Given: "Jane", Family: "Doe"}, "J. Doe"},
		{types.Author{Family: "Doe"}, "Doe"},
		{types.Author{Given: "Jane"}, "J."},
	}
	for _, tt := range tests {
		if got := abbreviateAuthor(tt.author); got != tt.want {
			t.Errorf("abbreviateAuthor(%+v) = %q, want %q", tt.author, got, tt.want)
		}
	}
}

func TestCleanup(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[1] J. Doe, \"Title,\" 2020.", "J. Doe, \"Title,\" 2020."},
		{"J. Doe, \"Title,\" 2020. https://doi.org/10.1000/abc", "J. Doe, \"Title,\" 2020."},
		{"J. Doe, \"Title,\" 2020, doi: 10.1000/abc.", "J. Doe, \"Title,\" 2020."},
		{"J. Doe,  \"Title,\"   2020 .", "J. Doe, \"Title,\" 2020."},
		{"J. Doe, \"Title,\" 2020. .", "J. Doe, \"Title,\" 2020."},
		{"J. Doe, \"Title,\".", "J. Doe, \"Title.\""},
		{"No trailing period", "No trailing period."},
	}
	for _, tt := range tests {
		if got := Cleanup(tt.in); got != tt.want {
			t.Errorf("Cleanup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
