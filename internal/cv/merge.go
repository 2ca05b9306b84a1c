// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cv

import "github.com/pdiddy/cv-engine/pkg/types"

// MergeMode selects how a bibliography import combines with existing
// publications.
type MergeMode string

const (
	// ModeReplace discards all existing publications.
	ModeReplace MergeMode = "replace"

	// ModeMerge keeps manually-authored publications and replaces only
	// the previously bibliography-derived ones.
	ModeMerge MergeMode = "merge"
)

// Valid reports whether the mode is one of the defined merge modes.
func (m MergeMode) Valid() bool {
	return m == ModeReplace || m == ModeMerge
}

// MergePublications returns a copy of doc with its publications list
// combined with pubs per mode. Manual entries (Source == "manual") are
// never dropped by a merge-mode import; the input document is not
// mutated. Replace mode is idempotent: re-running with identical inputs
// yields an identical publications list.
func MergePublications(doc types.CVDocument, pubs []types.Publication, mode MergeMode) types.CVDocument {
	merged := doc

	if mode == ModeMerge {
		var kept []types.Publication
		for _, p := range doc.Publications {
			if p.Source == types.SourceManual {
				kept = append(kept, p)
			}
		}
		merged.Publications = append(kept, pubs...)
		return merged
	}

	merged.Publications = append([]types.Publication(nil), pubs...)
	return merged
}
