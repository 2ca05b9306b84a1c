// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-engine/internal/bibliography"
	"github.com/pdiddy/cv-engine/internal/citation"
	"github.com/pdiddy/cv-engine/internal/cv"
	"github.com/pdiddy/cv-engine/internal/pipeline"
	"github.com/pdiddy/cv-engine/internal/store"
	"github.com/pdiddy/cv-engine/pkg/types"
)

var importCmd = &cobra.Command{
	Use:   "import <bibtex-file>",
	Short: "Import a BibTeX bibliography into the CV",
	Long: `Import parses a BibTeX file, formats every entry as an IEEE-style
citation with name highlighting, and writes the result into the CV's
publications section. The source text is cached so later runs can
re-derive the list without the original file.

In merge mode (the default) manually-authored publications are kept and
only the previously imported ones are replaced. Replace mode discards
the existing list entirely.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	modeFlag, _ := cmd.Flags().GetString("mode")
	mode := cv.MergeMode(modeFlag)
	if !mode.Valid() {
		return fmt.Errorf("invalid mode %q: use merge or replace", modeFlag)
	}

	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading bibliography file: %w", err)
	}

	cvFile := cvPath(cmd)
	doc, err := cv.Load(cvFile)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		fmt.Fprintf(os.Stderr, "%s not found, starting from an empty CV\n", cvFile)
		doc = types.CVDocument{}
	}

	cfg := engineConfig(cmd)
	st, err := store.NewStore(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	styles := citation.NewStyleLoader(cfg.Style)
	pipe := pipeline.New(st, styles, os.Stderr)

	pubs, err := pipe.ImportBibliography(ctx, string(src), doc)
	if err != nil {
		var parseErr *bibliography.ParseError
		if errors.As(err, &parseErr) {
			return fmt.Errorf("bibliography is not valid BibTeX: %w", err)
		}
		return err
	}

	merged := cv.MergePublications(doc, pubs, mode)
	cv.Touch(&merged, nil)
	if err := cv.Save(merged, cvFile); err != nil {
		return err
	}

	data, err := cv.Encode(merged)
	if err != nil {
		return err
	}
	if err := st.SaveText(ctx, store.KeyCVData, string(data)); err != nil {
		return err
	}

	fmt.Printf("Imported %d publication(s) into %s (%d total)\n",
		len(pubs), cvFile, len(merged.Publications))
	return nil
}

func init() {
	importCmd.Flags().String("mode", "merge", "how to combine with existing publications: merge or replace")
	importCmd.Flags().String("style-url", "", "CSL style template URL (default: IEEE)")
	importCmd.Flags().Int("max-authors", 0, "author-list truncation threshold (0 = style default)")

	rootCmd.AddCommand(importCmd)
}
