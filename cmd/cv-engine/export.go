// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-engine/internal/bibliography"
	"github.com/pdiddy/cv-engine/internal/cv"
	"github.com/pdiddy/cv-engine/internal/render"
	"github.com/pdiddy/cv-engine/internal/store"
	"github.com/pdiddy/cv-engine/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the CV or its bibliography in another format",
	Long: `Export writes the CV data or the cached bibliography to stdout or a
file. Formats:

  json    the CV document as indented JSON
  bibtex  the cached BibTeX source from the last import
  csl     the parsed bibliography as CSL-YAML (Pandoc-compatible)
  pdf     the themed CV printed to PDF`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	cfg := engineConfig(cmd)

	out := os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	switch format {
	case "json", "":
		doc, err := cv.Load(cvPath(cmd))
		if err != nil {
			return err
		}
		data, err := cv.Encode(doc)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err

	case "bibtex":
		raw, err := cachedBibliography(cfg.Store)
		if err != nil {
			return err
		}
		if normalize, _ := cmd.Flags().GetBool("normalize"); normalize {
			entries, err := bibliography.Parse(raw)
			if err != nil {
				return err
			}
			raw = bibliography.GenerateBibTeX(entries)
		}
		_, err = fmt.Fprint(out, raw)
		return err

	case "csl":
		raw, err := cachedBibliography(cfg.Store)
		if err != nil {
			return err
		}
		entries, err := bibliography.Parse(raw)
		if err != nil {
			return err
		}
		return bibliography.FormatCSL(entries, out)

	case "pdf":
		if outPath == "" {
			return fmt.Errorf("pdf export requires --out")
		}
		doc, err := cv.Load(cvPath(cmd))
		if err != nil {
			return err
		}
		pdf, err := render.RenderPDF(context.Background(), doc, cfg.Render)
		if err != nil {
			return err
		}
		_, err = out.Write(pdf)
		return err

	default:
		return fmt.Errorf("unsupported format %q: use json, bibtex, csl, or pdf", format)
	}
}

// cachedBibliography returns the BibTeX source cached by the last import.
func cachedBibliography(cfg types.StoreConfig) (string, error) {
	st, err := store.NewStore(cfg)
	if err != nil {
		return "", err
	}
	defer st.Close()

	raw, err := st.GetText(context.Background(), store.KeyBibTeX)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", fmt.Errorf("no bibliography cached: run import first")
	}
	return raw, nil
}

func init() {
	exportCmd.Flags().String("format", "json", "export format: json, bibtex, csl, or pdf")
	exportCmd.Flags().String("out", "", "output file (default: stdout; required for pdf)")
	exportCmd.Flags().Bool("normalize", false, "for bibtex: regenerate cleaned entries instead of the verbatim cached source")
	exportCmd.Flags().String("theme", "", "HTML theme for pdf export")
	exportCmd.Flags().String("color", "", "primary color for pdf export")
	exportCmd.Flags().String("page-size", "", "page size for pdf export: A4 or Letter")

	rootCmd.AddCommand(exportCmd)
}
