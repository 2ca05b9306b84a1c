// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cv-engine/internal/cv"
	"github.com/pdiddy/cv-engine/internal/render"
	"github.com/pdiddy/cv-engine/internal/store"
	"github.com/pdiddy/cv-engine/pkg/types"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the CV as themed HTML (and optionally PDF)",
	Long: `Render writes the CV as a themed HTML page under the output directory.
Theme, primary color, and page size come from flags when given, then the
CV's meta section, then theme defaults. With --pdf a headless browser
prints the same page to PDF alongside the HTML.`,
	RunE: runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	doc, err := cv.Load(cvPath(cmd))
	if err != nil {
		return err
	}

	engine := engineConfig(cmd)
	cfg := engine.Render
	opts, err := render.ResolveOptions(doc, cfg)
	if err != nil {
		return err
	}
	if err := savePreferences(engine.Store, opts); err != nil {
		return fmt.Errorf("caching presentation preferences: %w", err)
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	stem := cv.Title(doc)
	htmlPath := filepath.Join(cfg.OutputDir, stem+".html")
	f, err := os.Create(htmlPath)
	if err != nil {
		return fmt.Errorf("creating %s: %w", htmlPath, err)
	}
	if err := render.RenderHTML(f, doc, cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", htmlPath, err)
	}
	fmt.Println("Rendered", htmlPath)

	withPDF, _ := cmd.Flags().GetBool("pdf")
	if !withPDF {
		return nil
	}

	pdf, err := render.RenderPDF(context.Background(), doc, cfg)
	if err != nil {
		return err
	}
	pdfPath := filepath.Join(cfg.OutputDir, stem+".pdf")
	if err := os.WriteFile(pdfPath, pdf, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", pdfPath, err)
	}
	fmt.Println("Rendered", pdfPath)
	return nil
}

// savePreferences caches the effective presentation settings so later
// runs without flags reuse them.
func savePreferences(cfg types.StoreConfig, opts render.Options) error {
	st, err := store.NewStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	ctx := context.Background()
	if err := st.SaveText(ctx, store.KeyTheme, opts.Theme); err != nil {
		return err
	}
	if err := st.SaveText(ctx, store.KeyPrimaryColor, opts.PrimaryColor); err != nil {
		return err
	}
	return st.SaveText(ctx, store.KeyPageSize, opts.PageSize)
}

func init() {
	renderCmd.Flags().String("theme", "", "HTML theme: reorx or cuiv (default: CV meta, then reorx)")
	renderCmd.Flags().String("color", "", "primary color, #rrggbb (default: CV meta, then theme default)")
	renderCmd.Flags().String("page-size", "", "page size: A4 or Letter (default: CV meta, then A4)")
	renderCmd.Flags().String("output-dir", "", "directory for rendered output (default: output)")
	renderCmd.Flags().Bool("pdf", false, "also print the page to PDF via a headless browser")

	rootCmd.AddCommand(renderCmd)
}
