// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"github.com/pdiddy/cv-engine/pkg/types"
)

// pdfTimeout bounds the whole browser session, including startup.
const pdfTimeout = 60 * time.Second

// paperSizes maps a page size name to its width and height in inches,
// the unit the DevTools print protocol expects.
var paperSizes = map[string]struct{ width, height float64 }{
	"A4":     {8.27, 11.69},
	"Letter": {8.5, 11.0},
}

// RenderPDF renders the themed HTML for doc through a headless browser
// and returns the PDF bytes. The browser binary is discovered on PATH;
// set CHROME_PATH to override.
func RenderPDF(ctx context.Context, doc types.CVDocument, cfg types.RenderConfig) ([]byte, error) {
	opts, err := ResolveOptions(doc, cfg)
	if err != nil {
		return nil, err
	}
	paper, ok := paperSizes[opts.PageSize]
	if !ok {
		return nil, fmt.Errorf("unknown page size %q (available: A4, Letter)", opts.PageSize)
	}

	var buf strings.Builder
	if err := RenderHTML(&buf, doc, cfg); err != nil {
		return nil, err
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if p := os.Getenv("CHROME_PATH"); p != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(p))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, pdfTimeout)
	defer cancelRun()

	// The browser needs a file URL; data URLs break relative asset paths.
	tmpDir, err := os.MkdirTemp("", "cv-engine-")
	if err != nil {
		return nil, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	htmlPath := filepath.Join(tmpDir, "cv.html")
	if err := os.WriteFile(htmlPath, []byte(buf.String()), 0o644); err != nil {
		return nil, fmt.Errorf("writing scratch HTML: %w", err)
	}

	var pdf []byte
	err = chromedp.Run(runCtx,
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paper.width).
				WithPaperHeight(paper.height).
				WithPreferCSSPageSize(true).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("printing PDF: %w", err)
	}
	return pdf, nil
}
