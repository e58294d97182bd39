package printing

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultPDFTimeout = 20 * time.Second

	// 80mm thermal receipt paper, expressed in inches for CDP.
	receiptPaperWidthIn  = 3.15
	receiptPaperHeightIn = 11.0
)

// PDFRenderer converts receipt HTML into a printable PDF.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
}

// ChromedpConfig contains configuration for the chromedp renderer.
type ChromedpConfig struct {
	Timeout   time.Duration
	RemoteURL string // remote Chrome instance; empty launches a local one
	NoSandbox bool   // required under Docker/root
	Logger    *zap.Logger
}

// ChromedpRenderer renders HTML to PDF over the Chrome DevTools Protocol.
type ChromedpRenderer struct {
	config      ChromedpConfig
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewChromedpRenderer creates a chromedp-based PDF renderer.
func NewChromedpRenderer(cfg ChromedpConfig) *ChromedpRenderer {
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultPDFTimeout
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &ChromedpRenderer{config: cfg, logger: log}
	r.initAllocator()
	return r
}

func (r *ChromedpRenderer) initAllocator() {
	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
		return
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // required under Docker
		chromedp.Flag("font-render-hinting", "none"),
	)
	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
}

// RenderPDF navigates a fresh tab to the receipt HTML and prints it.
func (r *ChromedpRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	renderCtx, cancel := context.WithTimeout(r.allocCtx, r.config.Timeout)
	defer cancel()

	tabCtx, cancelTab := chromedp.NewContext(renderCtx)
	defer cancelTab()

	dataURL := "data:text/html;base64," + base64.StdEncoding.EncodeToString([]byte(html))

	var pdf []byte
	start := time.Now()
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(dataURL),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(receiptPaperWidthIn).
				WithPaperHeight(receiptPaperHeightIn).
				WithMarginTop(0.1).
				WithMarginBottom(0.1).
				WithMarginLeft(0.1).
				WithMarginRight(0.1).
				Do(ctx)
			if err != nil {
				return err
			}
			pdf = buf
			return nil
		}),
	)
	if err != nil {
		// Propagate the page context's deadline if that is what fired.
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	r.logger.Debug("receipt PDF rendered",
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", time.Since(start)),
	)
	return pdf, nil
}

// Close releases the browser allocator.
func (r *ChromedpRenderer) Close() {
	if r.allocCancel != nil {
		r.allocCancel()
	}
}
