package printing

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

// A4 in inches, the unit Chrome's print API uses
const (
	a4Width  = 8.27
	a4Height = 11.69
	margin   = 0.4
)

// ChromeConfig configures the headless browser
type ChromeConfig struct {
	// ExecPath overrides browser discovery on PATH
	ExecPath string
	Timeout  time.Duration
	// NoSandbox is needed when running as root inside containers
	NoSandbox bool
}

// ChromeRenderer prints document templates to PDF through one shared browser
// process. Each render opens its own tab.
type ChromeRenderer struct {
	templates *Templates
	logger    *zap.Logger
	timeout   time.Duration

	mu            sync.Mutex
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewChromeRenderer prepares the allocator. The browser itself starts on the
// first render.
func NewChromeRenderer(cfg ChromeConfig, templates *Templates, logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("font-render-hinting", "none"),
	)
	if cfg.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(cfg.ExecPath))
	}
	if cfg.NoSandbox {
		opts = append(opts, chromedp.NoSandbox)
	}

	allocCtx, cancel := chromedp.NewExecAllocator(context.Background(), opts...)
	return &ChromeRenderer{
		templates:   templates,
		logger:      logger.Named("printing"),
		timeout:     cfg.Timeout,
		allocCtx:    allocCtx,
		allocCancel: cancel,
	}
}

// ErrRendererClosed is returned after Close
var ErrRendererClosed = errors.New("pdf renderer closed")

// RenderPDF executes the named template with data and prints it to A4 PDF
func (r *ChromeRenderer) RenderPDF(ctx context.Context, name string, data any) ([]byte, error) {
	html, err := r.templates.HTML(name, data)
	if err != nil {
		return nil, err
	}

	browser, err := r.browser()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	tab, closeTab := chromedp.NewContext(browser)
	defer closeTab()
	tab, cancel := context.WithTimeout(tab, r.timeout)
	defer cancel()

	// Tie the tab to the caller so an aborted request stops rendering
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var pdf []byte
	err = chromedp.Run(tab,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, string(html)).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			out, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				WithMarginTop(margin).
				WithMarginBottom(margin).
				WithMarginLeft(margin).
				WithMarginRight(margin).
				Do(ctx)
			pdf = out
			return err
		}),
	)
	if err != nil {
		if errors.Is(tab.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("render %s: timed out after %s", name, r.timeout)
		}
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	if len(pdf) == 0 {
		return nil, fmt.Errorf("render %s: empty pdf", name)
	}

	r.logger.Debug("pdf rendered",
		zap.String("template", name),
		zap.Int("bytes", len(pdf)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return pdf, nil
}

// browser returns the shared browser context, launching Chrome on first use
func (r *ChromeRenderer) browser() (context.Context, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.allocCtx == nil {
		return nil, ErrRendererClosed
	}
	if r.browserCtx != nil && r.browserCtx.Err() == nil {
		return r.browserCtx, nil
	}

	ctx, cancel := chromedp.NewContext(r.allocCtx, chromedp.WithLogf(r.logger.Sugar().Debugf))
	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	r.browserCtx, r.browserCancel = ctx, cancel
	r.logger.Info("headless browser started")
	return ctx, nil
}

// Close shuts the browser down
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browserCancel != nil {
		r.browserCancel()
		r.browserCtx, r.browserCancel = nil, nil
	}
	if r.allocCancel != nil {
		r.allocCancel()
		r.allocCtx, r.allocCancel = nil, nil
	}
	return nil
}
