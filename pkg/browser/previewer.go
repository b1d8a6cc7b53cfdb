// Package browser renders live previews of a change set in a real browser
// via Playwright. A Previewer owns one browser, one context and one page;
// it navigates to the page under edit and replays change lists against the
// live DOM with injected JavaScript.
package browser

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/sculpt-dev/sculpt/pkg/host"
	"github.com/sculpt-dev/sculpt/pkg/logging"
	"github.com/sculpt-dev/sculpt/pkg/types"
)

const (
	// DefaultViewportWidth is the initial viewport width in pixels
	DefaultViewportWidth = 1280

	// DefaultViewportHeight is the initial viewport height in pixels
	DefaultViewportHeight = 800

	// DefaultNavigateTimeout bounds page navigation
	DefaultNavigateTimeout = 30 * time.Second
)

// Options configures a Previewer.
type Options struct {
	// Headless controls whether the browser runs without a visible window
	Headless bool

	// NavigateTimeout bounds page loads (0 means DefaultNavigateTimeout)
	NavigateTimeout time.Duration

	// Viewport sets the page size; zero values use the defaults
	ViewportWidth  int
	ViewportHeight int

	Logger *logging.Logger
}

// Previewer drives a Playwright browser for live previews. It is safe for
// use from one goroutine at a time per method, guarded internally.
type Previewer struct {
	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	opts    Options
	log     *logging.Logger
	started bool
}

// NewPreviewer creates a previewer. Start must be called before use.
func NewPreviewer(opts Options) *Previewer {
	if opts.NavigateTimeout == 0 {
		opts.NavigateTimeout = DefaultNavigateTimeout
	}
	if opts.ViewportWidth == 0 {
		opts.ViewportWidth = DefaultViewportWidth
	}
	if opts.ViewportHeight == 0 {
		opts.ViewportHeight = DefaultViewportHeight
	}
	return &Previewer{opts: opts, log: opts.Logger}
}

// Start installs and launches the browser stack.
func (p *Previewer) Start() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return nil
	}

	// Discard driver output so it does not interleave with CLI output.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: &p.opts.Headless,
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  p.opts.ViewportWidth,
			Height: p.opts.ViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("failed to create context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(float64(p.opts.NavigateTimeout.Milliseconds()))

	p.pw = pw
	p.browser = browser
	p.context = context
	p.page = page
	p.started = true
	return nil
}

// Open navigates the preview page to the given URL.
func (p *Previewer) Open(url string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return fmt.Errorf("previewer not started")
	}

	timeout := float64(p.opts.NavigateTimeout.Milliseconds())
	waitUntil := playwright.WaitUntilStateDomcontentloaded
	if _, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: waitUntil,
		Timeout:   &timeout,
	}); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

// ApplyChanges replays the enabled changes against the live page. Returns
// the number of changes that touched at least one element.
func (p *Previewer) ApplyChanges(changes []types.Change) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return 0, fmt.Errorf("previewer not started")
	}

	payload, err := encodeChanges(changes)
	if err != nil {
		return 0, err
	}

	result, err := p.page.Evaluate(applyScript, payload)
	if err != nil {
		return 0, fmt.Errorf("failed to apply changes in page: %w", err)
	}

	applied := 0
	if n, ok := result.(int); ok {
		applied = n
	} else if f, ok := result.(float64); ok {
		applied = int(f)
	}
	if p.log != nil {
		p.log.Debugf("preview applied %d/%d changes", applied, len(changes))
	}
	return applied, nil
}

// Reset reloads the page, discarding all previewed changes.
func (p *Previewer) Reset() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return fmt.Errorf("previewer not started")
	}
	if _, err := p.page.Reload(); err != nil {
		return fmt.Errorf("failed to reload page: %w", err)
	}
	return nil
}

// HTML returns the current serialized page content.
func (p *Previewer) HTML() (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return "", fmt.Errorf("previewer not started")
	}
	content, err := p.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return content, nil
}

// Screenshot captures the current page as PNG bytes.
func (p *Previewer) Screenshot() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil, fmt.Errorf("previewer not started")
	}
	fullPage := true
	data, err := p.page.Screenshot(playwright.PageScreenshotOptions{FullPage: &fullPage})
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}
	return data, nil
}

// Send implements host.Transport: preview messages drive the live page,
// everything else is ignored. This lets an editing session stream its
// previews straight into the browser.
func (p *Previewer) Send(m host.Message) error {
	if m.Kind != host.KindPreview {
		return nil
	}
	switch m.Action {
	case host.PreviewRemove:
		return p.Reset()
	case host.PreviewUpdate:
		if err := p.Reset(); err != nil {
			return err
		}
		_, err := p.ApplyChanges(m.Changes)
		return err
	default:
		_, err := p.ApplyChanges(m.Changes)
		return err
	}
}

// Close shuts down the page, context, browser and driver.
func (p *Previewer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.started {
		return nil
	}

	// Best effort teardown, keep going on individual failures.
	_ = p.page.Close()
	_ = p.context.Close()
	_ = p.browser.Close()
	p.started = false

	if err := p.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	return nil
}
