package html2pdf

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"

	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/process"
)

// Printer renders documents identified by URL. One browser serves every
// document; each identifier gets its own page until ClosePage.
type Printer interface {
	// PDF prints the document. The page is opened and loaded on first use.
	PDF(ctx context.Context, id string, opts PDFOptions) ([]byte, error)
	// HTML returns the serialized DOM after load and injection.
	HTML(ctx context.Context, id string) ([]byte, error)
	// Render shows the document and blocks until its tab is closed.
	Render(ctx context.Context, id string) error
	// ClosePage releases the page for id.
	ClosePage(id string) error
	// Close releases every page and the browser.
	Close() error
}

// Compile-time interface check
var _ Printer = (*RodPrinter)(nil)

// RodPrinter implements Printer with headless Chrome via go-rod.
// Rod downloads Chromium on first run if no browser is found.
type RodPrinter struct {
	opts Options
	log  logrus.FieldLogger

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher // nil when attached to an endpoint
	pages    map[string]*rodPage
}

// rodPage is one open document.
type rodPage struct {
	page   *rod.Page
	router *rod.HijackRouter
	closed bool // closed by the user in debug mode
}

// NewRodPrinter creates a printer. The browser starts on first use.
func NewRodPrinter(opts Options) *RodPrinter {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.Media == "" {
		opts.Media = DefaultMedia
	}

	log := opts.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}

	return &RodPrinter{
		opts:  opts,
		log:   log,
		pages: make(map[string]*rodPage),
	}
}

// ensureBrowser lazily launches or attaches to the browser. Caller must hold mu.
func (p *RodPrinter) ensureBrowser() error {
	if p.browser != nil {
		return nil
	}

	controlURL, err := p.controlURL()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		p.killLauncher()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	if p.opts.IgnoreHTTPSErrors {
		if err := browser.IgnoreCertErrors(true); err != nil {
			_ = browser.Close()
			p.killLauncher()
			return fmt.Errorf("%w: ignoring certificate errors: %v", ErrBrowserConnect, err)
		}
	}

	p.browser = browser
	return nil
}

// controlURL returns the DevTools websocket URL, launching a browser
// unless an endpoint is configured.
func (p *RodPrinter) controlURL() (string, error) {
	if ep := p.opts.BrowserEndpoint; ep != "" {
		if strings.HasPrefix(ep, "ws://") || strings.HasPrefix(ep, "wss://") {
			return ep, nil
		}
		p.log.WithField("endpoint", ep).Debug("resolving browser endpoint")
		return launcher.ResolveURL(ep)
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	noSandbox := os.Getenv("ROD_NO_SANDBOX")
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" || noSandbox == "1" || noSandbox == "true" {
		l = l.NoSandbox(true)
	}

	l = l.Headless(p.opts.Headless && !p.opts.Debug)
	if p.opts.Debug {
		l = l.Devtools(true)
	}

	for _, arg := range p.opts.BrowserArgs {
		name, value, ok := parseBrowserArg(arg)
		if !ok {
			p.log.WithField("arg", arg).Warn("ignoring malformed browser argument")
			continue
		}
		if value == "" {
			l = l.Set(flags.Flag(name))
		} else {
			l = l.Set(flags.Flag(name), value)
		}
	}

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return "", err
	}
	p.launcher = l
	p.log.WithField("pid", l.PID()).Debug("browser launched")
	return u, nil
}

// parseBrowserArg splits "--name=value" (or "--name") into its parts.
func parseBrowserArg(arg string) (name, value string, ok bool) {
	arg = strings.TrimSpace(arg)
	if !strings.HasPrefix(arg, "-") {
		return "", "", false
	}
	name, value, _ = strings.Cut(strings.TrimLeft(arg, "-"), "=")
	if name == "" {
		return "", "", false
	}
	return name, value, true
}

// killLauncher tears down a browser process started by this printer.
// Caller must hold mu.
func (p *RodPrinter) killLauncher() {
	if p.launcher == nil {
		return
	}
	process.KillGroup(p.launcher.PID())
	p.launcher.Kill()
	p.launcher.Cleanup()
	p.launcher = nil
}

// pageFor returns the loaded page for id, opening it on first use.
func (p *RodPrinter) pageFor(ctx context.Context, id string) (*rod.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if rp, ok := p.pages[id]; ok && !rp.closed {
		return rp.page.Context(ctx), nil
	}

	if err := p.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := p.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	rp := &rodPage{page: page}
	// Registered before loading so ClosePage releases a page that failed to load.
	p.pages[id] = rp

	if err := p.preparePage(rp, id); err != nil {
		return nil, err
	}
	if err := p.load(ctx, page, id); err != nil {
		return nil, err
	}
	return page.Context(ctx), nil
}

// preparePage installs request filtering, media emulation and console
// logging before navigation.
func (p *RodPrinter) preparePage(rp *rodPage, id string) error {
	page := rp.page

	if p.opts.Access.Active() {
		router := page.HijackRequests()
		if err := router.Add("*", "", p.filterRequest(id)); err != nil {
			return fmt.Errorf("%w: installing request filter: %v", ErrPageCreate, err)
		}
		go router.Run()
		rp.router = router
	}

	if err := (proto.EmulationSetEmulatedMedia{Media: p.opts.Media}).Call(page); err != nil {
		return fmt.Errorf("%w: emulating media %q: %v", ErrPageCreate, p.opts.Media, err)
	}

	if p.opts.Warn {
		go page.EachEvent(func(e *proto.RuntimeConsoleAPICalled) {
			if e.Type != proto.RuntimeConsoleAPICalledTypeWarning && e.Type != proto.RuntimeConsoleAPICalledTypeError {
				return
			}
			p.log.WithFields(logrus.Fields{"input": id, "console": string(e.Type)}).Warn(consoleText(e.Args))
		})()
	}
	return nil
}

// filterRequest applies the access policy. The page's own document is
// always let through.
func (p *RodPrinter) filterRequest(id string) func(*rod.Hijack) {
	return func(h *rod.Hijack) {
		u := h.Request.URL().String()

		if p.opts.Access.allowsRequest(id, u, h.Request.IsNavigation()) {
			h.ContinueRequest(&proto.FetchContinueRequest{})
			return
		}

		if p.opts.Warn {
			p.log.WithFields(logrus.Fields{"input": id, "url": u}).Warn("blocked request")
		}
		h.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
	}
}

// consoleText joins console arguments the way devtools prints them.
func consoleText(args []*proto.RuntimeRemoteObject) string {
	parts := make([]string, 0, len(args))
	for _, a := range args {
		switch {
		case a.Description != "":
			parts = append(parts, a.Description)
		case !a.Value.Nil():
			parts = append(parts, a.Value.String())
		}
	}
	return strings.Join(parts, " ")
}

// load navigates to id, waits for the load event and injects assets.
func (p *RodPrinter) load(ctx context.Context, page *rod.Page, id string) error {
	pt := page.Context(ctx).Timeout(p.opts.Timeout)
	defer pt.CancelTimeout()

	err := pt.Navigate(id)
	if err == nil {
		err = pt.WaitLoad()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s: %w after %s", ErrPageLoad, id, context.DeadlineExceeded, p.opts.Timeout)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrPageLoad, id, err)
	}

	for _, ref := range p.opts.Styles {
		url, content, err := assetSource(ref)
		if err == nil {
			err = pt.AddStyleTag(url, content)
		}
		if err != nil {
			return fmt.Errorf("%w: style %s: %v", ErrInjectAsset, ref, err)
		}
	}
	for _, ref := range p.opts.Scripts {
		url, content, err := assetSource(ref)
		if err == nil {
			err = pt.AddScriptTag(url, content)
		}
		if err != nil {
			return fmt.Errorf("%w: script %s: %v", ErrInjectAsset, ref, err)
		}
	}
	return nil
}

// assetSource returns ref as a URL, or the content of the file it names.
func assetSource(ref string) (url, content string, err error) {
	if fileutil.IsURL(ref) {
		return ref, "", nil
	}
	data, err := os.ReadFile(ref) // #nosec G304 -- user-provided asset path
	if err != nil {
		return "", "", err
	}
	return "", string(data), nil
}

// PDF prints id with opts. Outline failures are logged and the PDF is
// returned without bookmarks.
func (p *RodPrinter) PDF(ctx context.Context, id string, opts PDFOptions) ([]byte, error) {
	req, err := opts.printRequest()
	if err != nil {
		return nil, err
	}

	page, err := p.pageFor(ctx, id)
	if err != nil {
		return nil, err
	}

	if opts.OmitBackground {
		transparent := proto.EmulationSetDefaultBackgroundColorOverride{Color: &proto.DOMRGBA{A: floatPtr(0)}}
		if err := transparent.Call(page); err != nil {
			return nil, fmt.Errorf("%w: clearing background: %v", ErrPDFGeneration, err)
		}
	}

	reader, err := page.PDF(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}
	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	if tags := normalizeTags(opts.Outline.Tags); len(tags) > 0 {
		withOutline, err := p.outline(page, pdf, opts, tags)
		if err != nil {
			if p.opts.Warn {
				p.log.WithField("input", id).Warn(err)
			}
			return pdf, nil
		}
		pdf = withOutline
	}
	return pdf, nil
}

// outline adds bookmarks for the page's headings to pdf.
func (p *RodPrinter) outline(page *rod.Page, pdf []byte, opts PDFOptions, tags []string) ([]byte, error) {
	selector := opts.Outline.ContainerSelector

	res, err := page.Eval(headingOffsetsJS, selector, strings.Join(tags, ","))
	if err != nil {
		return nil, fmt.Errorf("%w: measuring headings: %v", ErrOutline, err)
	}
	doc, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutline, err)
	}
	hs, err := extractHeadings(doc, selector, tags)
	if err != nil {
		return nil, err
	}

	offsets := res.Value.Arr()
	if len(offsets) != len(hs) {
		return nil, fmt.Errorf("%w: found %d headings but measured %d", ErrOutline, len(hs), len(offsets))
	}
	for i := range hs {
		hs[i].Top = offsets[i].Num()
	}

	heightPx, err := printableHeightPx(opts)
	if err != nil {
		return nil, err
	}
	pages, err := pageCount(pdf)
	if err != nil {
		return nil, err
	}
	return addBookmarks(pdf, buildBookmarks(hs, tags, heightPx, pages))
}

// HTML returns the document's markup after load and injection.
func (p *RodPrinter) HTML(ctx context.Context, id string) ([]byte, error) {
	page, err := p.pageFor(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLCapture, err)
	}
	return []byte("<!DOCTYPE html>\n" + html), nil
}

// Render loads id for inspection and waits until the operator closes its
// tab or ctx is done.
func (p *RodPrinter) Render(ctx context.Context, id string) error {
	page, err := p.pageFor(ctx, id)
	if err != nil {
		return err
	}

	p.mu.Lock()
	browser := p.browser.Context(ctx)
	p.mu.Unlock()

	if err := (proto.TargetSetDiscoverTargets{Discover: true}).Call(browser); err != nil {
		return fmt.Errorf("%w: watching targets: %v", ErrPageLoad, err)
	}
	wait := browser.EachEvent(func(e *proto.TargetTargetDestroyed) bool {
		return e.TargetID == page.TargetID
	})
	if _, err := page.Activate(); err != nil {
		p.log.WithField("input", id).Debugf("activating page: %v", err)
	}
	p.log.WithField("input", id).Info("page rendered, close the tab to continue")
	wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	if rp, ok := p.pages[id]; ok {
		rp.closed = true
	}
	p.mu.Unlock()
	return nil
}

// ClosePage closes the page opened for id.
func (p *RodPrinter) ClosePage(id string) error {
	p.mu.Lock()
	rp, ok := p.pages[id]
	delete(p.pages, id)
	p.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrPageNotFound, id)
	}
	return rp.close()
}

func (rp *rodPage) close() error {
	if rp.router != nil {
		_ = rp.router.Stop()
	}
	if rp.closed {
		return nil
	}
	rp.closed = true
	return rp.page.Close()
}

// Close closes every page, then the browser. A browser attached through an
// endpoint is left running.
func (p *RodPrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for id, rp := range p.pages {
		if err := rp.close(); err != nil {
			errs = append(errs, fmt.Errorf("closing page %s: %w", id, err))
		}
		delete(p.pages, id)
	}

	if p.browser != nil && p.launcher != nil {
		if err := p.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("closing browser: %w", err))
		}
	}
	p.browser = nil
	p.killLauncher()

	return errors.Join(errs...)
}

// printRequest converts opts to Chrome's print parameters.
func (o *PDFOptions) printRequest() (*proto.PagePrintToPDF, error) {
	width, height, err := o.paperInches()
	if err != nil {
		return nil, err
	}
	top, bottom, left, right, err := o.Margin.inches()
	if err != nil {
		return nil, err
	}
	if o.Scale != 0 && (o.Scale < 0.1 || o.Scale > 2) {
		return nil, fmt.Errorf("%w: scale %g (use 0.1 to 2)", ErrInvalidDimension, o.Scale)
	}

	req := &proto.PagePrintToPDF{
		Landscape:         o.Landscape,
		PrintBackground:   o.PrintBackground,
		PaperWidth:        floatPtr(width),
		PaperHeight:       floatPtr(height),
		MarginTop:         top,
		MarginBottom:      bottom,
		MarginLeft:        left,
		MarginRight:       right,
		PageRanges:        o.PageRanges,
		PreferCSSPageSize: o.PreferCSSPageSize,
	}
	if o.Scale != 0 {
		req.Scale = floatPtr(o.Scale)
	}

	if o.HeaderTemplate != "" || o.FooterTemplate != "" {
		req.DisplayHeaderFooter = true
		req.HeaderTemplate = cmp.Or(o.HeaderTemplate, emptyTemplate)
		req.FooterTemplate = cmp.Or(o.FooterTemplate, emptyTemplate)
	}
	return req, nil
}

// emptyTemplate hides Chrome's default header or footer.
const emptyTemplate = "<span></span>"

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
