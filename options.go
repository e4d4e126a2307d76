package html2pdf

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Defaults applied by NewRodPrinter when the matching option is zero.
const (
	DefaultTimeout = 30 * time.Second
	DefaultMedia   = MediaPrint
)

// Emulated media types.
const (
	MediaPrint  = "print"
	MediaScreen = "screen"
)

// DefaultOutlineTags are the heading tags turned into PDF bookmarks.
var DefaultOutlineTags = []string{"h1", "h2", "h3"}

// Options configures a RodPrinter for the lifetime of a run.
type Options struct {
	Headless          bool
	Debug             bool          // visible window with devtools
	Timeout           time.Duration // per page load
	BrowserEndpoint   string        // ws:// or http:// of a running browser
	BrowserArgs       []string      // extra "--name=value" launch flags
	IgnoreHTTPSErrors bool
	Media             string // "print" or "screen"
	Access            AccessPolicy
	Scripts           []string // URLs or file paths
	Styles            []string // URLs or file paths
	Warn              bool     // log console warnings and blocked requests

	// Logger receives warnings and debug records. Nil discards them.
	Logger logrus.FieldLogger
}

// Validate checks the option values that can be checked without a browser.
func (o *Options) Validate() error {
	switch o.Media {
	case "", MediaPrint, MediaScreen:
	default:
		return fmt.Errorf("%w: %q (use print or screen)", ErrInvalidMedia, o.Media)
	}
	return nil
}

// PDFOptions holds per-document print settings.
type PDFOptions struct {
	PageSize          string // named format, see PageSizes
	Width             string // overrides PageSize when set with Height
	Height            string
	Landscape         bool
	Scale             float64 // 0 means 1
	Margin            Margin
	PrintBackground   bool
	OmitBackground    bool
	PreferCSSPageSize bool
	PageRanges        string
	HeaderTemplate    string
	FooterTemplate    string
	Outline           OutlineOptions
}

// OutlineOptions selects the headings turned into PDF bookmarks.
// An empty Tags list disables the outline.
type OutlineOptions struct {
	ContainerSelector string
	Tags              []string
}

// Margin holds per-side page margins as CSS-like lengths ("1cm", "0.5in",
// "20px", or a bare number of pixels). Empty sides use the browser default.
type Margin struct {
	Top    string
	Bottom string
	Left   string
	Right  string
}

// IsZero reports whether no side is set.
func (m Margin) IsZero() bool {
	return m == Margin{}
}

// ParseMargin parses a comma-separated list of side=value pairs such as
// "top=1cm,bottom=2cm". Only top, bottom, left and right are kept; other
// keys and malformed items are dropped. Later pairs win.
func ParseMargin(s string) Margin {
	var m Margin
	for item := range strings.SplitSeq(s, ",") {
		key, value, _ := strings.Cut(item, "=")
		switch strings.TrimSpace(key) {
		case "top":
			m.Top = strings.TrimSpace(value)
		case "bottom":
			m.Bottom = strings.TrimSpace(value)
		case "left":
			m.Left = strings.TrimSpace(value)
		case "right":
			m.Right = strings.TrimSpace(value)
		}
	}
	return m
}

// Validate checks that every set side is a valid length.
func (m Margin) Validate() error {
	_, _, _, _, err := m.inches()
	return err
}

// inches converts every set side, leaving unset sides nil.
func (m Margin) inches() (top, bottom, left, right *float64, err error) {
	conv := func(side, v string) (*float64, error) {
		if v == "" {
			return nil, nil
		}
		in, err := ParseLength(v)
		if err != nil {
			return nil, fmt.Errorf("margin %s: %w", side, err)
		}
		return &in, nil
	}
	if top, err = conv("top", m.Top); err != nil {
		return
	}
	if bottom, err = conv("bottom", m.Bottom); err != nil {
		return
	}
	if left, err = conv("left", m.Left); err != nil {
		return
	}
	right, err = conv("right", m.Right)
	return
}
