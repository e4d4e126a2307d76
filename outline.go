package html2pdf

import (
	"bytes"
	"fmt"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Chrome's margin when none is given, in inches.
const defaultMarginInches = 0.4

// headingOffsetsJS returns the document-space top offset of every heading
// under the container, in document order.
const headingOffsetsJS = `(selector, tags) => {
	const root = selector ? document.querySelector(selector) : document.body;
	if (!root) return [];
	return Array.from(root.querySelectorAll(tags)).map(
		el => el.getBoundingClientRect().top + window.scrollY);
}`

// heading is one outline entry before page assignment.
type heading struct {
	Tag   string
	Title string
	Top   float64 // CSS px from the top of the document
}

// extractHeadings lists the headings under selector (or body) in document
// order. Titles are whitespace-normalized text content.
func extractHeadings(doc, selector string, tags []string) ([]heading, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: parsing document: %v", ErrOutline, err)
	}

	root := d.Find("body").First()
	if selector != "" {
		root = d.Find(selector).First()
	}
	if root.Length() == 0 {
		return nil, nil
	}

	var hs []heading
	root.Find(strings.Join(tags, ",")).Each(func(_ int, s *goquery.Selection) {
		hs = append(hs, heading{
			Tag:   goquery.NodeName(s),
			Title: strings.Join(strings.Fields(s.Text()), " "),
		})
	})
	return hs, nil
}

// printableHeightPx is the CSS-pixel height of content on one page.
func printableHeightPx(opts PDFOptions) (float64, error) {
	width, height, err := opts.paperInches()
	if err != nil {
		return 0, err
	}
	if opts.Landscape {
		height = width
	}

	top, bottom, _, _, err := opts.Margin.inches()
	if err != nil {
		return 0, err
	}
	marginTop, marginBottom := defaultMarginInches, defaultMarginInches
	if top != nil {
		marginTop = *top
	}
	if bottom != nil {
		marginBottom = *bottom
	}

	scale := opts.Scale
	if scale <= 0 {
		scale = 1
	}

	px := (height - marginTop - marginBottom) * pxPerInch / scale
	if px <= 0 {
		return 0, fmt.Errorf("%w: margins leave no printable height", ErrOutline)
	}
	return px, nil
}

// buildBookmarks assigns pages to headings and nests them by the rank of
// their tag in tags (first tag is the top level). Headings without a title
// are skipped. Pages never decrease in document order.
func buildBookmarks(hs []heading, tags []string, pageHeightPx float64, pageCount int) []pdfcpu.Bookmark {
	type node struct {
		bm   pdfcpu.Bookmark
		rank int
		kids []*node
	}

	pageCount = max(pageCount, 1)
	var roots, stack []*node
	lastPage := 1
	for _, h := range hs {
		if h.Title == "" {
			continue
		}
		rank := slices.Index(tags, strings.ToLower(h.Tag))
		if rank < 0 {
			continue
		}

		page := int(max(h.Top, 0)/pageHeightPx) + 1
		page = min(max(page, lastPage), pageCount)
		lastPage = page

		n := &node{bm: pdfcpu.Bookmark{Title: h.Title, PageFrom: page}, rank: rank}
		for len(stack) > 0 && stack[len(stack)-1].rank >= rank {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, n)
		} else {
			parent := stack[len(stack)-1]
			parent.kids = append(parent.kids, n)
		}
		stack = append(stack, n)
	}

	var convert func([]*node) []pdfcpu.Bookmark
	convert = func(nodes []*node) []pdfcpu.Bookmark {
		if len(nodes) == 0 {
			return nil
		}
		out := make([]pdfcpu.Bookmark, 0, len(nodes))
		for _, n := range nodes {
			bm := n.bm
			bm.Kids = convert(n.kids)
			out = append(out, bm)
		}
		return out
	}
	return convert(roots)
}

// addBookmarks writes bms into pdf, replacing any existing outline.
func addBookmarks(pdf []byte, bms []pdfcpu.Bookmark) ([]byte, error) {
	if len(bms) == 0 {
		return pdf, nil
	}
	var out bytes.Buffer
	if err := api.AddBookmarks(bytes.NewReader(pdf), &out, bms, true, model.NewDefaultConfiguration()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOutline, err)
	}
	return out.Bytes(), nil
}

// pageCount counts the pages of pdf.
func pageCount(pdf []byte) (int, error) {
	n, err := api.PageCount(bytes.NewReader(pdf), model.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("%w: counting pages: %v", ErrOutline, err)
	}
	return n, nil
}

// normalizeTags lowercases tags and drops blanks.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			out = append(out, t)
		}
	}
	return out
}
