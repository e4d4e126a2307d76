package html2pdf

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Paper dimensions in inches.
type paperSize struct {
	width, height float64
}

// pageSizes maps the named formats accepted by PDFOptions.PageSize.
var pageSizes = map[string]paperSize{
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
	"ledger":  {17, 11},
	"a0":      {33.1, 46.8},
	"a1":      {23.4, 33.1},
	"a2":      {16.54, 23.4},
	"a3":      {11.7, 16.54},
	"a4":      {8.27, 11.7},
	"a5":      {5.83, 8.27},
	"a6":      {4.13, 5.83},
}

// DefaultPageSize is used when neither a format nor dimensions are given.
const DefaultPageSize = "letter"

const pxPerInch = 96.0

// Length units as a factor to inches.
var unitToInches = map[string]float64{
	"px": 1 / pxPerInch,
	"in": 1,
	"cm": 1 / 2.54,
	"mm": 1 / 25.4,
}

// PageSizes returns the accepted format names in sorted order.
func PageSizes() []string {
	names := make([]string, 0, len(pageSizes))
	for name := range pageSizes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ValidatePageSize checks size against the named formats (case-insensitive).
// An empty size is valid and means DefaultPageSize.
func ValidatePageSize(size string) error {
	if size == "" {
		return nil
	}
	if _, ok := pageSizes[strings.ToLower(size)]; !ok {
		return fmt.Errorf("%w: %q (use %s)", ErrInvalidPageSize, size, strings.Join(PageSizes(), ", "))
	}
	return nil
}

// ParseLength converts a length ("10mm", "1.5in", "2cm", "96px" or a bare
// pixel count) to inches.
func ParseLength(s string) (float64, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return 0, fmt.Errorf("%w: empty length", ErrInvalidDimension)
	}

	factor := unitToInches["px"]
	num := s
	if len(s) > 2 {
		if f, ok := unitToInches[s[len(s)-2:]]; ok {
			factor = f
			num = strings.TrimSpace(s[:len(s)-2])
		}
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDimension, s)
	}
	return v * factor, nil
}

// paperInches resolves the portrait sheet size in inches. Explicit
// dimensions win over the named format.
func (o *PDFOptions) paperInches() (width, height float64, err error) {
	switch {
	case o.Width != "" || o.Height != "":
		if o.Width == "" || o.Height == "" {
			return 0, 0, fmt.Errorf("%w: width and height must be set together", ErrInvalidDimension)
		}
		if width, err = ParseLength(o.Width); err != nil {
			return 0, 0, err
		}
		if height, err = ParseLength(o.Height); err != nil {
			return 0, 0, err
		}
		if width == 0 || height == 0 {
			return 0, 0, fmt.Errorf("%w: %sx%s", ErrInvalidDimension, o.Width, o.Height)
		}
	default:
		name := strings.ToLower(o.PageSize)
		if name == "" {
			name = DefaultPageSize
		}
		size, ok := pageSizes[name]
		if !ok {
			return 0, 0, ValidatePageSize(o.PageSize)
		}
		width, height = size.width, size.height
	}

	return width, height, nil
}
