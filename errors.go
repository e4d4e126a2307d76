package html2pdf

import "errors"

// Sentinel errors for printer operations.
var (
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrHTMLCapture    = errors.New("HTML capture failed")
	ErrPageNotFound   = errors.New("page not open")
	ErrInjectAsset    = errors.New("failed to inject asset")
	ErrOutline        = errors.New("outline generation failed")

	// Print settings validation errors.
	ErrInvalidPageSize  = errors.New("invalid page size")
	ErrInvalidDimension = errors.New("invalid dimension")
	ErrInvalidMedia     = errors.New("invalid media type")
)
