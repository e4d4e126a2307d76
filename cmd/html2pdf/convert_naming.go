package main

import (
	"cmp"
	"net/url"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

const (
	pdfExt  = ".pdf"
	htmlExt = ".html"
)

// namingOptions holds the settings that influence output names.
type namingOptions struct {
	outFile string
	html    bool
}

// deriveName returns the output file name for item. Rules, first match wins:
//
//  1. single-item batch with an explicit name: the name, with ".pdf"
//     appended when missing (unless capturing HTML)
//  2. URL without a path: "<host>.pdf", or "index.pdf" without a host
//  3. path ending in "/": its segments joined with "_" plus ".pdf"
//  4. otherwise the last segment with its extension replaced by ".pdf"
//
// Names are not deduplicated across a batch.
func deriveName(item ResolvedInput, batchSize int, opts namingOptions) string {
	if batchSize == 1 && opts.outFile != "" {
		if opts.html || strings.HasSuffix(opts.outFile, pdfExt) {
			return opts.outFile
		}
		return opts.outFile + pdfExt
	}

	u, err := url.Parse(item.ID)
	if err != nil {
		return fileutil.ReplaceExt(path.Base(item.ID), pdfExt)
	}

	segments := slices.DeleteFunc(strings.Split(u.Path, "/"), func(s string) bool { return s == "" })
	if len(segments) == 0 {
		return cmp.Or(u.Hostname(), "index") + pdfExt
	}
	if strings.HasSuffix(u.Path, "/") {
		return strings.Join(segments, "_") + pdfExt
	}
	return fileutil.ReplaceExt(segments[len(segments)-1], pdfExt)
}

// outputPath joins the destination directory and name. An absolute outDir
// or name is used as-is; relative ones are resolved against cwd.
func outputPath(cwd, outDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	if filepath.IsAbs(outDir) {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(cwd, outDir, name)
}
