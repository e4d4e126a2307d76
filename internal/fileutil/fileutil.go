// Package fileutil provides path, URL and file-writing helpers for the CLI.
package fileutil

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsURL returns true if s parses as an absolute URL with a scheme.
// Single-letter schemes are rejected so Windows drive paths ("C:\x.html")
// stay classified as filesystem patterns.
//
// Examples:
//   - "https://example.com/" -> true
//   - "file:///tmp/page.html" -> true
//   - "about:blank" -> true
//   - "docs/*.html" -> false
//   - "C:\docs\page.html" -> false
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if len(u.Scheme) < 2 {
		return false
	}
	return u.Host != "" || u.Opaque != "" || u.Scheme == "file"
}

// FileURI converts an absolute filesystem path to a file:// URI.
func FileURI(absPath string) string {
	p := filepath.ToSlash(absPath)
	if !strings.HasPrefix(p, "/") {
		// Windows drive paths need a leading slash: file:///C:/x.html
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p}
	return u.String()
}

// ReplaceExt swaps the extension of the final path element for ext.
// A name without extension simply gets ext appended.
func ReplaceExt(p, ext string) string {
	return strings.TrimSuffix(p, filepath.Ext(p)) + ext
}
