package main

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// allowedExtensions lists the accepted extensions of filesystem inputs.
var allowedExtensions = []string{".htm", ".html", ".xhtml"}

// inputKind tells URLs given by the user from expanded files.
type inputKind int

const (
	kindURL inputKind = iota
	kindFile
)

func (k inputKind) String() string {
	if k == kindFile {
		return "file"
	}
	return "url"
}

// ResolvedInput is one document ready to render. ID is the URL as given,
// or the file:// URI of an expanded path.
type ResolvedInput struct {
	ID   string
	Kind inputKind
}

// resolveInputs classifies and expands raw inputs, preserving order:
// raw-input order first, then expansion order within a pattern.
// Any invalid filesystem input aborts resolution.
func resolveInputs(raw []string, cwd string, glob fileutil.GlobExpander) ([]ResolvedInput, error) {
	if len(raw) == 0 {
		return nil, ErrNoInput
	}

	var items []ResolvedInput
	for _, in := range raw {
		if fileutil.IsURL(in) {
			items = append(items, ResolvedInput{ID: in, Kind: kindURL})
			continue
		}

		paths, err := expandPattern(in, cwd, glob)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			items = append(items, ResolvedInput{ID: fileutil.FileURI(p), Kind: kindFile})
		}
	}
	return items, nil
}

// expandPattern validates a filesystem pattern and expands it to absolute
// file paths. The extension is checked on the pattern itself, and the
// static part of the pattern must exist before expansion.
func expandPattern(pattern, cwd string, glob fileutil.GlobExpander) ([]string, error) {
	ext := strings.ToLower(filepath.Ext(pattern))
	if !slices.Contains(allowedExtensions, ext) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidExtension, pattern)
	}

	base := fileutil.StaticBase(pattern)
	if !filepath.IsAbs(base) {
		base = filepath.Join(cwd, base)
	}
	if _, err := os.Stat(base); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, pattern)
	}

	paths, err := glob.Expand(pattern, cwd)
	if err != nil {
		return nil, fmt.Errorf("expanding %s: %w", pattern, err)
	}
	return paths, nil
}
