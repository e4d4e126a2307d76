package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrInvalidPattern is returned when a glob pattern cannot be parsed.
var ErrInvalidPattern = errors.New("invalid glob pattern")

// ignoredDirs lists directory names never descended into by expansion.
var ignoredDirs = []string{"node_modules"}

// GlobExpander expands a filesystem pattern into absolute file paths.
type GlobExpander interface {
	Expand(pattern, cwd string) ([]string, error)
}

// Compile-time interface implementation check.
var _ GlobExpander = (*DoublestarExpander)(nil)

// DoublestarExpander implements GlobExpander with doublestar, so "**"
// matches across directories. Only regular files are returned.
type DoublestarExpander struct{}

// HasMeta reports whether pattern contains glob metacharacters.
func HasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}

// StaticBase returns the directory prefix of pattern that contains no
// metacharacters. For a literal path it returns the path itself.
func StaticBase(pattern string) string {
	if !HasMeta(pattern) {
		return pattern
	}
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// Expand resolves pattern relative to cwd. Results are absolute paths in
// the order doublestar walks the tree (lexical within each directory).
func (DoublestarExpander) Expand(pattern, cwd string) ([]string, error) {
	abs := pattern
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, pattern)
	}

	base, rel := doublestar.SplitPattern(filepath.ToSlash(abs))
	if !doublestar.ValidatePattern(rel) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPattern, pattern)
	}

	baseDir := filepath.FromSlash(base)
	matches, err := doublestar.Glob(os.DirFS(baseDir), rel, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidPattern, pattern, err)
	}

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		if isIgnored(m) {
			continue
		}
		paths = append(paths, filepath.Join(baseDir, filepath.FromSlash(m)))
	}
	return paths, nil
}

// isIgnored reports whether any segment of the slash-separated path is an
// ignored directory.
func isIgnored(slashPath string) bool {
	segments := strings.Split(slashPath, "/")
	for _, seg := range segments[:len(segments)-1] {
		if slices.Contains(ignoredDirs, seg) {
			return true
		}
	}
	return false
}
