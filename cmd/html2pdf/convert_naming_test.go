package main

import (
	"path/filepath"
	"testing"
)

// ---------------------------------------------------------------------------
// TestDeriveName - Output file names
// ---------------------------------------------------------------------------

func TestDeriveName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		id        string
		batchSize int
		opts      namingOptions
		want      string
	}{
		{"explicit name gets extension", "https://example.com/a.html", 1, namingOptions{outFile: "report"}, "report.pdf"},
		{"explicit name keeps extension", "https://example.com/a.html", 1, namingOptions{outFile: "report.pdf"}, "report.pdf"},
		{"explicit name in html mode", "https://example.com/a.html", 1, namingOptions{outFile: "report", html: true}, "report"},
		{"explicit name ignored in batch", "https://example.com/a.html", 2, namingOptions{outFile: "report"}, "a.pdf"},
		{"root url", "https://example.com/", 1, namingOptions{}, "example.com.pdf"},
		{"root url without slash", "https://www.example.com", 3, namingOptions{}, "www.example.com.pdf"},
		{"root url with port", "http://localhost:8080/", 1, namingOptions{}, "localhost.pdf"},
		{"trailing slash", "https://example.com/docs/guide/", 1, namingOptions{}, "docs_guide.pdf"},
		{"last segment", "https://example.com/docs/intro.html", 1, namingOptions{}, "intro.pdf"},
		{"query dropped", "https://example.com/page?id=3", 1, namingOptions{}, "page.pdf"},
		{"no extension", "https://example.com/about", 1, namingOptions{}, "about.pdf"},
		{"file uri", "file:///srv/site/index.xhtml", 2, namingOptions{}, "index.pdf"},
		{"file uri with spaces", "file:///srv/my%20site/read%20me.htm", 2, namingOptions{}, "read me.pdf"},
		{"data url", "data:text/html,<h1>x</h1>", 1, namingOptions{}, "index.pdf"},
		{"about url", "about:blank", 2, namingOptions{}, "index.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := deriveName(ResolvedInput{ID: tt.id}, tt.batchSize, tt.opts)
			if got != tt.want {
				t.Errorf("deriveName(%q, %d) = %q, want %q", tt.id, tt.batchSize, got, tt.want)
			}
		})
	}
}

func TestDeriveName_CollisionsNotDeduplicated(t *testing.T) {
	t.Parallel()

	a := deriveName(ResolvedInput{ID: "file:///a/index.html"}, 2, namingOptions{})
	b := deriveName(ResolvedInput{ID: "file:///b/index.html"}, 2, namingOptions{})
	if a != b {
		t.Errorf("names = %q, %q; want the same name for the same basename", a, b)
	}
}

// ---------------------------------------------------------------------------
// TestOutputPath - Destination joining
// ---------------------------------------------------------------------------

func TestOutputPath(t *testing.T) {
	t.Parallel()

	cwd := filepath.FromSlash("/work")
	abs := filepath.FromSlash("/srv/out")

	tests := []struct {
		name   string
		outDir string
		file   string
		want   string
	}{
		{"cwd only", "", "a.pdf", filepath.Join(cwd, "a.pdf")},
		{"relative dir", "out", "a.pdf", filepath.Join(cwd, "out", "a.pdf")},
		{"absolute dir", abs, "a.pdf", filepath.Join(abs, "a.pdf")},
		{"nested name", "", filepath.Join("sub", "a.pdf"), filepath.Join(cwd, "sub", "a.pdf")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := outputPath(cwd, tt.outDir, tt.file); got != tt.want {
				t.Errorf("outputPath(%q, %q, %q) = %q, want %q", cwd, tt.outDir, tt.file, got, tt.want)
			}
		})
	}
}

func TestOutputPath_OpaqueURLStaysInOutDir(t *testing.T) {
	t.Parallel()

	name := deriveName(ResolvedInput{ID: "data:text/html,<h1>x</h1>", Kind: kindURL}, 2, namingOptions{})
	got := outputPath("/work", "out", name)
	if filepath.Dir(got) != filepath.Join("/work", "out") {
		t.Errorf("outputPath() = %q, want a file directly under /work/out", got)
	}
}
