package main

import (
	"io"
	"os"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
	"github.com/alnah/go-html2pdf/internal/progress"
)

// ProgressReporter displays batch progress.
type ProgressReporter interface {
	Start(total int)
	Increment(n int)
	UpdateText(text string)
	UpdateTitle(title string)
	UpdateNumber(v int)
	Stop()
}

// Compile-time interface implementation check.
var _ ProgressReporter = (*progress.Bar)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, process environment, filesystem and the rendering backend.
type Environment struct {
	Stdout  io.Writer
	Stderr  io.Writer
	Getwd   func() (string, error)
	Getenv  func(string) string
	Environ func() []string

	Glob   fileutil.GlobExpander
	Writer fileutil.SafeWriter

	NewPrinter  func(html2pdf.Options) html2pdf.Printer
	NewProgress func(w io.Writer, indeterminate bool) ProgressReporter
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Getwd:   os.Getwd,
		Getenv:  os.Getenv,
		Environ: os.Environ,
		Glob:    fileutil.DoublestarExpander{},
		Writer:  fileutil.AtomicWriter{},
		NewPrinter: func(opts html2pdf.Options) html2pdf.Printer {
			return html2pdf.NewRodPrinter(opts)
		},
		NewProgress: func(w io.Writer, indeterminate bool) ProgressReporter {
			return progress.New(w, indeterminate)
		},
	}
}
