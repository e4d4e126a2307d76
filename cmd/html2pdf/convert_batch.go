package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"

	html2pdf "github.com/alnah/go-html2pdf"
	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// outcome classifies how one item ended.
type outcome int

const (
	outcomeOK          outcome = iota // written, printed to stdout, or rendered
	outcomeRecoverable                // logged, batch continues
	outcomeFatal                      // batch aborts
)

// RenderError reports a failed render of one input. It never stops a batch.
type RenderError struct {
	Input string
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("rendering %s: %v", e.Input, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	Input    string
	Output   string // empty when nothing was written
	Err      error
	Duration time.Duration
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// batch converts resolved inputs one at a time with a single printer.
type batch struct {
	printer  html2pdf.Printer
	writer   fileutil.SafeWriter
	progress ProgressReporter
	log      logrus.FieldLogger
	stdout   io.Writer
	cwd      string
	settings *runSettings
}

// run converts items in order. Render failures are logged and skipped;
// a fatal outcome or a cancelled ctx stops the loop. The printer is closed
// and progress stopped before run returns, whatever the outcome.
func (b *batch) run(ctx context.Context, items []ResolvedInput) error {
	if len(items) == 0 {
		b.log.Warn("no input files matched")
	}

	results, err := b.process(ctx, items)

	if cerr := b.printer.Close(); cerr != nil {
		b.log.WithError(cerr).Warn("closing browser")
	}
	b.progress.Stop()

	if err != nil {
		return err
	}
	if len(items) > 1 && !b.settings.debug {
		b.printSummary(countResults(results), len(items))
	}
	return nil
}

// process is the item loop of run.
func (b *batch) process(ctx context.Context, items []ResolvedInput) ([]ConversionResult, error) {
	b.progress.Start(len(items))

	results := make([]ConversionResult, 0, len(items))
	for _, item := range items {
		if ctx.Err() != nil {
			return results, fmt.Errorf("%w: stopped before %s", ErrInterrupted, item.ID)
		}

		res, out := b.convertOne(ctx, item, len(items))
		results = append(results, res)

		switch out {
		case outcomeFatal:
			return results, res.Err
		case outcomeRecoverable:
			entry := b.log.WithError(res.Err).WithField("input", item.ID)
			if errors.Is(res.Err, context.DeadlineExceeded) {
				entry = entry.WithField("hint", "raise --timeout for slow pages")
			}
			entry.Error("conversion failed")
			// Failed items still count as processed.
			b.progress.UpdateNumber(len(results))
		}
	}
	return results, nil
}

// convertOne renders one item and writes its output. The item's page is
// closed before returning.
func (b *batch) convertOne(ctx context.Context, item ResolvedInput, batchSize int) (ConversionResult, outcome) {
	start := time.Now()
	defer b.closePage(item.ID)

	s := b.settings
	res := ConversionResult{Input: item.ID}
	passThrough := batchSize == 1 && s.outFile == stdoutName

	var out string
	if !passThrough {
		name := deriveName(item, batchSize, namingOptions{outFile: s.outFile, html: s.html})
		out = outputPath(b.cwd, s.outDir, name)
		b.progress.UpdateTitle(name)
	}

	b.progress.UpdateText(progressText(s))

	var data []byte
	var err error
	switch {
	case s.html:
		data, err = b.printer.HTML(ctx, item.ID)
		if out != "" {
			out = fileutil.ReplaceExt(out, htmlExt)
		}
	case s.debug:
		err = b.printer.Render(ctx, item.ID)
	default:
		data, err = b.printer.PDF(ctx, item.ID, s.pdf)
	}
	res.Duration = time.Since(start)
	if err != nil {
		res.Err = err
		return res, b.classifyRenderError(ctx, &res, item)
	}
	if len(data) == 0 {
		return res, outcomeOK
	}

	if passThrough {
		if _, err := b.stdout.Write(data); err != nil {
			res.Err = fmt.Errorf("%w: stdout: %v", ErrWriteOutput, err)
			return res, outcomeFatal
		}
		b.progress.Increment(1)
		return res, outcomeOK
	}

	if err := b.writer.WriteFile(out, data); err != nil {
		res.Err = fmt.Errorf("%w: %s: %v", ErrWriteOutput, out, err)
		return res, outcomeFatal
	}
	res.Output = out
	res.Duration = time.Since(start)
	b.progress.Increment(1)

	b.log.WithFields(logrus.Fields{
		"input":    item.ID,
		"output":   out,
		"duration": res.Duration.Round(time.Millisecond),
	}).Debug("converted")

	if batchSize == 1 {
		fmt.Fprintf(b.stdout, "%s %s %s\n", color.GreenString("✓"), color.New(color.Faint).Sprint("Saved to"), out)
	}
	return res, outcomeOK
}

// progressText names the work done on each item in the current mode.
func progressText(s *runSettings) string {
	switch {
	case s.html:
		return "Capturing HTML"
	case s.debug:
		return "Rendering"
	default:
		return "Generating PDF"
	}
}

// classifyRenderError decides whether a render error ends the batch.
// A browser that cannot be reached fails every item alike, and a
// cancelled run must not continue; anything else is item-local.
func (b *batch) classifyRenderError(ctx context.Context, res *ConversionResult, item ResolvedInput) outcome {
	switch {
	case errors.Is(res.Err, html2pdf.ErrBrowserConnect):
		return outcomeFatal
	case ctx.Err() != nil:
		res.Err = fmt.Errorf("%w: %s: %v", ErrInterrupted, item.ID, res.Err)
		return outcomeFatal
	}
	res.Err = &RenderError{Input: item.ID, Err: res.Err}
	return outcomeRecoverable
}

// closePage releases the item's page. Pages that were never opened are
// not an error.
func (b *batch) closePage(id string) {
	err := b.printer.ClosePage(id)
	if err != nil && !errors.Is(err, html2pdf.ErrPageNotFound) {
		b.log.WithError(err).WithField("input", id).Warn("closing page")
	}
}

// printSummary reports where a multi-item batch was written.
func (b *batch) printSummary(summary ResultSummary, total int) {
	dir := outputPath(b.cwd, b.settings.outDir, "")
	fmt.Fprintf(b.stdout, "%s %s %s (%d/%d)\n",
		color.GreenString("✓"), color.New(color.Faint).Sprint("Saved to"), dir, summary.Succeeded, total)
	if summary.Failed > 0 {
		fmt.Fprintf(b.stdout, "%s %d failed, see the log above\n", color.YellowString("!"), summary.Failed)
	}
}
