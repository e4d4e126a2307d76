// Package html2pdf prints HTML documents to PDF, or captures their rendered
// markup, using headless Chrome.
//
// # Quick Start
//
// Create a printer, print a document, and close when done:
//
//	p := html2pdf.NewRodPrinter(html2pdf.Options{Headless: true})
//	defer p.Close()
//
//	pdf, err := p.PDF(ctx, "file:///tmp/report.html", html2pdf.PDFOptions{
//	    PageSize: "a4",
//	    Margin:   html2pdf.ParseMargin("top=1cm,bottom=1cm"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = p.ClosePage("file:///tmp/report.html")
//
// One browser serves the whole run; every document gets its own page,
// opened on first use and released with ClosePage.
//
// # Print Settings
//
// PDFOptions selects the paper by name (letter, legal, tabloid, ledger,
// a0 to a6) or by explicit Width and Height. Lengths accept px, in, cm and
// mm; bare numbers are pixels. Header and footer templates use Chrome's
// pageNumber, totalPages, date, title and url classes.
//
// # Outline
//
// When PDFOptions.Outline.Tags is set, the headings under the container
// become PDF bookmarks nested by tag order:
//
//	PDFOptions{Outline: html2pdf.OutlineOptions{
//	    ContainerSelector: "main",
//	    Tags:              html2pdf.DefaultOutlineTags,
//	}}
//
// # Access Control
//
// AccessPolicy blocks local files, remote hosts, or both, for the
// sub-resources of a document. The document itself always loads.
//
// # Browser
//
// Without Options.BrowserEndpoint a browser is launched (ROD_BROWSER_BIN
// selects the binary). With an endpoint, the printer attaches to a running
// browser and leaves it running on Close.
package html2pdf
