package report

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/myrjola/bayescalc/internal/errors"
)

const (
	defaultPDFTimeout = 30 * time.Second
	// A4 in inches.
	a4Width  = 8.27
	a4Height = 11.69
)

// PDFRenderer prints the HTML report to an A4 PDF with a headless Chrome.
type PDFRenderer struct {
	html HTMLRenderer
	// ExecPath is the browser binary. Empty means chromedp's default lookup.
	ExecPath string
	Timeout  time.Duration
}

func NewPDFRenderer() PDFRenderer {
	return PDFRenderer{
		html:     NewHTMLRenderer(),
		ExecPath: "",
		Timeout:  defaultPDFTimeout,
	}
}

func (r PDFRenderer) Render(ctx context.Context, w io.Writer, rep Report) error {
	var doc bytes.Buffer
	if err := r.html.Render(ctx, &doc, rep); err != nil {
		return errors.Wrap(err, "render html")
	}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:], //nolint:gocritic // we want a copy
		chromedp.DisableGPU,
		chromedp.NoSandbox,
	)
	if r.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(r.ExecPath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	var pdf []byte
	if err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return errors.Wrap(err, "get frame tree")
			}
			if err = page.SetDocumentContent(frameTree.Frame.ID, doc.String()).Do(ctx); err != nil {
				return errors.Wrap(err, "set document content")
			}
			return nil
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(a4Width).
				WithPaperHeight(a4Height).
				Do(ctx)
			if err != nil {
				return errors.Wrap(err, "print to pdf")
			}
			return nil
		}),
	); err != nil {
		return errors.Wrap(err, "run browser")
	}

	if _, err := w.Write(pdf); err != nil {
		return errors.Wrap(err, "write pdf")
	}
	return nil
}

func (r PDFRenderer) ContentType() string { return "application/pdf" }

func (r PDFRenderer) Extension() string { return "pdf" }
