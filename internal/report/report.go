// Package report turns an update result into a document: a title, the final posterior, its interpretation and
// the step table. Renderer backends write the same Report as HTML, plain text, Markdown, CSV or PDF.
package report

import (
	"context"
	"io"
	"log/slog"

	"github.com/myrjola/bayescalc/internal/bayes"
	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/likelihood"
	"github.com/myrjola/bayescalc/internal/models"
	"github.com/myrjola/bayescalc/internal/probability"
)

// DefaultTitle is used when a report is generated without an explicit title.
const DefaultTitle = "Bayesian evidence calculator report"

// Columns are the headers of the step table in the order of the [Row] fields.
var Columns = []string{ //nolint:gochecknoglobals // constant table header
	"Evidence",
	"P(E|guilty)",
	"P(E|innocent)",
	"LR",
	"Strength",
	"Posterior before",
	"Posterior after",
}

// Row is one update step with display-ready values.
type Row struct {
	Kind            models.EvidenceKind
	Label           string
	PGivenGuilty    string
	PGivenInnocent  string
	LikelihoodRatio string
	Category        likelihood.Category
	PriorBefore     string
	PosteriorAfter  string
	// Posterior is the unformatted PosteriorAfter used by the posterior gauge.
	Posterior float64
}

// Cells returns the row values in [Columns] order.
func (r Row) Cells() []string {
	return []string{
		r.Label,
		r.PGivenGuilty,
		r.PGivenInnocent,
		r.LikelihoodRatio,
		string(r.Category),
		r.PriorBefore,
		r.PosteriorAfter,
	}
}

// Report is the data every renderer backend needs.
type Report struct {
	Title            string
	Prior            string
	Posterior        float64
	PosteriorPercent string
	Conclusion       bayes.Conclusion
	Rows             []Row
}

// New builds a report from result. An empty title is replaced with [DefaultTitle].
func New(title string, result bayes.Result) Report {
	if title == "" {
		title = DefaultTitle
	}
	rows := make([]Row, len(result.Steps))
	for i, step := range result.Steps {
		lr := step.LikelihoodRatio()
		rows[i] = Row{
			Kind:            step.Kind,
			Label:           step.Label,
			PGivenGuilty:    probability.FormatPercent(step.PGivenGuilty),
			PGivenInnocent:  probability.FormatPercent(step.PGivenInnocent),
			LikelihoodRatio: probability.FormatLikelihoodRatio(lr),
			Category:        likelihood.Categorize(lr),
			PriorBefore:     probability.FormatPercent(step.PriorBefore),
			PosteriorAfter:  probability.FormatPercent(step.PosteriorAfter),
			Posterior:       step.PosteriorAfter,
		}
	}
	return Report{
		Title:            title,
		Prior:            probability.FormatPercent(result.Prior),
		Posterior:        result.Posterior,
		PosteriorPercent: probability.FormatPercent(result.Posterior),
		Conclusion:       result.Conclusion,
		Rows:             rows,
	}
}

// Renderer writes a report in one output format.
type Renderer interface {
	Render(ctx context.Context, w io.Writer, rep Report) error
	// ContentType is the MIME type of the output.
	ContentType() string
	// Extension is the file name extension of the output without the leading dot.
	Extension() string
}

// Format names a renderer backend.
type Format string

const (
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
)

// ErrUnknownFormat is returned by [ForFormat] for unsupported format names.
var ErrUnknownFormat = errors.NewSentinel("unknown report format")

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatHTML, FormatText, FormatMarkdown, FormatCSV, FormatPDF}
}

// ForFormat returns a renderer with default settings for the named format.
func ForFormat(name string) (Renderer, error) {
	switch Format(name) {
	case FormatHTML:
		return NewHTMLRenderer(), nil
	case FormatText:
		return NewTextRenderer(false), nil
	case FormatMarkdown:
		return NewTextRenderer(true), nil
	case FormatCSV:
		return CSVRenderer{}, nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, errors.Wrap(ErrUnknownFormat, "select renderer", slog.String("format", name))
	}
}
