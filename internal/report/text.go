package report

import (
	"context"
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/myrjola/bayescalc/internal/errors"
)

// TextRenderer writes a fixed-width terminal table or, with markdown set, a GitHub-flavoured Markdown document.
type TextRenderer struct {
	markdown bool
}

func NewTextRenderer(markdown bool) TextRenderer {
	return TextRenderer{markdown: markdown}
}

func (r TextRenderer) Render(_ context.Context, w io.Writer, rep Report) error {
	tw := table.NewWriter()
	header := make(table.Row, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	tw.AppendHeader(header)
	for _, row := range rep.Rows {
		cells := row.Cells()
		tr := make(table.Row, len(cells))
		for i, c := range cells {
			tr[i] = c
		}
		tw.AppendRow(tr)
	}
	numberColumns := []int{2, 3, 4, 6, 7} //nolint:mnd // 1-based columns holding numbers
	configs := make([]table.ColumnConfig, 0, len(numberColumns))
	for _, n := range numberColumns {
		configs = append(configs, table.ColumnConfig{Number: n, Align: text.AlignRight})
	}
	tw.SetColumnConfigs(configs)

	var out string
	if r.markdown {
		out = fmt.Sprintf("# %s\n\n**Prior:** %s\n\n**Final posterior:** %s\n\n**Interpretation:** %s\n\n%s\n",
			rep.Title, rep.Prior, rep.PosteriorPercent, rep.Conclusion, tw.RenderMarkdown())
	} else {
		tw.SetStyle(table.StyleLight)
		out = fmt.Sprintf("%s\n\nPrior:           %s\nFinal posterior: %s\nInterpretation:  %s\n\n%s\n",
			rep.Title, rep.Prior, rep.PosteriorPercent, rep.Conclusion, tw.Render())
	}
	if _, err := io.WriteString(w, out); err != nil {
		return errors.Wrap(err, "write text report")
	}
	return nil
}

func (r TextRenderer) ContentType() string {
	if r.markdown {
		return "text/markdown; charset=utf-8"
	}
	return "text/plain; charset=utf-8"
}

func (r TextRenderer) Extension() string {
	if r.markdown {
		return "md"
	}
	return "txt"
}
