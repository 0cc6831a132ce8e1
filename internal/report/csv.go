package report

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/myrjola/bayescalc/internal/errors"
)

// CSVRenderer exports the step table. The title and summary are left out so that the file stays one table.
type CSVRenderer struct{}

func (CSVRenderer) Render(_ context.Context, w io.Writer, rep Report) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return errors.Wrap(err, "write header")
	}
	for _, row := range rep.Rows {
		if err := cw.Write(row.Cells()); err != nil {
			return errors.Wrap(err, "write row")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "flush csv")
	}
	return nil
}

func (CSVRenderer) ContentType() string { return "text/csv; charset=utf-8" }

func (CSVRenderer) Extension() string { return "csv" }
