package scenarios

import (
	"encoding/csv"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/myrjola/bayescalc/internal/errors"
	"github.com/myrjola/bayescalc/internal/models"
)

// CSV column names.
const (
	ColumnType           = "type"
	ColumnDescription    = "desc"
	ColumnPGivenGuilty   = "pba"
	ColumnPGivenInnocent = "pbna"
	ColumnPrior          = "prior"

	// legacyColumnType is the type column's name in files written by earlier versions.
	legacyColumnType = "typ"
)

// ContentType of the scenario CSV format.
const ContentType = "text/csv; charset=utf-8"

var header = []string{ColumnType, ColumnDescription, ColumnPGivenGuilty, ColumnPGivenInnocent, ColumnPrior}

// WriteCSV writes s as a CSV table with a header row.
//
// Numbers use the shortest representation that parses back to the same float64.
func WriteCSV(w io.Writer, s models.Scenario) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return errors.Wrap(err, "write header")
	}
	for i, r := range ToRecords(s) {
		row := []string{
			r.Type,
			r.Description,
			formatFloat(r.PGivenGuilty),
			formatFloat(r.PGivenInnocent),
			formatFloat(r.Prior),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "write record", slog.Int("record", i))
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Wrap(err, "flush csv")
	}
	return nil
}

// ReadCSV reads a scenario written by [WriteCSV].
//
// Columns are located by their header name so their order doesn't matter and extra columns are ignored. A "typ"
// column is read as the type column when no "type" column exists.
// Errors describing malformed input are of type [*ScenarioFormatError].
func ReadCSV(r io.Reader) (models.Scenario, []Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	rows, err := cr.ReadAll()
	if err != nil {
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			return models.Scenario{}, nil, &ScenarioFormatError{Line: parseErr.Line, Field: "", Reason: parseErr.Err.Error()}
		}
		return models.Scenario{}, nil, errors.Wrap(err, "read csv")
	}
	if len(rows) == 0 {
		return models.Scenario{}, nil, &ScenarioFormatError{Line: 0, Field: "", Reason: "missing header"}
	}

	columns := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		columns[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	if _, ok := columns[ColumnType]; !ok {
		if i, legacy := columns[legacyColumnType]; legacy {
			columns[ColumnType] = i
		}
	}
	for _, name := range header {
		if _, ok := columns[name]; !ok {
			return models.Scenario{}, nil, &ScenarioFormatError{Line: 1, Field: name, Reason: "missing column"}
		}
	}

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		var (
			record Record
			line   = i + 2 //nolint:mnd // 1-based and after the header
		)
		if record, err = parseRow(row, columns, line); err != nil {
			return models.Scenario{}, nil, err
		}
		records = append(records, record)
	}
	return FromRecords(records)
}

func parseRow(row []string, columns map[string]int, line int) (Record, error) {
	field := func(name string) (string, error) {
		idx := columns[name]
		if idx >= len(row) {
			return "", &ScenarioFormatError{Line: line, Field: name, Reason: "missing value"}
		}
		return row[idx], nil
	}
	number := func(name string) (float64, error) {
		raw, err := field(name)
		if err != nil {
			return 0, err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return 0, &ScenarioFormatError{Line: line, Field: name, Reason: "missing value"}
		}
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, &ScenarioFormatError{Line: line, Field: name, Reason: "not a number: " + raw}
		}
		return f, nil
	}

	var (
		record Record
		err    error
	)
	if record.Type, err = field(ColumnType); err != nil {
		return Record{}, err
	}
	record.Type = strings.TrimSpace(record.Type)
	if record.Description, err = field(ColumnDescription); err != nil {
		return Record{}, err
	}
	if record.PGivenGuilty, err = number(ColumnPGivenGuilty); err != nil {
		return Record{}, err
	}
	if record.PGivenInnocent, err = number(ColumnPGivenInnocent); err != nil {
		return Record{}, err
	}
	if record.Prior, err = number(ColumnPrior); err != nil {
		return Record{}, err
	}
	return record, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
