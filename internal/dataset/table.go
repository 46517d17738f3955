// Package dataset provides the tabular input/output layer for esolpred:
// reading the delimited input table and writing the prediction records
// document.  Rows are identified by their 0-based position in the input and
// their fields are carried verbatim; nothing in this package re-types or
// normalises passthrough values.
package dataset

import (
	"encoding/csv"
	"io"
	"os"

	"github.com/esolpred/esolpred/pkg/errors"
)

// Table is an immutable in-memory copy of one delimited input file.
type Table struct {
	// Columns is the header row in file order.
	Columns []string

	// Rows holds each data row's fields in column order.  A row's identity
	// is its index in this slice.
	Rows [][]string
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column, or -1 when the
// header does not contain it.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Column returns the values of the named column in row order.  The second
// return value is false when the column is absent.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out, true
}

// ReadCSV reads the comma-delimited file at path into a Table.  The first
// record is the header; every data record must have the same field count
// (the csv reader enforces this).  A missing file maps to CodeFileNotFound,
// any parse problem to CodeInvalidFormat.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(err, errors.CodeFileNotFound,
				"Input file not found: "+path)
		}
		return nil, errors.Wrap(err, errors.CodeInvalidFormat,
			"Error reading CSV file: "+path)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err == io.EOF {
		return nil, errors.New(errors.CodeInvalidFormat,
			"Input CSV has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidFormat,
			"Error reading CSV file")
	}

	var rows [][]string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInvalidFormat,
				"Error reading CSV file")
		}
		rows = append(rows, record)
	}

	return &Table{Columns: header, Rows: rows}, nil
}
