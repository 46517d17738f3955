package dataset

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/esolpred/esolpred/pkg/errors"
)

// WriteRecords writes the success output: one JSON array whose elements are
// objects carrying every original column of a surviving row, in input column
// order, plus the prediction under predColumn rendered with exactly six
// fractional digits.
//
// Object keys are emitted by hand rather than through a map because
// encoding/json sorts map keys, which would destroy the input column order
// the output contract preserves.
func WriteRecords(w io.Writer, table *Table, survivors []int, preds []float64, predColumn string) error {
	if len(survivors) != len(preds) {
		return errors.Newf(errors.CodePrediction,
			"surviving rows (%d) and predictions (%d) are misaligned",
			len(survivors), len(preds))
	}

	bw := bufio.NewWriter(w)
	bw.WriteByte('[')

	for i, rowIdx := range survivors {
		if rowIdx < 0 || rowIdx >= len(table.Rows) {
			return errors.Newf(errors.CodePrediction,
				"surviving index %d is outside the input table", rowIdx)
		}
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('{')
		for j, col := range table.Columns {
			if j > 0 {
				bw.WriteByte(',')
			}
			writeJSONString(bw, col)
			bw.WriteByte(':')
			writeJSONString(bw, table.Rows[rowIdx][j])
		}
		bw.WriteByte(',')
		writeJSONString(bw, predColumn)
		fmt.Fprintf(bw, ":%.6f", preds[i])
		bw.WriteByte('}')
	}

	bw.WriteByte(']')
	bw.WriteByte('\n')
	if err := bw.Flush(); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "failed to write output")
	}
	return nil
}

// Envelope is the terminal failure representation.  Exactly one of the
// success array or this object is ever written, never both.
type Envelope struct {
	Error string `json:"error"`
	Type  string `json:"type"`
}

// WriteEnvelope writes the error envelope for a fatal failure.
func WriteEnvelope(w io.Writer, appErr *errors.AppError) error {
	env := Envelope{Error: appErr.Message, Type: appErr.Kind()}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// writeJSONString writes s as a JSON string literal.  json.Marshal of a
// string cannot fail, so the error is discarded.
func writeJSONString(w *bufio.Writer, s string) {
	data, _ := json.Marshal(s)
	w.Write(data)
}
