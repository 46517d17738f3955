package pipeline

import (
	"io"

	"github.com/esolpred/esolpred/internal/dataset"
	"github.com/esolpred/esolpred/pkg/errors"
)

// Result joins predictions back onto the original input rows.  Only rows
// whose index survived feature-table construction appear, in ascending
// original order, each carrying every original field plus the prediction.
type Result struct {
	table      *dataset.Table
	survivors  []int
	preds      []float64
	predColumn string
}

// Assemble pairs the surviving indices with their predictions.  The two
// slices must be positionally aligned (both follow the feature table's
// iteration order); a length mismatch means the model produced a malformed
// vector and is fatal.
func Assemble(table *dataset.Table, survivors []int, preds []float64, predColumn string) (*Result, *errors.AppError) {
	if len(survivors) != len(preds) {
		return nil, errors.Newf(errors.CodePrediction,
			"model produced %d predictions for %d surviving rows",
			len(preds), len(survivors))
	}
	return &Result{
		table:      table,
		survivors:  survivors,
		preds:      preds,
		predColumn: predColumn,
	}, nil
}

// NumRows returns the number of output rows.
func (r *Result) NumRows() int {
	return len(r.survivors)
}

// Survivors returns the surviving original row indices in output order.
func (r *Result) Survivors() []int {
	return r.survivors
}

// Predictions returns the predicted values in output order.
func (r *Result) Predictions() []float64 {
	return r.preds
}

// WriteTo writes the result as the success JSON array.
func (r *Result) WriteTo(w io.Writer) error {
	return dataset.WriteRecords(w, r.table, r.survivors, r.preds, r.predColumn)
}
