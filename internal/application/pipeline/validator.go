// Package pipeline implements the batch prediction pipeline: input
// validation, per-row descriptor extraction with fault isolation, index-keyed
// feature-table assembly, model evaluation, and the join of predictions back
// onto the original input rows.
//
// The invariant the whole package protects: after extraction, a row index is
// either present with a fully-populated descriptor record or absent entirely.
// No partial or sentinel record ever reaches the model, and prediction i in
// the output always derives from surviving index i's own input row.
package pipeline

import (
	"github.com/esolpred/esolpred/internal/dataset"
	"github.com/esolpred/esolpred/pkg/errors"
)

// ValidateInput confirms the input table carries the structure column and at
// least one data row.  Both violations abort the run before any per-row work.
func ValidateInput(table *dataset.Table, smilesColumn string) *errors.AppError {
	if table.ColumnIndex(smilesColumn) < 0 {
		return errors.Newf(errors.CodeMissingColumn,
			"Input CSV must contain a %q column", smilesColumn)
	}
	if table.NumRows() == 0 {
		return errors.New(errors.CodeEmptyTable, "Input CSV is empty")
	}
	return nil
}
