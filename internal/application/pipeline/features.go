package pipeline

import (
	"sort"

	"github.com/esolpred/esolpred/internal/domain/chem"
	"github.com/esolpred/esolpred/internal/infrastructure/logging"
	"github.com/esolpred/esolpred/pkg/errors"
)

// FeatureTable maps surviving row indices to fully-populated descriptor
// vectors.  Construction drops every record with a missing (NaN) field, so
// nothing downstream ever sees a partial record.
type FeatureTable struct {
	indices []int
	matrix  [][]float64
}

// BuildFeatureTable assembles extraction records into a FeatureTable.
// totalRows is the input row count, used to log how many rows were lost at
// the parse stage versus this missing-value stage — the two counters let an
// operator tell bad structures apart from bad descriptor values.
//
// Returns CodeNoValidInput when no record survives the missing-value filter.
func BuildFeatureTable(records []Record, totalRows int, logger logging.Logger) (*FeatureTable, *errors.AppError) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}

	ft := &FeatureTable{}
	missingDrops := 0
	for _, rec := range records {
		if rec.Desc.HasMissing() {
			missingDrops++
			logger.Warn("dropping row with missing descriptor value",
				logging.Int("row", rec.Index))
			continue
		}
		ft.indices = append(ft.indices, rec.Index)
		ft.matrix = append(ft.matrix, rec.Desc.Values())
	}

	// Records arrive index-tagged; enforce ascending order here rather than
	// trusting the caller, keeping both slices aligned.
	sort.Sort(byIndex{ft})

	parseDrops := totalRows - len(records)
	logger.Info("feature table assembled",
		logging.Int("rows", totalRows),
		logging.Int("survivors", len(ft.indices)),
		logging.Int("parse_failures", parseDrops),
		logging.Int("missing_value_drops", missingDrops))

	if len(ft.indices) == 0 {
		return nil, errors.New(errors.CodeNoValidInput,
			"No valid molecular descriptors could be calculated")
	}
	return ft, nil
}

// Len returns the number of surviving rows.
func (ft *FeatureTable) Len() int {
	return len(ft.indices)
}

// Indices returns the surviving original row indices in ascending order.
// The slice is shared; callers must not modify it.
func (ft *FeatureTable) Indices() []int {
	return ft.indices
}

// Matrix returns the dense feature matrix, one row per surviving index in
// Indices() order, columns in chem.FeatureColumns order.
func (ft *FeatureTable) Matrix() [][]float64 {
	return ft.matrix
}

// NumFeatures returns the feature-vector width.
func (ft *FeatureTable) NumFeatures() int {
	return chem.NumFeatures
}

// byIndex sorts indices and matrix rows together by original row index.
type byIndex struct{ ft *FeatureTable }

func (s byIndex) Len() int { return len(s.ft.indices) }
func (s byIndex) Less(i, j int) bool {
	return s.ft.indices[i] < s.ft.indices[j]
}
func (s byIndex) Swap(i, j int) {
	s.ft.indices[i], s.ft.indices[j] = s.ft.indices[j], s.ft.indices[i]
	s.ft.matrix[i], s.ft.matrix[j] = s.ft.matrix[j], s.ft.matrix[i]
}
