// Package solforest implements the pretrained inference stack for esolpred:
// a per-column standard scaler and a random-forest regressor, both loaded as
// opaque gob artifacts, plus the Runner that applies them to a feature
// matrix.  Training happens offline; this package only evaluates.
package solforest

import (
	"math"

	"github.com/esolpred/esolpred/pkg/errors"
)

// StandardScaler normalises each feature column to zero mean and unit
// variance using statistics fitted at training time.  Mean and Std are
// exported so the fitted state round-trips through the gob artifact.
type StandardScaler struct {
	Mean []float64
	Std  []float64
}

// Fit computes per-column mean and standard deviation from X.  Columns with
// zero variance get Std 1 so Transform stays defined.  Fit exists for the
// offline training path and test fixtures; batch invocations only Transform.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New(errors.CodePrediction, "scaler: cannot fit on an empty matrix")
	}
	rows, cols := len(X), len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)
	for j := 0; j < cols; j++ {
		for i := 0; i < rows; i++ {
			s.Mean[j] += X[i][j]
		}
		s.Mean[j] /= float64(rows)
		v := 0.0
		for i := 0; i < rows; i++ {
			d := X[i][j] - s.Mean[j]
			v += d * d
		}
		s.Std[j] = math.Sqrt(v / float64(rows))
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	return nil
}

// Transform returns a scaled copy of X.  The input matrix is not modified.
// A column-count mismatch with the fitted state is a prediction error.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if len(s.Mean) == 0 || len(s.Mean) != len(s.Std) {
		return nil, errors.New(errors.CodePrediction, "scaler: artifact has no fitted statistics")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, errors.Newf(errors.CodePrediction,
				"scaler: row has %d features, scaler was fitted on %d", len(row), len(s.Mean))
		}
		scaled := make([]float64, len(row))
		for j, v := range row {
			std := s.Std[j]
			if std == 0 {
				std = 1
			}
			scaled[j] = (v - s.Mean[j]) / std
		}
		out[i] = scaled
	}
	return out, nil
}
