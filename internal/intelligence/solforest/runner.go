package solforest

import (
	"time"

	"github.com/esolpred/esolpred/internal/infrastructure/logging"
	"github.com/esolpred/esolpred/pkg/errors"
)

// Runner applies the fitted scaler and the regression forest to a feature
// matrix.  It is the pipeline's only model interface: transform then
// predict, one value per input row, same row order.
type Runner struct {
	forest *Forest
	scaler *StandardScaler
	logger logging.Logger
}

// NewRunner loads both artifacts from disk and returns a ready Runner.
func NewRunner(modelPath, scalerPath string, logger logging.Logger) (*Runner, error) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	start := time.Now()
	forest, scaler, err := LoadArtifacts(modelPath, scalerPath)
	if err != nil {
		return nil, err
	}
	logger.Info("loaded model and scaler",
		logging.String("model", modelPath),
		logging.String("scaler", scalerPath),
		logging.Int("trees", len(forest.Trees)),
		logging.Duration("elapsed", time.Since(start)))
	return &Runner{forest: forest, scaler: scaler, logger: logger}, nil
}

// NewRunnerFromArtifacts wraps already-loaded artifacts.  Used by tests and
// by callers that manage artifact lifetime themselves.
func NewRunnerFromArtifacts(forest *Forest, scaler *StandardScaler, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Runner{forest: forest, scaler: scaler, logger: logger}
}

// Predict scales the matrix and evaluates the forest.  Any shape mismatch or
// corrupt-tree condition surfaces as a CodePrediction error; the batch has no
// recovery from a model that cannot score the assembled matrix.
func (r *Runner) Predict(X [][]float64) ([]float64, error) {
	if len(X) == 0 {
		return nil, errors.New(errors.CodePrediction, "prediction requested for an empty feature matrix")
	}

	scaled, err := r.scaler.Transform(X)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePrediction, "Error during prediction")
	}

	preds, err := r.forest.Predict(scaled)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodePrediction, "Error during prediction")
	}

	r.logger.Debug("forest evaluated",
		logging.Int("rows", len(preds)),
		logging.Int("trees", len(r.forest.Trees)))
	return preds, nil
}
