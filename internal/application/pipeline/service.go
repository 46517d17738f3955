package pipeline

import (
	"context"

	"github.com/google/uuid"

	"github.com/esolpred/esolpred/internal/config"
	"github.com/esolpred/esolpred/internal/dataset"
	"github.com/esolpred/esolpred/internal/infrastructure/logging"
	"github.com/esolpred/esolpred/internal/intelligence/solforest"
	"github.com/esolpred/esolpred/pkg/errors"
)

// Service orchestrates one batch invocation end to end: read → validate →
// extract → feature table → model → assemble.  Run returns exactly one of a
// Result or an AppError; any fatal failure from any stage short-circuits.
type Service struct {
	cfg    *config.Config
	logger logging.Logger
}

// NewService constructs the pipeline service.
func NewService(cfg *config.Config, logger logging.Logger) *Service {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Service{cfg: cfg, logger: logger}
}

// Run executes the pipeline for the input table at inputPath.
func (s *Service) Run(ctx context.Context, inputPath string) (*Result, *errors.AppError) {
	runLog := s.logger.With(logging.String("run_id", uuid.NewString()))
	runLog.Info("processing input file", logging.String("path", inputPath))

	table, err := dataset.ReadCSV(inputPath)
	if err != nil {
		return nil, errors.AsApp(err)
	}
	runLog.Info("loaded input rows", logging.Int("rows", table.NumRows()))

	if appErr := ValidateInput(table, s.cfg.Input.SMILESColumn); appErr != nil {
		return nil, appErr
	}

	smiles, _ := table.Column(s.cfg.Input.SMILESColumn)

	extractor := NewExtractor(s.cfg.Worker.Concurrency, runLog)
	records, appErr := extractor.Extract(ctx, smiles)
	if appErr != nil {
		return nil, appErr
	}

	features, appErr := BuildFeatureTable(records, table.NumRows(), runLog)
	if appErr != nil {
		return nil, appErr
	}
	runLog.Info("calculated descriptors", logging.Int("molecules", features.Len()))

	runner, err := solforest.NewRunner(
		s.cfg.Artifacts.ModelPath, s.cfg.Artifacts.ScalerPath, runLog)
	if err != nil {
		return nil, errors.AsApp(err)
	}

	preds, err := runner.Predict(features.Matrix())
	if err != nil {
		return nil, errors.AsApp(err)
	}

	result, appErr := Assemble(table, features.Indices(), preds, s.cfg.Input.PredictionColumn)
	if appErr != nil {
		return nil, appErr
	}

	runLog.Info("predicted solubility", logging.Int("molecules", result.NumRows()))
	return result, nil
}
