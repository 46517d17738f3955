// Package config defines all configuration structures for esolpred.
// No I/O or parsing logic lives here — only plain data types and validation.
package config

import (
	"fmt"

	"github.com/esolpred/esolpred/internal/infrastructure/logging"
)

// InputConfig names the columns the pipeline reads and writes.
type InputConfig struct {
	// SMILESColumn is the header of the structure-string column the input
	// table must contain.
	SMILESColumn string `mapstructure:"smiles_column"`

	// PredictionColumn is the header under which the predicted value is
	// appended to every surviving output row.
	PredictionColumn string `mapstructure:"prediction_column"`
}

// ArtifactsConfig locates the two pretrained model artifacts.  Both are
// opaque serialized blobs loaded once per invocation; their absence or
// corruption is fatal.
type ArtifactsConfig struct {
	ModelPath  string `mapstructure:"model_path"`
	ScalerPath string `mapstructure:"scaler_path"`
}

// WorkerConfig holds descriptor-extraction execution parameters.
type WorkerConfig struct {
	// Concurrency is the number of rows extracted in parallel.  Rows are
	// independent, and the feature-table join is keyed by original index, so
	// any value produces identical output; 1 preserves strictly sequential
	// processing.
	Concurrency int `mapstructure:"concurrency"`
}

// Config is the root configuration structure for one batch invocation.
type Config struct {
	Input     InputConfig       `mapstructure:"input"`
	Artifacts ArtifactsConfig   `mapstructure:"artifacts"`
	Worker    WorkerConfig      `mapstructure:"worker"`
	Log       logging.LogConfig `mapstructure:"log"`
}

// Validate performs semantic validation of the fully-populated Config.
// It returns the first error encountered; callers should treat any error as
// fatal and refuse to start the batch.
func (c *Config) Validate() error {
	if c.Input.SMILESColumn == "" {
		return fmt.Errorf("config: input.smiles_column is required")
	}
	if c.Input.PredictionColumn == "" {
		return fmt.Errorf("config: input.prediction_column is required")
	}
	if c.Artifacts.ModelPath == "" {
		return fmt.Errorf("config: artifacts.model_path is required")
	}
	if c.Artifacts.ScalerPath == "" {
		return fmt.Errorf("config: artifacts.scaler_path is required")
	}
	if c.Worker.Concurrency < 1 {
		return fmt.Errorf("config: worker.concurrency must be ≥ 1, got %d", c.Worker.Concurrency)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}
	return nil
}
