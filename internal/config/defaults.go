package config

// Default column and artifact names preserve the wire contract of the
// original batch format: the input must carry a SMILES column and the output
// appends the predicted log-solubility under a fixed header.
const (
	DefaultSMILESColumn     = "SMILES"
	DefaultPredictionColumn = "Predicted_log_solubility_mol_per_L"
	DefaultModelPath        = "random_forest_model.gob"
	DefaultScalerPath       = "scaler.gob"
)

// ApplyDefaults fills every unset field of cfg with its platform default.
// Explicitly set fields are never overwritten.
func ApplyDefaults(cfg *Config) {
	if cfg.Input.SMILESColumn == "" {
		cfg.Input.SMILESColumn = DefaultSMILESColumn
	}
	if cfg.Input.PredictionColumn == "" {
		cfg.Input.PredictionColumn = DefaultPredictionColumn
	}
	if cfg.Artifacts.ModelPath == "" {
		cfg.Artifacts.ModelPath = DefaultModelPath
	}
	if cfg.Artifacts.ScalerPath == "" {
		cfg.Artifacts.ScalerPath = DefaultScalerPath
	}
	if cfg.Worker.Concurrency == 0 {
		cfg.Worker.Concurrency = 1
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
}

// NewDefaultConfig returns a Config populated entirely with defaults.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
