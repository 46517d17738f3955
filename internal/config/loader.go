// Package config provides configuration loading, defaults, and validation for
// esolpred.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix used by all settings.
const envPrefix = "ESOLPRED"

// newViper builds a pre-configured Viper instance with the standard settings:
// YAML file type, ESOLPRED_ env prefix, automatic env binding, and a key
// replacer that maps "." → "_" so that nested keys like "artifacts.model_path"
// resolve to "ESOLPRED_ARTIFACTS_MODEL_PATH".
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Registering every key with its default is what makes AutomaticEnv
	// overrides visible to Unmarshal; viper only maps keys it knows about.
	v.SetDefault("input.smiles_column", DefaultSMILESColumn)
	v.SetDefault("input.prediction_column", DefaultPredictionColumn)
	v.SetDefault("artifacts.model_path", DefaultModelPath)
	v.SetDefault("artifacts.scaler_path", DefaultScalerPath)
	v.SetDefault("worker.concurrency", 1)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	return v
}

// Load reads the YAML file at configPath, merges any ESOLPRED_* environment
// variable overrides, applies defaults for unset fields, and validates the
// result.  It returns a fully-populated *Config or a descriptive error.
func Load(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config: failed to read config file %q: %w", configPath, err)
	}

	return unmarshalAndFinalize(v)
}

// LoadFromEnv builds a Config entirely from ESOLPRED_* environment variables,
// with no config file required.
func LoadFromEnv() (*Config, error) {
	v := newViper()
	return unmarshalAndFinalize(v)
}

// unmarshalAndFinalize unmarshals viper state into a Config struct, applies
// defaults, and validates the result.
func unmarshalAndFinalize(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to unmarshal configuration: %w", err)
	}

	ApplyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
