// Package cli defines the esolpred command: one positional input-table path,
// persistent configuration flags, and the terminal output contract.  Exactly
// one of the prediction JSON array or the {"error","type"} envelope is
// written to stdout per invocation, with a non-zero exit code on any fatal
// failure.  All logging goes to stderr.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/esolpred/esolpred/internal/application/pipeline"
	"github.com/esolpred/esolpred/internal/config"
	"github.com/esolpred/esolpred/internal/dataset"
	"github.com/esolpred/esolpred/internal/infrastructure/logging"
	"github.com/esolpred/esolpred/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// defaultConfigFile is picked up from the working directory when --config is
// not given.  Its absence is not an error; env and defaults take over.
const defaultConfigFile = "esolpred.yaml"

// RootOptions holds the persistent CLI flags.  Flag values override config
// file and environment settings.
type RootOptions struct {
	ConfigPath  string
	LogLevel    string
	LogFormat   string
	Concurrency int
	ModelPath   string
	ScalerPath  string

	// parsed flips once RunE is reached; Execute uses it to classify pre-run
	// failures (unknown flag, bad flag value) as usage errors.
	parsed bool
}

// NewRootCommand creates the root cobra command writing its terminal output
// (result array or error envelope) to out.
func NewRootCommand(opts *RootOptions, out io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "esolpred <input_csv_file>",
		Short: "Batch aqueous-solubility prediction from SMILES",
		Long: "esolpred reads a CSV with a SMILES column, computes molecular descriptors\n" +
			"per row, applies a pretrained scaler and random-forest model, and writes a\n" +
			"JSON array of per-row solubility predictions to stdout.",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildDate),
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.parsed = true
			return run(cmd.Context(), opts, args, out)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./esolpred.yaml if present)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&opts.LogFormat, "log-format", "", "log format (console, json)")
	pf.IntVar(&opts.Concurrency, "concurrency", 0, "rows extracted in parallel")
	pf.StringVar(&opts.ModelPath, "model", "", "path to the serialized regression model")
	pf.StringVar(&opts.ScalerPath, "scaler", "", "path to the serialized feature scaler")

	return cmd
}

// run executes one batch invocation.  Every fatal path returns an *AppError
// (as error); Execute converts it into the envelope.
func run(ctx context.Context, opts *RootOptions, args []string, out io.Writer) error {
	if len(args) != 1 {
		return errors.New(errors.CodeUsage, "Usage: esolpred <input_csv_file>")
	}
	inputPath := args[0]

	cfg, err := loadConfig(opts)
	if err != nil {
		return errors.Wrap(err, errors.CodeUsage, "invalid configuration")
	}

	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return errors.Wrap(err, errors.CodeUsage, "invalid logging configuration")
	}

	svc := pipeline.NewService(cfg, logger)
	result, appErr := svc.Run(ctx, inputPath)
	if appErr != nil {
		logger.Error("prediction run failed",
			logging.String("code", string(appErr.Code)),
			logging.Err(appErr))
		return appErr
	}

	if err := result.WriteTo(out); err != nil {
		return errors.Wrap(err, errors.CodeUnknown, "failed to write results")
	}
	return nil
}

// loadConfig resolves the effective configuration with the precedence
// flag > environment > config file > default.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch {
	case opts.ConfigPath != "":
		cfg, err = config.Load(opts.ConfigPath)
	case fileExists(defaultConfigFile):
		cfg, err = config.Load(defaultConfigFile)
	default:
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.LogFormat != "" {
		cfg.Log.Format = opts.LogFormat
	}
	if opts.Concurrency > 0 {
		cfg.Worker.Concurrency = opts.Concurrency
	}
	if opts.ModelPath != "" {
		cfg.Artifacts.ModelPath = opts.ModelPath
	}
	if opts.ScalerPath != "" {
		cfg.Artifacts.ScalerPath = opts.ScalerPath
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// Execute runs the root command and returns the process exit code.  Any
// failure, including flag-parse errors, produces exactly one error envelope
// on out before the non-zero return.
func Execute(ctx context.Context, args []string, out io.Writer) int {
	opts := &RootOptions{}
	cmd := NewRootCommand(opts, out)
	cmd.SetArgs(args)
	cmd.SetOut(os.Stderr)
	cmd.SetErr(os.Stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	appErr := errors.AsApp(err)
	if !opts.parsed && appErr.Code == errors.CodeUnknown {
		// Cobra rejected the command line before RunE ran.
		appErr = errors.Wrap(err, errors.CodeUsage, err.Error())
	}
	// Envelope write failure leaves nothing else to report; the exit code
	// still signals the failure.
	_ = dataset.WriteEnvelope(out, appErr)
	return 1
}
