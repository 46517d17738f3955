// Command esolpred predicts aqueous solubility for a batch of molecules.
//
// It reads a CSV file with a SMILES column, computes molecular descriptors
// per row, applies a pretrained feature scaler and random-forest regression
// model, and writes a JSON array of per-row predictions to stdout.  On any
// fatal failure it writes a single {"error","type"} JSON object to stdout
// and exits non-zero.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/esolpred/esolpred/internal/interfaces/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	code := cli.Execute(ctx, os.Args[1:], os.Stdout)
	stop()
	os.Exit(code)
}
