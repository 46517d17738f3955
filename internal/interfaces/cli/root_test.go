package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esolpred/esolpred/internal/dataset"
	"github.com/esolpred/esolpred/internal/domain/chem"
	"github.com/esolpred/esolpred/internal/intelligence/solforest"
)

// fixtureFiles writes a one-leaf model, an identity scaler, and an input CSV
// into a temp dir and returns their paths.
func fixtureFiles(t *testing.T, csvContent string) (model, scaler, input string) {
	t.Helper()
	dir := t.TempDir()
	model = filepath.Join(dir, "model.gob")
	scaler = filepath.Join(dir, "scaler.gob")
	input = filepath.Join(dir, "input.csv")

	forest := &solforest.Forest{
		NumFeatures: chem.NumFeatures,
		Trees:       []solforest.Tree{{Nodes: []solforest.TreeNode{{Leaf: true, Value: -3.25}}}},
	}
	sc := &solforest.StandardScaler{
		Mean: make([]float64, chem.NumFeatures),
		Std:  []float64{1, 1, 1, 1, 1, 1},
	}
	require.NoError(t, solforest.SaveArtifacts(model, scaler, forest, sc))
	require.NoError(t, os.WriteFile(input, []byte(csvContent), 0o644))
	return model, scaler, input
}

func decodeEnvelope(t *testing.T, buf *bytes.Buffer) dataset.Envelope {
	t.Helper()
	var env dataset.Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env), "output: %s", buf.String())
	return env
}

func TestExecute_Success(t *testing.T) {
	model, scaler, input := fixtureFiles(t, "Name,SMILES\nethanol,CCO\nbenzene,c1ccccc1\n")

	var buf bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--model", model, "--scaler", scaler, input}, &buf)

	require.Equal(t, 0, code, "output: %s", buf.String())

	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, "ethanol", parsed[0]["Name"])
	assert.Equal(t, -3.25, parsed[0]["Predicted_log_solubility_mol_per_L"])
}

func TestExecute_NoArguments(t *testing.T) {
	var buf bytes.Buffer
	code := Execute(context.Background(), []string{}, &buf)

	assert.Equal(t, 1, code)
	env := decodeEnvelope(t, &buf)
	assert.Equal(t, "UsageError", env.Type)
	assert.Contains(t, env.Error, "Usage:")
}

func TestExecute_TooManyArguments(t *testing.T) {
	var buf bytes.Buffer
	code := Execute(context.Background(), []string{"a.csv", "b.csv"}, &buf)

	assert.Equal(t, 1, code)
	assert.Equal(t, "UsageError", decodeEnvelope(t, &buf).Type)
}

func TestExecute_UnknownFlag(t *testing.T) {
	var buf bytes.Buffer
	code := Execute(context.Background(), []string{"--bogus", "in.csv"}, &buf)

	assert.Equal(t, 1, code)
	assert.Equal(t, "UsageError", decodeEnvelope(t, &buf).Type)
}

func TestExecute_MissingInputFile(t *testing.T) {
	model, scaler, _ := fixtureFiles(t, "SMILES\nCCO\n")

	var buf bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--model", model, "--scaler", scaler, "does-not-exist.csv"}, &buf)

	assert.Equal(t, 1, code)
	env := decodeEnvelope(t, &buf)
	assert.Equal(t, "FileNotFoundError", env.Type)
	assert.Contains(t, env.Error, "Input file not found")
}

func TestExecute_MissingModelArtifact(t *testing.T) {
	_, scaler, input := fixtureFiles(t, "SMILES\nCCO\n")

	var buf bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--model", "absent.gob", "--scaler", scaler, input}, &buf)

	assert.Equal(t, 1, code)
	env := decodeEnvelope(t, &buf)
	assert.Equal(t, "FileNotFoundError", env.Type)
	assert.Contains(t, env.Error, "Model file not found")
}

func TestExecute_NoValidInput(t *testing.T) {
	model, scaler, input := fixtureFiles(t, "SMILES\ninvalid_garbage\n")

	var buf bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--model", model, "--scaler", scaler, input}, &buf)

	assert.Equal(t, 1, code)
	assert.Equal(t, "NoValidInputError", decodeEnvelope(t, &buf).Type)
}

func TestExecute_ConfigFile(t *testing.T) {
	model, scaler, input := fixtureFiles(t, "Structure\nCCO\n")

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "esolpred.yaml")
	cfgYAML := "input:\n  smiles_column: Structure\n  prediction_column: logS\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfgYAML), 0o644))

	var buf bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--config", cfgPath, "--model", model, "--scaler", scaler, input}, &buf)

	require.Equal(t, 0, code, "output: %s", buf.String())

	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, -3.25, parsed[0]["logS"])
}

func TestExecute_InvalidFlagValue(t *testing.T) {
	model, scaler, input := fixtureFiles(t, "SMILES\nCCO\n")

	var buf bytes.Buffer
	code := Execute(context.Background(),
		[]string{"--log-level", "verbose", "--model", model, "--scaler", scaler, input}, &buf)

	assert.Equal(t, 1, code)
	assert.Equal(t, "UsageError", decodeEnvelope(t, &buf).Type)
}
