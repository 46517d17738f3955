package dataset

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esolpred/esolpred/pkg/errors"
)

func TestWriteRecords(t *testing.T) {
	table := &Table{
		Columns: []string{"Name", "SMILES"},
		Rows: [][]string{
			{"ethanol", "CCO"},
			{"skipped", "bad"},
			{"propane", "CCC"},
		},
	}

	var buf bytes.Buffer
	err := WriteRecords(&buf, table, []int{0, 2}, []float64{1.5, -2.25}, "Pred")
	require.NoError(t, err)

	// Key order and the six-fractional-digit rendering are part of the
	// contract, so the raw bytes are asserted, not just the parsed value.
	want := `[{"Name":"ethanol","SMILES":"CCO","Pred":1.500000},` +
		`{"Name":"propane","SMILES":"CCC","Pred":-2.250000}]` + "\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteRecords_Empty(t *testing.T) {
	table := &Table{Columns: []string{"SMILES"}}

	var buf bytes.Buffer
	err := WriteRecords(&buf, table, nil, nil, "Pred")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteRecords_EscapesFields(t *testing.T) {
	table := &Table{
		Columns: []string{`quo"te`, "SMILES"},
		Rows:    [][]string{{`va"lue`, "CCO"}},
	}

	var buf bytes.Buffer
	err := WriteRecords(&buf, table, []int{0}, []float64{0}, "Pred")
	require.NoError(t, err)

	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 1)
	assert.Equal(t, `va"lue`, parsed[0][`quo"te`])
	assert.Equal(t, 0.0, parsed[0]["Pred"])
}

func TestWriteRecords_Misaligned(t *testing.T) {
	table := &Table{Columns: []string{"SMILES"}, Rows: [][]string{{"CCO"}}}

	var buf bytes.Buffer
	err := WriteRecords(&buf, table, []int{0}, []float64{1, 2}, "Pred")
	require.Error(t, err)
	assert.Equal(t, errors.CodePrediction, errors.GetCode(err))
}

func TestWriteRecords_IndexOutOfRange(t *testing.T) {
	table := &Table{Columns: []string{"SMILES"}, Rows: [][]string{{"CCO"}}}

	var buf bytes.Buffer
	err := WriteRecords(&buf, table, []int{5}, []float64{1}, "Pred")
	require.Error(t, err)
	assert.Equal(t, errors.CodePrediction, errors.GetCode(err))
}

func TestWriteEnvelope(t *testing.T) {
	var buf bytes.Buffer
	appErr := errors.New(errors.CodeMissingColumn, `Input CSV must contain a "SMILES" column`)

	require.NoError(t, WriteEnvelope(&buf, appErr))

	var env Envelope
	require.NoError(t, json.Unmarshal(buf.Bytes(), &env))
	assert.Equal(t, `Input CSV must contain a "SMILES" column`, env.Error)
	assert.Equal(t, "ValidationError", env.Type)
}

func TestWriteEnvelope_InternalKindFallback(t *testing.T) {
	var buf bytes.Buffer
	appErr := errors.New(errors.CodeUnknown, "something broke")

	require.NoError(t, WriteEnvelope(&buf, appErr))
	assert.JSONEq(t, `{"error":"something broke","type":"InternalError"}`, buf.String())
}
