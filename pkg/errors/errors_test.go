package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeMissingColumn, "Input CSV must contain a \"SMILES\" column")

	assert.Equal(t, CodeMissingColumn, err.Code)
	assert.Equal(t, "Input CSV must contain a \"SMILES\" column", err.Message)
	assert.Empty(t, err.Detail)
	assert.Nil(t, err.Cause)
	assert.NotEmpty(t, err.Stack)
}

func TestNewf(t *testing.T) {
	err := Newf(CodePrediction, "model produced %d predictions for %d rows", 3, 5)
	assert.Equal(t, "model produced 3 predictions for 5 rows", err.Message)
}

func TestError_Format(t *testing.T) {
	err := New(CodeEmptyTable, "Input CSV is empty")
	assert.Equal(t, "[INPUT_002] Input CSV is empty", err.Error())

	withDetail := err.WithDetail("path=/tmp/in.csv")
	assert.Equal(t, "[INPUT_002] Input CSV is empty: path=/tmp/in.csv", withDetail.Error())
	// The original is untouched.
	assert.Empty(t, err.Detail)
}

func TestWithDetail_NilReceiver(t *testing.T) {
	var err *AppError
	assert.Nil(t, err.WithDetail("anything"))
}

func TestWrap(t *testing.T) {
	t.Run("nil error returns nil", func(t *testing.T) {
		assert.Nil(t, Wrap(nil, CodeInvalidFormat, "reading CSV"))
	})

	t.Run("wraps plain error", func(t *testing.T) {
		cause := fmt.Errorf("disk on fire")
		err := Wrap(cause, CodeInvalidFormat, "Error reading CSV file")

		assert.Equal(t, CodeInvalidFormat, err.Code)
		assert.Same(t, cause, err.Cause)
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("CodeUnknown preserves wrapped code", func(t *testing.T) {
		inner := New(CodeArtifactNotFound, "Model file not found: model.gob")
		outer := Wrap(inner, CodeUnknown, "loading artifacts")

		assert.Equal(t, CodeArtifactNotFound, outer.Code)
	})

	t.Run("explicit code overrides wrapped code", func(t *testing.T) {
		inner := New(CodeArtifactLoad, "corrupt")
		outer := Wrap(inner, CodePrediction, "Error during prediction")

		assert.Equal(t, CodePrediction, outer.Code)
		assert.True(t, IsCode(outer, CodeArtifactLoad))
	})
}

func TestIsCode(t *testing.T) {
	inner := New(CodeNoValidInput, "No valid SMILES strings found in input")
	outer := Wrap(inner, CodePrediction, "pipeline failed")

	assert.True(t, IsCode(outer, CodePrediction))
	assert.True(t, IsCode(outer, CodeNoValidInput))
	assert.False(t, IsCode(outer, CodeEmptyTable))
	assert.False(t, IsCode(nil, CodePrediction))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(fmt.Errorf("plain")))
	assert.Equal(t, CodeUsage, GetCode(New(CodeUsage, "bad args")))

	wrapped := fmt.Errorf("outer: %w", New(CodeEmptyTable, "empty"))
	assert.Equal(t, CodeEmptyTable, GetCode(wrapped))
}

func TestAsApp(t *testing.T) {
	assert.Nil(t, AsApp(nil))

	app := New(CodeFileNotFound, "Input file not found: in.csv")
	assert.Same(t, app, AsApp(app))
	assert.Same(t, app, AsApp(fmt.Errorf("context: %w", app)))

	plain := fmt.Errorf("something unexpected")
	converted := AsApp(plain)
	assert.Equal(t, CodeUnknown, converted.Code)
	assert.Equal(t, "something unexpected", converted.Message)
	assert.Same(t, plain, converted.Cause)
}

func TestKindForCode(t *testing.T) {
	tests := []struct {
		code ErrorCode
		kind string
	}{
		{CodeUsage, KindUsageError},
		{CodeFileNotFound, KindFileNotFoundError},
		{CodeArtifactNotFound, KindFileNotFoundError},
		{CodeInvalidFormat, KindValidationError},
		{CodeMissingColumn, KindValidationError},
		{CodeEmptyTable, KindValidationError},
		{CodeNoValidInput, KindNoValidInputError},
		{CodeArtifactLoad, KindArtifactLoadError},
		{CodePrediction, KindPredictionError},
		{CodeUnknown, KindInternalError},
		{ErrorCode("BOGUS_999"), KindInternalError},
	}
	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.kind, KindForCode(tt.code))
		})
	}
}

func TestKind(t *testing.T) {
	err := New(CodeArtifactNotFound, "Model file not found: model.gob")
	require.NotNil(t, err)
	assert.Equal(t, KindFileNotFoundError, err.Kind())
}

func TestIsFatal(t *testing.T) {
	assert.False(t, IsFatal(CodeOK))
	assert.True(t, IsFatal(CodeUnknown))
	assert.True(t, IsFatal(CodePrediction))
}
