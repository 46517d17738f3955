package logging

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 1.5}, Float64("f", 1.5))
	assert.Equal(t, Field{Key: "d", Value: time.Second}, Duration("d", time.Second))
	assert.Equal(t, Field{Key: "error", Value: "boom"}, Err(fmt.Errorf("boom")))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestLoggerFromCore(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	logger := NewLoggerFromCore(core)

	logger.Named("stage").With(String("run_id", "r1")).Info("rows loaded", Int("rows", 3))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "rows loaded", entries[0].Message)
	assert.Equal(t, "stage", entries[0].LoggerName)

	fields := entries[0].ContextMap()
	assert.Equal(t, "r1", fields["run_id"])
	assert.EqualValues(t, 3, fields["rows"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("warn"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("info"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
}

func TestNewLogger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		logger, err := NewLogger(LogConfig{Level: "info", Format: format})
		require.NoError(t, err, format)
		assert.NotNil(t, logger)
	}
}

func TestNopLogger(t *testing.T) {
	logger := NewNopLogger()
	// Must be safe to call in any shape.
	logger.Debug("d")
	logger.Info("i", Int("n", 1))
	logger.Warn("w")
	logger.Error("e", Err(nil))
	assert.Equal(t, logger, logger.With(String("k", "v")))
	assert.Equal(t, logger, logger.Named("x"))
}
