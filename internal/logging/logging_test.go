package logging

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestInitializeLevels(t *testing.T) {
	restore := Replace(Logger)
	defer restore()

	require.NoError(t, Initialize(Config{Level: "debug", Format: "json", Output: "stdout"}))
	assert.True(t, Logger.Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(Config{Level: "nonsense"}))
	assert.False(t, Logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, Logger.Core().Enabled(zapcore.WarnLevel))
}

func TestInitializeFileOutput(t *testing.T) {
	restore := Replace(Logger)
	defer restore()

	require.NoError(t, Initialize(Config{Level: "info", Output: filepath.Join(t.TempDir(), "quote.log")}))
	Info("written")
	Sync()

	err := Initialize(Config{Output: filepath.Join(t.TempDir(), "missing", "quote.log")})
	assert.Error(t, err)
}

func TestReplace(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	restore := Replace(zap.New(core))

	Debug("one", zap.String("k", "v"))
	With(zap.Int("n", 1)).Warn("two")
	restore()
	Warn("not captured")

	require.Equal(t, 2, logs.Len())
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
	assert.Equal(t, zapcore.WarnLevel, logs.All()[1].Level)
}

func TestQuoteFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	defer Replace(zap.New(core))()

	Warn("no price available", Service("cdn"), Block("cdn.edge"), Item("0190"), Money("unit_price", 1500))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "cdn", fields["service"])
	assert.Equal(t, "cdn.edge", fields["block"])
	assert.Equal(t, "0190", fields["item"])
	assert.Equal(t, int64(1500), fields["unit_price"])
}
