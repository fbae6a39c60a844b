package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"INFO":  zapcore.InfoLevel,
		"":      zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	}
	for input, want := range cases {
		got, ok := ParseLevel(input)
		assert.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}

	got, ok := ParseLevel("loud")
	assert.False(t, ok)
	assert.Equal(t, zapcore.InfoLevel, got)
}

func TestNewBuildsLogger(t *testing.T) {
	zapLogger, err := New("debug")
	require.NoError(t, err)
	assert.True(t, zapLogger.Core().Enabled(zapcore.DebugLevel))
}

func TestAdapterForwardsKeyValues(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewAdapter(zap.New(core)).With("component", "test")

	log.Info("network selected", "network", "ropsten")
	log.Warn("secrets missing")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "network selected", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "ropsten", fields["network"])
	assert.Equal(t, "test", fields["component"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
}
