package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "roster.log")

	log, err := New("warn", path)
	require.NoError(t, err)

	log.Info("skipped")
	log.Warn("unmatched player", zap.String("name", "Jimmy Butler"))
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN | ")
	assert.Contains(t, string(data), "unmatched player")
	assert.NotContains(t, string(data), "skipped")
}

func TestNewLevels(t *testing.T) {
	for level, want := range map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"error": zapcore.ErrorLevel,
		"bogus": zapcore.InfoLevel,
	} {
		log, err := New(level, "")
		require.NoError(t, err)
		assert.True(t, log.Core().Enabled(want), level)
		assert.False(t, log.Core().Enabled(want-1), level)
	}
}
