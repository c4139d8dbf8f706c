package cmd

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigConstants(t *testing.T) {
	assert.Equal(t, "depver", configBaseName)
	assert.Equal(t, "depver.yaml", configFileName)
	assert.Equal(t, ".", configFolderPath)
	assert.Equal(t, "fix", fixFlagName)
	assert.Equal(t, "dep-type", depTypeFlagName)
	assert.Equal(t, "ignore-dep-pattern", ignoreDepPatternFlagName)
	assert.Equal(t, "check.dep_types", depTypesConfigKey)
	assert.Equal(t, "ignore.path_patterns", ignorePathPatternsConfigKey)
	assert.Equal(t, ".depver.log", defaultLogFilename)
	assert.Equal(t, "DEPVER", envPrefix)
}

func TestConfigVersionConstants(t *testing.T) {
	assert.Equal(t, "version", configVersionKey)
	assert.Equal(t, 1, currentConfigVersion)
}

func TestParseSlogLevel(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"", slog.LevelWarn},
		{"debug", slog.LevelDebug},
		{" INFO ", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"-4", slog.LevelDebug},
		{"loud", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, parseSlogLevel(tt.value, slog.LevelWarn))
		})
	}
}

func TestConfigureLogger(t *testing.T) {
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	configureLogger(filepath.Join(t.TempDir(), "depver.log"), true)

	require.NotNil(t, globalLogger)
	assert.Same(t, globalLogger, slog.Default())
	assert.True(t, globalLogger.Enabled(context.Background(), slog.LevelDebug))
}
