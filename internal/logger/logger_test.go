package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
		wantErr  bool
	}{
		{"debug", zapcore.DebugLevel, false},
		{"INFO", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
		{"warning", zapcore.WarnLevel, false},
		{" error ", zapcore.ErrorLevel, false},
		{"verbose", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.log")

	log, closeLog, err := New(Options{Path: path, Level: "warn"})
	require.NoError(t, err)

	engineLog := For(log, "engine")
	engineLog.Infof("engine: started")
	engineLog.Warnf("engine: previous cycle overran the interval")
	require.NoError(t, closeLog())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	assert.NotContains(t, out, "engine: started", "info is below the configured level")
	assert.Contains(t, out, "engine: previous cycle overran the interval")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, " | engine | ")
}

func TestNewJSONFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jiggler.log")

	log, closeLog, err := New(Options{Path: path, Level: "debug", Format: FormatJSON})
	require.NoError(t, err)
	For(log, "config").Debugf("config: saved %s", "/tmp/x.yaml")
	require.NoError(t, closeLog())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "config", entry["component"])
	assert.Equal(t, "config: saved /tmp/x.yaml", entry["msg"])
}

func TestNewRejectsBadInput(t *testing.T) {
	_, _, err := New(Options{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(Options{Path: filepath.Join(t.TempDir(), "missing", "dir", "x.log")})
	assert.Error(t, err)
}
