package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/jiggler/internal/util"
)

func TestParseFlags(t *testing.T) {
	// Save original args and restore them after the test
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	// 21:59:40, so a --clock target of 22:00 is twenty seconds away
	now := time.Date(2024, 6, 12, 21, 59, 40, 0, time.Local)

	tests := []struct {
		name        string
		args        []string
		wantTimed   bool
		wantSession time.Duration
		skip        bool // Skip test cases that would cause os.Exit
	}{
		{
			name:        "duration flag",
			args:        []string{"jiggler", "--duration", "2h30m"},
			wantTimed:   true,
			wantSession: 150 * time.Minute,
		},
		{
			name:        "duration in bare minutes",
			args:        []string{"jiggler", "-d", "150"},
			wantTimed:   true,
			wantSession: 150 * time.Minute,
		},
		{
			name:        "sub-minute duration",
			args:        []string{"jiggler", "-d", "30s"},
			wantTimed:   true,
			wantSession: 30 * time.Second,
		},
		{
			name:        "duration keeps seconds",
			args:        []string{"jiggler", "-d", "1m45s"},
			wantTimed:   true,
			wantSession: time.Minute + 45*time.Second,
		},
		{
			name:        "clock twenty seconds ahead",
			args:        []string{"jiggler", "-c", "22:00"},
			wantTimed:   true,
			wantSession: 20 * time.Second,
		},
		{
			name:        "clock 12h format PM",
			args:        []string{"jiggler", "-c", "10:30PM"},
			wantTimed:   true,
			wantSession: 30*time.Minute + 20*time.Second,
		},
		{
			name: "version flag",
			args: []string{"jiggler", "--version"},
			skip: true, // Would cause os.Exit(0)
		},
		{
			name: "no flags",
			args: []string{"jiggler"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.skip {
				t.Skip("Skipping test case that would cause os.Exit")
			}

			os.Args = tt.args

			cfg, err := ParseFlagsWithNow("test-version", now)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTimed, cfg.Timed())
			assert.Equal(t, tt.wantSession, cfg.SessionLength(now))
		})
	}
}

func TestParseFlagsTimeCalculation(t *testing.T) {
	// Save original args and restore them after the test
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local) // 10:00 AM
	targetHour := 12                                      // 12:00 PM (2 hours from now)
	timeStr := fmt.Sprintf("%02d:00", targetHour)

	os.Args = []string{"jiggler", "-c", timeStr}

	cfg, err := ParseFlagsWithNow("test-version", now)
	require.NoError(t, err)

	assert.Equal(t, targetHour, cfg.Clock.Hour())
	assert.Equal(t, 0, cfg.Clock.Minute())
	assert.Zero(t, cfg.Duration, "--clock does not set a fixed duration")
	assert.Equal(t, 2*time.Hour, cfg.SessionLength(now))

	// The remaining length shrinks while the program starts up.
	assert.Equal(t, 2*time.Hour-5*time.Second, cfg.SessionLength(now.Add(5*time.Second)))
	assert.Negative(t, cfg.SessionLength(now.Add(3*time.Hour)))
}

func TestParseArgsErrors(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{name: "invalid clock format", args: []string{"-c", "25:00"}, wantErr: "Valid formats"},
		{name: "invalid duration", args: []string{"-d", "forever"}, wantErr: "Valid formats"},
		{name: "both duration and clock flags", args: []string{"-d", "2h30m", "-c", "22:30"}, wantErr: "cannot be used together"},
		{name: "unknown mode", args: []string{"--mode", "gui"}, wantErr: "mode"},
		{name: "zero duration", args: []string{"-d", "0"}, wantErr: "at least 1s"},
		{name: "sub-second duration", args: []string{"-d", "500ms"}, wantErr: "at least 1s"},
		{name: "negative duration", args: []string{"-d", "-10m"}, wantErr: "at least 1s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs("test-version", tt.args, now)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseArgsDefaults(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	path := filepath.Join(t.TempDir(), "custom.yaml")

	flags, err := parseArgs("test-version", []string{"--config", path}, now)
	require.NoError(t, err)

	assert.Equal(t, path, flags.ConfigPath)
	assert.Equal(t, ModeTUI, flags.Mode)
	assert.Equal(t, "debug.log", flags.LogFile)
	assert.Equal(t, "info", flags.LogLevel)
	assert.Empty(t, flags.MetricsAddr)
	assert.Zero(t, flags.Duration)
	assert.True(t, flags.Clock.IsZero())
	assert.False(t, flags.Timed())
}

func TestParseArgsModesAndLogging(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.Local)
	dir := t.TempDir()
	path := filepath.Join(dir, "c.yaml")
	logPath := filepath.Join(dir, "jiggler.log")

	flags, err := parseArgs("test-version", []string{
		"--config", path,
		"--mode", "headless",
		"--log-file", logPath,
		"--log-level", "debug",
		"--metrics-addr", "127.0.0.1:9123",
	}, now)
	require.NoError(t, err)

	assert.Equal(t, ModeHeadless, flags.Mode)
	assert.Equal(t, logPath, flags.LogFile)
	assert.Equal(t, "debug", flags.LogLevel)
	assert.Equal(t, "127.0.0.1:9123", flags.MetricsAddr)
}

func TestParseArgsClockRollsOverMidnight(t *testing.T) {
	now := time.Date(2024, 1, 1, 23, 0, 0, 0, time.Local)

	flags, err := parseArgs("test-version", []string{"--config", "x.yaml", "-c", "01:30"}, now)
	require.NoError(t, err)

	assert.Equal(t, 2, flags.Clock.Day())
	assert.Equal(t, 150*time.Minute, flags.SessionLength(now))
}

func TestParseArgsClockTooClose(t *testing.T) {
	now := time.Date(2024, 6, 12, 21, 59, 59, 500_000_000, time.Local)

	_, err := parseArgs("test-version", []string{"--config", "x.yaml", "-c", "22:00"}, now)
	require.Error(t, err)
	assert.ErrorIs(t, err, util.ErrSessionTooShort)
}

func TestDescribeFlags(t *testing.T) {
	docs, err := DescribeFlags()
	require.NoError(t, err)

	byLong := make(map[string]FlagDoc, len(docs))
	for _, d := range docs {
		byLong[d.Long] = d
	}

	require.Contains(t, byLong, "--help")
	assert.Equal(t, "-h", byLong["--help"].Short)
	assert.Empty(t, byLong["--help"].Arg)

	assert.Equal(t, "-v", byLong["--version"].Short)
	assert.Empty(t, byLong["--version"].Arg)

	assert.Equal(t, "-d", byLong["--duration"].Short)
	assert.NotEmpty(t, byLong["--duration"].Arg)

	assert.Equal(t, "-c", byLong["--clock"].Short)
	assert.Equal(t, "<PATH>", byLong["--config"].Arg)
	assert.Contains(t, byLong["--mode"].Help, "tui,tray,headless")

	for _, name := range []string{"--log-file", "--log-level", "--metrics-addr"} {
		assert.Contains(t, byLong, name)
	}
}
