package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "jiggler", "config.yaml")
	return NewStore(path, zaptest.NewLogger(t).Sugar())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, Defaults(), s.Load())
}

func TestLoadMalformedFileReturnsDefaults(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("interval_seconds: [not, a, number"), 0o644))

	assert.Equal(t, Defaults(), s.Load())
}

func TestLoadPartialFileKeepsDefaultsAndClamps(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("interval_seconds: 99999\nsafe_mode: true\n"), 0o644))

	cfg := s.Load()
	expected := Defaults()
	expected.IntervalSeconds = MaxIntervalSeconds
	expected.SafeMode = true
	expected.IsFirstRun = false
	assert.Equal(t, expected, cfg)
}

func TestSaveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	in := Configuration{
		IntervalSeconds:      0,
		MovePixels:           999,
		StartOnLaunch:        false,
		IdleAware:            true,
		IdleThresholdSeconds: 42,
		SafeMode:             true,
		JitterPercent:        90,
		IsFirstRun:           true,
	}

	saved, err := s.Save(in)
	require.NoError(t, err)

	expected := Configuration{
		IntervalSeconds:      1,
		MovePixels:           200,
		StartOnLaunch:        false,
		IdleAware:            true,
		IdleThresholdSeconds: 42,
		SafeMode:             true,
		JitterPercent:        80,
		IsFirstRun:           false,
	}
	assert.Equal(t, expected, saved)
	assert.Equal(t, expected, s.Load())

	raw, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "move_pixels: 200")
	assert.NotContains(t, string(raw), "first_run", "transient flag is not persisted")

	_, err = os.Stat(s.Path() + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// The parent "directory" is a regular file.
	s := NewStore(filepath.Join(blocker, "config.yaml"), nil)
	_, err := s.Save(Defaults())
	assert.Error(t, err)
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	if err != nil {
		t.Skipf("no user config dir: %v", err)
	}
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "jiggler", filepath.Base(filepath.Dir(path)))
}
