package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatchDeliversChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	s := NewStore(path, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Configuration, 8)
	require.NoError(t, s.Watch(ctx, func(cfg Configuration) { changes <- cfg }))

	next := Defaults()
	next.IntervalSeconds = 7
	_, err := s.Save(next)
	require.NoError(t, err)

	cfg := waitForChange(t, changes, func(cfg Configuration) bool { return cfg.IntervalSeconds == 7 })
	assert.False(t, cfg.IsFirstRun)

	// Rewriting identical content is not a change.
	_, err = s.Save(next)
	require.NoError(t, err)

	// An external edit with a bad value is clamped on the way in.
	require.NoError(t, os.WriteFile(path, []byte("interval_seconds: 7\nmove_pixels: 1000\n"), 0o644))

	// A truncating write may surface an empty file first.
	cfg = waitForChange(t, changes, func(cfg Configuration) bool { return cfg.MovePixels == MaxMovePixels })
	assert.Equal(t, 7, cfg.IntervalSeconds)
}

func waitForChange(t *testing.T, changes <-chan Configuration, match func(Configuration) bool) Configuration {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if match(cfg) {
				return cfg
			}
		case <-deadline:
			t.Fatal("expected change not delivered")
			return Configuration{}
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "config.yaml"), nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan Configuration, 1)
	require.NoError(t, s.Watch(ctx, func(cfg Configuration) { changes <- cfg }))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("interval_seconds: 3\n"), 0o644))

	select {
	case cfg := <-changes:
		t.Fatalf("unexpected change %+v", cfg)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", "config.yaml"), nil)
	assert.Error(t, s.Watch(context.Background(), func(Configuration) {}))
}
