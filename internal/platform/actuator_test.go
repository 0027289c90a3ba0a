package platform

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stigoleg/jiggler/internal/patterns"
)

type point struct{ x, y int }

type fakePointer struct {
	pos       point
	writes    []point
	readErr   error
	moveErr   error
	failAfter int
}

func (f *fakePointer) Position() (int, int, error) {
	if f.readErr != nil {
		return 0, 0, f.readErr
	}
	return f.pos.x, f.pos.y, nil
}

func (f *fakePointer) MoveTo(x, y int) error {
	if f.moveErr != nil && len(f.writes) >= f.failAfter {
		return f.moveErr
	}
	f.pos = point{x, y}
	f.writes = append(f.writes, f.pos)
	return nil
}

func TestActuatorRoundTrip(t *testing.T) {
	starts := []point{{0, 0}, {640, 480}, {1919, 1079}, {-200, 35}}
	vectors := []patterns.Vector{{DX: 2}, {DY: 2}, {DX: -13}, {DY: -200}, {DX: 1, DY: 1}}

	for _, start := range starts {
		for _, v := range vectors {
			p := &fakePointer{pos: start}
			var slept []time.Duration
			a := NewActuator(p, VisibilityDelay)
			a.sleep = func(d time.Duration) { slept = append(slept, d) }

			require.NoError(t, a.Perform(v))

			assert.Equal(t, []point{{start.x + v.DX, start.y + v.DY}, start}, p.writes)
			assert.Equal(t, start, p.pos, "pointer must return to its origin")
			assert.Equal(t, []time.Duration{VisibilityDelay}, slept)
		}
	}
}

func TestActuatorZeroDelaySkipsSleep(t *testing.T) {
	p := &fakePointer{pos: point{10, 10}}
	a := NewActuator(p, 0)
	a.sleep = func(time.Duration) { t.Fatal("unexpected sleep") }

	require.NoError(t, a.Perform(patterns.Vector{DX: 5}))
	assert.Equal(t, point{10, 10}, p.pos)
}

func TestActuatorErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("read failure moves nothing", func(t *testing.T) {
		p := &fakePointer{readErr: boom}
		err := NewActuator(p, 0).Perform(patterns.Vector{DX: 1})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "read pointer position")
		assert.Empty(t, p.writes)
	})

	t.Run("offset failure", func(t *testing.T) {
		p := &fakePointer{pos: point{1, 1}, moveErr: boom}
		err := NewActuator(p, 0).Perform(patterns.Vector{DX: 1})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "offset pointer")
		assert.Equal(t, point{1, 1}, p.pos)
	})

	t.Run("restore failure", func(t *testing.T) {
		p := &fakePointer{pos: point{1, 1}, moveErr: boom, failAfter: 1}
		err := NewActuator(p, 0).Perform(patterns.Vector{DY: 3})
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "restore pointer")
	})
}
