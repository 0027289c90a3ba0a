package platform

import (
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	// MaxIdle is reported when the idle time cannot be read, so a failing
	// query never suppresses a jiggle.
	MaxIdle = time.Duration(math.MaxInt64)

	idleWarnEvery = time.Minute
)

// IdleMonitor reports how long the user has been inactive.
type IdleMonitor interface {
	IdleDuration() time.Duration
}

// SystemIdleMonitor queries the OS for the time since the last input event.
type SystemIdleMonitor struct {
	query  func() (time.Duration, error)
	now    func() time.Time
	logger *zap.SugaredLogger

	mu       sync.Mutex
	lastWarn time.Time
}

// NewIdleMonitor returns the idle monitor for this platform.
func NewIdleMonitor(logger *zap.SugaredLogger) *SystemIdleMonitor {
	return newSystemIdleMonitor(idleTime, logger)
}

func newSystemIdleMonitor(query func() (time.Duration, error), logger *zap.SugaredLogger) *SystemIdleMonitor {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &SystemIdleMonitor{
		query:  query,
		now:    time.Now,
		logger: logger,
	}
}

// IdleDuration returns the idle time, or MaxIdle when the query fails.
func (m *SystemIdleMonitor) IdleDuration() time.Duration {
	d, err := m.query()
	if err != nil {
		m.warn(err)
		return MaxIdle
	}
	if d < 0 {
		return 0
	}
	return d
}

func (m *SystemIdleMonitor) warn(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if !m.lastWarn.IsZero() && now.Sub(m.lastWarn) < idleWarnEvery {
		return
	}
	m.lastWarn = now
	m.logger.Warnf("platform: idle time unavailable, treating user as idle: %v", err)
}
