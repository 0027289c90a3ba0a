package main

import (
	"sync"

	"github.com/stigoleg/jiggler/internal/engine"
)

// fanout delivers each notification to every registered sink.
type fanout struct {
	mu    sync.RWMutex
	sinks []engine.Notifier
}

func (f *fanout) Add(n engine.Notifier) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sinks = append(f.sinks, n)
}

func (f *fanout) Notify(message string) {
	f.mu.RLock()
	sinks := f.sinks
	f.mu.RUnlock()

	for _, n := range sinks {
		n.Notify(message)
	}
}
