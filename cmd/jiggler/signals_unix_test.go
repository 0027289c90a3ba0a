//go:build !windows

package main

import (
	"os"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestWaitForSignalIgnoresSuspend(t *testing.T) {
	sigChan := make(chan os.Signal, 2)
	sigChan <- syscall.SIGTSTP
	sigChan <- syscall.SIGTERM

	assert.Equal(t, syscall.SIGTERM, waitForSignal(sigChan, zaptest.NewLogger(t).Sugar()))
}
