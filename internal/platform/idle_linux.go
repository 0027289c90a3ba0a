//go:build linux

package platform

import (
	"time"

	"github.com/stigoleg/jiggler/internal/platform/linux"
)

func idleTime() (time.Duration, error) {
	return linux.GetIdleTime()
}
