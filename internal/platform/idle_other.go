//go:build !linux && !darwin && !windows

package platform

import "time"

func idleTime() (time.Duration, error) {
	return 0, ErrUnsupported
}
