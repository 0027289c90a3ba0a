package platform

import (
	"errors"
	"fmt"
	"hash/fnv"
	"net"
)

// ErrAlreadyRunning indicates another instance already holds the lock.
var ErrAlreadyRunning = errors.New("jiggler is already running")

// InstanceLock is held for the lifetime of the process.
type InstanceLock struct {
	listener net.Listener
}

// AcquireInstanceLock binds a localhost port derived from name. A second
// process asking for the same name gets ErrAlreadyRunning.
func AcquireInstanceLock(name string) (*InstanceLock, error) {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", instancePort(name)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlreadyRunning, err)
	}
	return &InstanceLock{listener: listener}, nil
}

// Release frees the lock. It is safe on a nil lock.
func (l *InstanceLock) Release() error {
	if l == nil || l.listener == nil {
		return nil
	}
	return l.listener.Close()
}

func instancePort(name string) int {
	const (
		minPort = 20000
		maxPort = 39999
	)
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return minPort + int(h.Sum32()%uint32(maxPort-minPort+1))
}
