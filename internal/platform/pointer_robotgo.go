//go:build cgo && (darwin || linux || windows)

package platform

import "github.com/go-vgo/robotgo"

type robotgoPointer struct{}

func newPointer() (Pointer, error) {
	return robotgoPointer{}, nil
}

func (robotgoPointer) Position() (int, int, error) {
	x, y := robotgo.Location()
	return x, y, nil
}

func (robotgoPointer) MoveTo(x, y int) error {
	robotgo.Move(x, y)
	return nil
}

// NativePointer reports whether the pointer is driven without helper tools.
const NativePointer = true
