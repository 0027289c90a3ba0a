// Package platform drives the pointer and reads user idle time on each
// supported operating system.
package platform

import "errors"

// ErrUnsupported is returned when no backend exists for the current platform.
var ErrUnsupported = errors.New("unsupported platform")

// Pointer reads and writes the absolute pointer position.
type Pointer interface {
	Position() (x, y int, err error)
	MoveTo(x, y int) error
}

// NewPointer returns the pointer backend for this build.
func NewPointer() (Pointer, error) {
	return newPointer()
}
