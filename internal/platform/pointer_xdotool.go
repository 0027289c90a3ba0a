//go:build !cgo && linux

package platform

import "github.com/stigoleg/jiggler/internal/platform/linux"

func newPointer() (Pointer, error) {
	p, err := linux.NewXdotoolPointer()
	if err != nil {
		return nil, err
	}
	return p, nil
}

// NativePointer reports whether the pointer is driven without helper tools.
const NativePointer = false
