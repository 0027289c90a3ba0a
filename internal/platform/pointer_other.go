//go:build !linux && (!cgo || !(darwin || windows))

package platform

func newPointer() (Pointer, error) {
	return nil, ErrUnsupported
}

// NativePointer reports whether the pointer is driven without helper tools.
const NativePointer = false
