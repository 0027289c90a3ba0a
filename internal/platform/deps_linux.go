//go:build linux

package platform

import "github.com/stigoleg/jiggler/internal/platform/linux"

// DependencyMessage describes missing helper tools, or "" when none are missing.
func DependencyMessage() string {
	return linux.GetDependencyMessage(!NativePointer)
}
