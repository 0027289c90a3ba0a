//go:build !linux

package platform

// DependencyMessage describes missing helper tools, or "" when none are missing.
func DependencyMessage() string {
	return ""
}
