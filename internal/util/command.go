package util

import (
	"fmt"
	"os/exec"
	"runtime"
)

// HasCommand checks if a command is available in the system PATH.
func HasCommand(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// openCommand returns the command that opens path with the desktop's
// default application on goos.
func openCommand(goos, path string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	default:
		return "xdg-open", []string{path}
	}
}

// OpenPath opens path in the default application without waiting for it.
func OpenPath(path string) error {
	name, args := openCommand(runtime.GOOS, path)
	if !HasCommand(name) {
		return fmt.Errorf("open %s: %s not found", path, name)
	}
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
