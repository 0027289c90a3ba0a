//go:build linux

package linux

import (
	"fmt"
	"strings"
)

// DependencyInfo contains information about a missing dependency and how to install it.
type DependencyInfo struct {
	Name        string
	WhyNeeded   string
	InstallCmd  string
	Alternative string
}

// GenerateInstallCommand generates a distro-specific installation command for the given tool.
func GenerateInstallCommand(tool string, distro DistroInfo) string {
	switch distro.PkgManager {
	case "apt":
		return fmt.Sprintf("sudo apt update && sudo apt install %s", tool)
	case "dnf", "yum":
		return fmt.Sprintf("sudo %s install %s", distro.PkgManager, tool)
	case "pacman":
		return fmt.Sprintf("sudo pacman -S %s", tool)
	case "zypper":
		return fmt.Sprintf("sudo zypper install %s", tool)
	case "apk":
		return fmt.Sprintf("sudo apk add %s", tool)
	default:
		return fmt.Sprintf("Install %s using your distribution's package manager", tool)
	}
}

// CheckMissingDependencies checks which helper tools are missing.
// needPointer is false when the pointer is driven natively.
func CheckMissingDependencies(caps Capabilities, distro DistroInfo, needPointer bool) []DependencyInfo {
	var missing []DependencyInfo

	if caps.DisplayServer == DisplayServerWayland {
		missing = append(missing, DependencyInfo{
			Name:        "X11 session",
			WhyNeeded:   "Pointer control and idle detection are not available on Wayland",
			Alternative: "Log in with an X11 (Xorg) session",
		})
		return missing
	}

	if needPointer && !caps.XdotoolAvailable {
		missing = append(missing, DependencyInfo{
			Name:       "xdotool",
			WhyNeeded:  "Reads and moves the pointer on X11",
			InstallCmd: GenerateInstallCommand("xdotool", distro),
		})
	}

	if !caps.XprintidleAvailable {
		missing = append(missing, DependencyInfo{
			Name:        "xprintidle",
			WhyNeeded:   "Detects user activity so jiggles pause while you work",
			InstallCmd:  GenerateInstallCommand("xprintidle", distro),
			Alternative: "Without it every scheduled jiggle runs (idle awareness is disabled)",
		})
	}

	return missing
}

// FormatDependencyMessages formats dependency information into user-friendly messages.
func FormatDependencyMessages(missing []DependencyInfo) string {
	if len(missing) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Missing dependencies detected:\n")
	for i, dep := range missing {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, dep.Name))
		b.WriteString(fmt.Sprintf("   Why needed: %s\n", dep.WhyNeeded))
		if dep.InstallCmd != "" {
			b.WriteString(fmt.Sprintf("   Install with: %s\n", dep.InstallCmd))
		}
		if dep.Alternative != "" {
			b.WriteString(fmt.Sprintf("   Alternative: %s\n", dep.Alternative))
		}
	}
	return b.String()
}

// GetDependencyMessage returns the formatted dependency message if dependencies are missing.
func GetDependencyMessage(needPointer bool) string {
	missing := CheckMissingDependencies(DetectCapabilities(), DetectDistribution(), needPointer)
	return FormatDependencyMessages(missing)
}
