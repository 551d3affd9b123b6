package platform

import (
	"fmt"
	"strings"
)

// OS is a supported operating system family.
type OS string

// Arch is a supported CPU architecture.
type Arch string

const (
	// OSLinux covers Linux-family kernels.
	OSLinux OS = "linux"
	// OSMacOS covers Darwin-family kernels.
	OSMacOS OS = "macos"

	// ArchX8664 is 64-bit x86 (x86_64/amd64).
	ArchX8664 Arch = "x86_64"
	// ArchAarch64 is 64-bit ARM (aarch64/arm64).
	ArchAarch64 Arch = "aarch64"
)

// Report holds the raw host identification strings used for classification.
// Kernel is the kernel family name (uname -s style, e.g. "Linux", "Darwin")
// and Machine is the hardware architecture (uname -m style, e.g. "x86_64").
type Report struct {
	Kernel  string
	Machine string
}

// Platform is a classified OS/architecture pair.
type Platform struct {
	OS   OS
	Arch Arch
}

// String returns "<os>-<arch>".
func (p Platform) String() string {
	return fmt.Sprintf("%s-%s", p.OS, p.Arch)
}

// Tag returns the release asset tag "<tool>-<os>-<arch>". This exact string
// is used verbatim as a URL path segment, so the mapping is part of the
// release-asset naming contract.
func (p Platform) Tag(tool string) string {
	return fmt.Sprintf("%s-%s-%s", tool, p.OS, p.Arch)
}

// UnsupportedPlatformError is returned when the host reports an OS or
// architecture outside the supported matrix.
type UnsupportedPlatformError struct {
	Field string // "os" or "arch"
	Value string // the offending report value
}

func (e *UnsupportedPlatformError) Error() string {
	switch e.Field {
	case "os":
		return fmt.Sprintf("unsupported operating system: %s (supported: linux, macos)", e.Value)
	case "arch":
		return fmt.Sprintf("unsupported architecture: %s (supported: x86_64, aarch64)", e.Value)
	default:
		return fmt.Sprintf("unsupported platform: %s", e.Value)
	}
}

// Identify classifies a host report into a Platform. It is pure: no
// introspection, no I/O. Values outside the supported matrix fail with
// UnsupportedPlatformError, never silent coercion.
func Identify(report Report) (Platform, error) {
	os, err := classifyOS(report.Kernel)
	if err != nil {
		return Platform{}, err
	}

	arch, err := classifyArch(report.Machine)
	if err != nil {
		return Platform{}, err
	}

	return Platform{OS: os, Arch: arch}, nil
}

// classifyOS maps a kernel family report to a supported OS.
// Matching is by case-insensitive prefix: "Linux"-prefixed reports are linux,
// "Darwin"-prefixed reports are macos.
func classifyOS(kernel string) (OS, error) {
	name := strings.ToLower(strings.TrimSpace(kernel))

	switch {
	case strings.HasPrefix(name, "linux"):
		return OSLinux, nil
	case strings.HasPrefix(name, "darwin"):
		return OSMacOS, nil
	default:
		return "", &UnsupportedPlatformError{Field: "os", Value: kernel}
	}
}

// classifyArch maps a machine architecture report to a supported Arch.
func classifyArch(machine string) (Arch, error) {
	switch strings.ToLower(strings.TrimSpace(machine)) {
	case "x86_64", "amd64":
		return ArchX8664, nil
	case "aarch64", "arm64":
		return ArchAarch64, nil
	default:
		return "", &UnsupportedPlatformError{Field: "arch", Value: machine}
	}
}
