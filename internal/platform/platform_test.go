package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdentifySupportedMatrix(t *testing.T) {
	tests := []struct {
		name    string
		kernel  string
		machine string
		want    Platform
	}{
		{"linux x86_64", "Linux", "x86_64", Platform{OSLinux, ArchX8664}},
		{"linux amd64", "Linux", "amd64", Platform{OSLinux, ArchX8664}},
		{"linux aarch64", "Linux", "aarch64", Platform{OSLinux, ArchAarch64}},
		{"linux arm64", "Linux", "arm64", Platform{OSLinux, ArchAarch64}},
		{"darwin x86_64", "Darwin", "x86_64", Platform{OSMacOS, ArchX8664}},
		{"darwin arm64", "Darwin", "arm64", Platform{OSMacOS, ArchAarch64}},
		{"lowercase kernel", "linux", "x86_64", Platform{OSLinux, ArchX8664}},
		{"kernel with suffix", "Linux version 6.1", "x86_64", Platform{OSLinux, ArchX8664}},
		{"padded machine", "Darwin", " arm64 ", Platform{OSMacOS, ArchAarch64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Identify(Report{Kernel: tt.kernel, Machine: tt.machine})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentifyUnsupported(t *testing.T) {
	tests := []struct {
		name    string
		kernel  string
		machine string
		field   string
	}{
		{"windows", "Windows_NT", "x86_64", "os"},
		{"freebsd", "FreeBSD", "amd64", "os"},
		{"empty kernel", "", "x86_64", "os"},
		{"i386", "Linux", "i386", "arch"},
		{"armv7", "Linux", "armv7l", "arch"},
		{"riscv", "Linux", "riscv64", "arch"},
		{"empty machine", "Darwin", "", "arch"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Identify(Report{Kernel: tt.kernel, Machine: tt.machine})
			require.Error(t, err)

			var unsupported *UnsupportedPlatformError
			require.ErrorAs(t, err, &unsupported)
			assert.Equal(t, tt.field, unsupported.Field)
		})
	}
}

// The OS classification is keyed on the kernel report prefix, so an OS error
// must name the kernel value and an arch error the machine value.
func TestUnsupportedPlatformErrorNamesOffendingValue(t *testing.T) {
	_, err := Identify(Report{Kernel: "Plan9", Machine: "x86_64"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Plan9")

	_, err = Identify(Report{Kernel: "Linux", Machine: "mips64"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mips64")
}

func TestPlatformTag(t *testing.T) {
	tests := []struct {
		platform Platform
		tool     string
		want     string
	}{
		{Platform{OSLinux, ArchX8664}, "tpdf", "tpdf-linux-x86_64"},
		{Platform{OSLinux, ArchAarch64}, "tpdf", "tpdf-linux-aarch64"},
		{Platform{OSMacOS, ArchX8664}, "tpdf", "tpdf-macos-x86_64"},
		{Platform{OSMacOS, ArchAarch64}, "tpdf", "tpdf-macos-aarch64"},
		{Platform{OSLinux, ArchX8664}, "tool", "tool-linux-x86_64"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.platform.Tag(tt.tool))
		})
	}
}
