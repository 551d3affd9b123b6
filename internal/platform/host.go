package platform

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/host"
)

// HostReport gathers the raw kernel and machine identification for the
// running host using gopsutil. KernelArch carries the uname -m value
// (e.g. "x86_64", "aarch64"), OS the kernel family name.
func HostReport(ctx context.Context) (Report, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("host introspection: %w", err)
	}

	return Report{
		Kernel:  info.OS,
		Machine: info.KernelArch,
	}, nil
}

// Detect identifies the running host's platform, failing with
// UnsupportedPlatformError for anything outside the supported matrix.
func Detect(ctx context.Context) (Platform, error) {
	report, err := HostReport(ctx)
	if err != nil {
		return Platform{}, err
	}

	return Identify(report)
}
