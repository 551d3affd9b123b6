// Package platform classifies the running host into the closed set of
// OS/architecture pairs that tpdf publishes release archives for.
//
// Classification is split into two layers: HostReport performs the live
// introspection (via gopsutil) and Identify performs the pure mapping from
// raw report strings to a Platform. Anything outside the supported matrix
// (linux/macos crossed with x86_64/aarch64) is a terminal
// UnsupportedPlatformError; no value is ever silently coerced.
package platform
