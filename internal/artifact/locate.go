// Package artifact maps a repository, platform, and version to the release
// archive's download address. Location is a fixed naming convention, not a
// lookup: once the platform and version are known, no further network round
// trip is needed.
package artifact

import (
	"fmt"

	"github.com/IWhitebird/tpdf-install/internal/platform"
)

// releaseHost is the host serving release downloads.
const releaseHost = "https://github.com"

// Reference identifies a downloadable release archive and its conventional
// verification sidecars.
type Reference struct {
	// DownloadURL is the archive address:
	// https://github.com/<repo>/releases/download/<version>/<platformTag>.tar.gz
	DownloadURL string
	// ArchiveName is the archive filename, "<platformTag>.tar.gz".
	ArchiveName string
	// ChecksumURL points at the release's checksums.txt. The sidecar may not
	// be published; consumers treat a 404 as "no checksums available".
	ChecksumURL string
	// SignatureURL points at the archive's detached GPG signature. Like the
	// checksum sidecar it is conventional, not guaranteed to exist.
	SignatureURL string
}

// Locate builds the Reference for one release asset. Pure: identical inputs
// always yield identical references, and any future platform added to the
// support matrix needs a correspondingly named asset published upstream.
func Locate(repository string, p platform.Platform, version, tool string) Reference {
	base := fmt.Sprintf("%s/%s/releases/download/%s", releaseHost, repository, version)
	archive := fmt.Sprintf("%s.tar.gz", p.Tag(tool))

	return Reference{
		DownloadURL:  fmt.Sprintf("%s/%s", base, archive),
		ArchiveName:  archive,
		ChecksumURL:  fmt.Sprintf("%s/checksums.txt", base),
		SignatureURL: fmt.Sprintf("%s/%s.sig", base, archive),
	}
}
