package install

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/IWhitebird/tpdf-install/internal/artifact"
	"github.com/IWhitebird/tpdf-install/internal/logger"
)

// Target is the final filesystem location the executable must end up at.
type Target struct {
	// Dir is the install directory, created recursively if missing.
	Dir string
	// BinaryName is the executable's name inside Dir.
	BinaryName string
}

// Path returns the installed executable's full path.
func (t Target) Path() string {
	return filepath.Join(t.Dir, t.BinaryName)
}

// Options configures one pipeline run.
type Options struct {
	// VerifyChecksum enables SHA-256 verification when the release
	// publishes a checksum sidecar. A missing sidecar is a logged skip,
	// a mismatch is fatal.
	VerifyChecksum bool
	// GPGKeyFile, when set, requires the archive's detached signature to
	// verify against this public key. Unlike the checksum sidecar, a
	// missing signature is then fatal.
	GPGKeyFile string
}

// Pipeline retrieves a release archive into an isolated scratch area,
// unpacks it, and places the executable into the install directory.
//
// On success exactly one executable exists at the target path with the
// owner-execute bit set and the scratch area is gone. On failure the
// install target keeps its prior state - the only mutation of the install
// directory is the final atomic rename - and the scratch area is still
// cleaned up.
type Pipeline struct {
	downloader *Downloader
	extractor  *Extractor
	verifier   *Verifier
}

// NewPipeline creates a pipeline whose network operations are bounded by
// timeout.
func NewPipeline(timeout time.Duration) *Pipeline {
	return &Pipeline{
		downloader: NewDownloader(timeout),
		extractor:  NewExtractor(),
		verifier:   NewVerifier(),
	}
}

// Run executes the fetch-and-install sequence for one artifact.
func (p *Pipeline) Run(ctx context.Context, ref artifact.Reference, target Target, opts Options) (err error) {
	// The install directory is a shared resource; hold its advisory lock
	// for the whole run so concurrent invocations cannot interleave.
	lock, err := AcquireLock(target.Dir)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := lock.Release(); releaseErr != nil && err == nil {
			err = releaseErr
		}
	}()

	scratch, err := NewScratch()
	if err != nil {
		return err
	}
	defer func() {
		if removeErr := scratch.Remove(); removeErr != nil {
			logger.Warnf("cleanup: %v", removeErr)
		}
	}()

	archivePath := scratch.Path(ref.ArchiveName)
	if err := p.downloader.Fetch(ctx, ref.DownloadURL, archivePath); err != nil {
		return err
	}

	if err := p.verify(ctx, ref, archivePath, scratch, opts); err != nil {
		return err
	}

	staged := scratch.Path(target.BinaryName)
	if err := p.extractor.ExtractBinary(archivePath, staged, target.BinaryName); err != nil {
		return err
	}

	return place(staged, target)
}

// verify runs the optional integrity checks between fetch and unpack.
func (p *Pipeline) verify(ctx context.Context, ref artifact.Reference, archivePath string, scratch *Scratch, opts Options) error {
	if opts.VerifyChecksum {
		checksumPath := scratch.Path("checksums.txt")
		found, err := p.downloader.FetchOptional(ctx, ref.ChecksumURL, checksumPath)
		if err != nil {
			return err
		}

		if !found {
			logger.Debugf("release publishes no checksum file, skipping checksum verification")
		} else if err := p.verifier.VerifyChecksum(archivePath, checksumPath); err != nil {
			return err
		}
	}

	if opts.GPGKeyFile != "" {
		signaturePath := scratch.Path(ref.ArchiveName + ".sig")
		found, err := p.downloader.FetchOptional(ctx, ref.SignatureURL, signaturePath)
		if err != nil {
			return err
		}

		if !found {
			return &VerificationError{Method: "gpg", Reason: "release publishes no detached signature"}
		}

		if err := p.verifier.VerifySignature(archivePath, signaturePath, opts.GPGKeyFile); err != nil {
			return err
		}
	}

	return nil
}

// place moves the staged executable into the install directory under the
// target name. The copy goes to a dot-prefixed temp file inside the install
// directory first and is renamed over the final path, so a prior install is
// replaced atomically and no partial binary is ever visible. Re-running
// with the same or a different version overwrites the previous executable.
func place(staged string, target Target) error {
	src, err := os.Open(staged)
	if err != nil {
		return fmt.Errorf("open staged executable: %w", err)
	}
	defer src.Close()

	tmpPath := filepath.Join(target.Dir, "."+target.BinaryName+".partial")

	dst, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		if os.IsPermission(err) {
			return &PermissionError{Path: target.Dir, Cause: err}
		}
		return fmt.Errorf("create %s: %w", tmpPath, err)
	}

	cleanupNeeded := true
	defer func() {
		dst.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copy executable: %w", err)
	}

	// Owner-execute bit must survive a restrictive umask.
	if err := dst.Chmod(0o755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}

	if err := dst.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, target.Path()); err != nil {
		if os.IsPermission(err) {
			return &PermissionError{Path: target.Dir, Cause: err}
		}
		return fmt.Errorf("rename into place: %w", err)
	}

	cleanupNeeded = false
	return nil
}
