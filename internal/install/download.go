package install

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// DefaultUserAgent is the User-Agent header sent with downloads.
const DefaultUserAgent = "tpdf-install/1.0"

// Downloader performs single-shot HTTP downloads into the scratch area.
// A download failure aborts the whole run: the installer is a one-shot
// bootstrap, so there is deliberately no retry loop.
type Downloader struct {
	client    *http.Client
	userAgent string
	// showProgress renders a progress bar on stderr for TTY sessions.
	showProgress bool
}

// NewDownloader creates a downloader whose requests are bounded by timeout.
// A zero timeout means no bound.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return fmt.Errorf("too many redirects")
				}
				return nil
			},
		},
		userAgent:    DefaultUserAgent,
		showProgress: true,
	}
}

// Fetch downloads url to destPath. Any transport error, non-success status,
// or truncated transfer is a TransportError.
func (d *Downloader) Fetch(ctx context.Context, url, destPath string) error {
	found, err := d.fetch(ctx, url, destPath, false)
	if err != nil {
		return err
	}
	if !found {
		// Unreachable with optional=false, kept for symmetry.
		return &TransportError{Op: "download", Source: url, Cause: fmt.Errorf("not found")}
	}
	return nil
}

// FetchOptional downloads url to destPath, reporting found=false instead of
// an error when the server has no such object. Used for verification
// sidecars that a release may or may not publish.
func (d *Downloader) FetchOptional(ctx context.Context, url, destPath string) (bool, error) {
	return d.fetch(ctx, url, destPath, true)
}

func (d *Downloader) fetch(ctx context.Context, url, destPath string, optional bool) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, &TransportError{Op: "download", Source: url, Cause: err}
	}

	req.Header.Set("User-Agent", d.userAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return false, &TransportError{Op: "download", Source: url, Cause: err}
	}
	defer resp.Body.Close()

	if optional && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}

	if resp.StatusCode != http.StatusOK {
		return false, &TransportError{
			Op:     "download",
			Source: url,
			Cause:  fmt.Errorf("unexpected status code: %d", resp.StatusCode),
		}
	}

	body := io.Reader(resp.Body)
	if d.showProgress && !optional {
		data, finish := progress(resp.Body, resp.ContentLength)
		defer finish()
		body = data
	}

	// Download to a temp name first so a truncated transfer never leaves a
	// plausible-looking file at destPath.
	tmpPath := destPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return false, fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, body)
	if err != nil {
		return false, &TransportError{Op: "download", Source: url, Cause: err}
	}

	if resp.ContentLength >= 0 && written != resp.ContentLength {
		return false, &TransportError{
			Op:     "download",
			Source: url,
			Cause:  fmt.Errorf("truncated transfer: got %d of %d bytes", written, resp.ContentLength),
		}
	}

	if err := tmpFile.Close(); err != nil {
		return false, fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return false, fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return true, nil
}
