// Package release resolves the newest published version of a repository
// from its hosted release index.
//
// The index response is parsed with strict field access (the tag_name key of
// the latest-release document) so that a malformed or reordered response
// fails with a precise diagnostic instead of silently reading the wrong
// field.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	// DefaultAPIBase is the release-index endpoint root.
	DefaultAPIBase = "https://api.github.com"
	// DefaultUserAgent is the User-Agent header sent with index queries.
	DefaultUserAgent = "tpdf-install/1.0"

	// maxIndexResponse caps how much of the index response is read.
	// The latest-release document is a few KB; anything past this is bogus.
	maxIndexResponse = 1 << 20
)

// MissingDependencyError indicates no HTTP-capable client is available to
// query the release index. It is reported before any network call.
type MissingDependencyError struct {
	Dependency string
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("missing dependency: %s", e.Dependency)
}

// VersionResolutionError indicates the release index returned a document the
// newest version tag could not be extracted from.
type VersionResolutionError struct {
	Repository string
	Reason     string
	Cause      error
}

func (e *VersionResolutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("resolve latest version of %s: %s: %v", e.Repository, e.Reason, e.Cause)
	}
	return fmt.Sprintf("resolve latest version of %s: %s", e.Repository, e.Reason)
}

func (e *VersionResolutionError) Unwrap() error {
	return e.Cause
}

// latestRelease is the subset of the index document this tool depends on.
type latestRelease struct {
	TagName string `json:"tag_name"`
}

// Resolver queries a release index for latest-release metadata.
type Resolver struct {
	client    *http.Client
	apiBase   string
	userAgent string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithAPIBase overrides the release-index endpoint root (used by tests and
// mirrors).
func WithAPIBase(base string) Option {
	return func(r *Resolver) {
		r.apiBase = strings.TrimRight(base, "/")
	}
}

// NewResolver creates a resolver backed by the given HTTP client. The client
// may be nil, in which case every resolution fails with
// MissingDependencyError before any network call.
func NewResolver(client *http.Client, opts ...Option) *Resolver {
	r := &Resolver{
		client:    client,
		apiBase:   DefaultAPIBase,
		userAgent: DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Latest returns the newest published version tag of the repository. The tag
// is treated as an opaque token: no semantic-version parsing or comparison,
// "latest" is whatever the index reports.
func (r *Resolver) Latest(ctx context.Context, repository string) (string, error) {
	if r.client == nil {
		return "", &MissingDependencyError{Dependency: "HTTP client"}
	}

	url := fmt.Sprintf("%s/repos/%s/releases/latest", r.apiBase, repository)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", r.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("query release index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("query release index: unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxIndexResponse))
	if err != nil {
		return "", fmt.Errorf("read release index response: %w", err)
	}

	var latest latestRelease
	if err := json.Unmarshal(body, &latest); err != nil {
		return "", &VersionResolutionError{
			Repository: repository,
			Reason:     "malformed release index response",
			Cause:      err,
		}
	}

	tag := strings.TrimSpace(latest.TagName)
	if tag == "" {
		return "", &VersionResolutionError{
			Repository: repository,
			Reason:     "release index reported no version tag",
		}
	}

	return tag, nil
}
