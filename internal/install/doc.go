// Package install implements the fetch-and-install pipeline: it retrieves a
// release archive into an isolated per-run scratch area, optionally verifies
// it against the release's checksum and signature sidecars, unpacks the
// single expected executable, and places it into the install directory
// atomically.
//
// # Failure semantics
//
// Every error is fatal and immediate: no retry, no partial-success mode.
// Until the final rename, the install directory is never mutated beyond
// being created, so a failed run leaves any prior installation intact. The
// scratch area is released on every exit path, including early termination.
//
// # Shared-resource policy
//
// The scratch area is exclusive to one run by construction (UUID-named).
// The install directory is shared and externally visible, so the pipeline
// holds an advisory lock file inside it for the duration of the run; a
// second concurrent run fails fast instead of racing the move step.
package install
