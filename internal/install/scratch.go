package install

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Scratch is an isolated per-run temporary workspace for download and
// extraction. The name carries a UUID so concurrent runs can never collide,
// and the area is removed on every exit path of the run that owns it.
type Scratch struct {
	dir string
}

// NewScratch creates a uniquely named scratch directory under the system
// temporary directory.
func NewScratch() (*Scratch, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("tpdf-install-%s", uuid.NewString()))

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}

	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Path returns the path of name inside the scratch area.
func (s *Scratch) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Remove deletes the scratch area recursively. Safe to call more than once.
func (s *Scratch) Remove() error {
	if err := os.RemoveAll(s.dir); err != nil {
		return fmt.Errorf("remove scratch directory: %w", err)
	}
	return nil
}
