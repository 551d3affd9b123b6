package install

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractBinary(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "tpdf-linux-x86_64.tar.gz")

	archive := makeTarGz(t, map[string][]byte{
		"README.md": []byte("docs"),
		"tpdf":      []byte("#!ELF fake binary"),
	})
	require.NoError(t, os.WriteFile(archivePath, archive, 0o600))

	destPath := filepath.Join(dir, "staged", "tpdf")
	require.NoError(t, NewExtractor().ExtractBinary(archivePath, destPath, "tpdf"))

	content, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, "#!ELF fake binary", string(content))

	info, err := os.Stat(destPath)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode().Perm()&0o100, "owner-execute bit must be set")
}

// Release archives may nest the binary in a directory; matching is on the
// entry's base name.
func TestExtractBinaryNestedEntry(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.tar.gz")

	archive := makeTarGz(t, map[string][]byte{
		"tpdf-linux-x86_64/tpdf": []byte("binary"),
	})
	require.NoError(t, os.WriteFile(archivePath, archive, 0o600))

	destPath := filepath.Join(dir, "tpdf")
	require.NoError(t, NewExtractor().ExtractBinary(archivePath, destPath, "tpdf"))

	content, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(content))
}

func TestExtractBinaryMissingEntry(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.tar.gz")

	archive := makeTarGz(t, map[string][]byte{"other-tool": []byte("nope")})
	require.NoError(t, os.WriteFile(archivePath, archive, 0o600))

	err := NewExtractor().ExtractBinary(archivePath, filepath.Join(dir, "tpdf"), "tpdf")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, "extract", transport.Op)
}

func TestExtractBinaryCorruptArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "archive.tar.gz")
	require.NoError(t, os.WriteFile(archivePath, []byte("not gzip at all"), 0o600))

	err := NewExtractor().ExtractBinary(archivePath, filepath.Join(dir, "tpdf"), "tpdf")

	var transport *TransportError
	require.ErrorAs(t, err, &transport)
}
