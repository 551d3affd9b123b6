package install

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireLockExclusive(t *testing.T) {
	dir := t.TempDir()

	lock, err := AcquireLock(dir)
	require.NoError(t, err)
	defer lock.Release()

	_, err = AcquireLock(dir)
	assert.ErrorIs(t, err, ErrLockHeld)
}

func TestLockReleaseAllowsReacquire(t *testing.T) {
	dir := t.TempDir()

	lock, err := AcquireLock(dir)
	require.NoError(t, err)
	require.NoError(t, lock.Release())

	// Release twice is fine.
	require.NoError(t, lock.Release())

	second, err := AcquireLock(dir)
	require.NoError(t, err)
	require.NoError(t, second.Release())
}

func TestAcquireLockCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "bin")

	lock, err := AcquireLock(dir)
	require.NoError(t, err)
	defer lock.Release()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStaleLockTakeover(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, lockFilename)

	// A lock left behind by a dead run, older than the stale threshold.
	require.NoError(t, os.WriteFile(lockPath, []byte("pid=1\n"), 0o600))
	old := time.Now().Add(-2 * staleLockThreshold)
	require.NoError(t, os.Chtimes(lockPath, old, old))

	lock, err := AcquireLock(dir)
	require.NoError(t, err)
	require.NoError(t, lock.Release())
}
