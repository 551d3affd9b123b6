package install

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScratchUniquePerRun(t *testing.T) {
	first, err := NewScratch()
	require.NoError(t, err)
	defer first.Remove()

	second, err := NewScratch()
	require.NoError(t, err)
	defer second.Remove()

	assert.NotEqual(t, first.Dir(), second.Dir())
}

func TestScratchRemove(t *testing.T) {
	scratch, err := NewScratch()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(scratch.Path("archive.tar.gz"), []byte("data"), 0o600))

	require.NoError(t, scratch.Remove())

	_, err = os.Stat(scratch.Dir())
	assert.True(t, os.IsNotExist(err))

	// Remove twice is fine.
	assert.NoError(t, scratch.Remove())
}
