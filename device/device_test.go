package device_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipecore/diskwipe/config"
	"github.com/wipecore/diskwipe/device"
)

func TestOpenRegularFileFallsBackToStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o600))

	info, err := device.Open(path, config.Cached)
	require.NoError(t, err)
	defer info.Handle.Close()

	assert.Equal(t, int64(4096), info.Size)
	assert.Equal(t, int64(512), info.BlockSize)
}

func TestOpenMissingFileFails(t *testing.T) {
	_, err := device.Open(filepath.Join(t.TempDir(), "missing.img"), config.Cached)
	assert.Error(t, err)
}

func TestOpenedHandleIsSeekableAndWritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "disk.img")
	require.NoError(t, os.WriteFile(path, make([]byte, 4096), 0o600))

	info, err := device.Open(path, config.Cached)
	require.NoError(t, err)
	defer info.Handle.Close()

	n, err := info.Handle.Write([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, 4, n)

	off, err := info.Handle.Seek(0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), off)

	require.NoError(t, info.Handle.Sync())
}
