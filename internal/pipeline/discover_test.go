package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverNamed(t *testing.T) {
	root := t.TempDir()
	mk := func(parts ...string) {
		t.Helper()
		p := filepath.Join(append([]string{root}, parts...)...)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}

	mk("10", "clip.mp4")
	mk("2", "clip.mp4")
	mk("3", "other.mp4")         // right folder, wrong name
	mk(".hidden", "clip.mp4")    // hidden folders are pruned
	mk("nested", "a", "clip.mp4") // only immediate children count
	require.NoError(t, os.WriteFile(filepath.Join(root, "clip.mp4"), []byte("x"), 0o644))

	files, err := DiscoverNamed(root, "clip.mp4")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "10", "clip.mp4"),
		filepath.Join(root, "2", "clip.mp4"),
	}, files)
}

func TestDiscoverNamedSkipsDirectoriesNamedLikeTarget(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "a", "clip.mp4"), 0o755))

	files, err := DiscoverNamed(root, "clip.mp4")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverNamedMissingRoot(t *testing.T) {
	_, err := DiscoverNamed(filepath.Join(t.TempDir(), "nope"), "clip.mp4")
	assert.Error(t, err)
}

func TestDiscoverNamedEmptyRoot(t *testing.T) {
	files, err := DiscoverNamed(t.TempDir(), "clip.mp4")
	require.NoError(t, err)
	assert.Empty(t, files)
}
