package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
}

func TestUniquePath(t *testing.T) {
	t.Run("free_path_unchanged", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "a.txt")
		got, err := UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})

	t.Run("idempotent_without_fs_change", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "a.txt")
		first, err := UniquePath(target)
		require.NoError(t, err)
		second, err := UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("probes_monotonically", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "a.txt")

		touch(t, target)
		got, err := UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "a_1.txt"), got)

		touch(t, got)
		got, err = UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "a_2.txt"), got)

		touch(t, got)
		got, err = UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "a_3.txt"), got)
	})

	t.Run("preserves_suffix", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "archive.tar")
		touch(t, target)

		got, err := UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "archive_1.tar"), got)
	})

	t.Run("no_suffix", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "README")
		touch(t, target)

		got, err := UniquePath(target)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "README_1"), got)
	})
}
