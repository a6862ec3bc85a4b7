package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/vision3d-engine/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLinesThenReadLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, WriteLines([]string{"alpha", "beta\n", "  gamma  "}, path, Truncate))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n  gamma  \n", string(raw))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, lines)

	require.NoError(t, WriteLines([]string{"delta"}, path, Append))
	lines, err = ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma", "delta"}, lines)

	require.NoError(t, WriteLines([]string{"omega"}, path, Truncate))
	lines, err = ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"omega"}, lines)
}

func TestReadLinesEmptyFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestEnsureDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, EnsureDir(nested))
	assert.DirExists(t, nested)
	require.NoError(t, EnsureDir(nested))

	filePath := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(filePath, []byte("x"), 0o644))
	err := EnsureDir(filePath)
	require.Error(t, err)
	assert.ErrorContains(t, err, "is not a directory")
}

func TestWriteAtomicReplacesContent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "artifact.bin")
	require.NoError(t, WriteAtomic(path, []byte("one"), 0o600))
	require.NoError(t, WriteAtomic(path, []byte("two"), 0o600))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(raw))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteCorrespondencesSinglePair(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "pair")
	path, err := WriteCorrespondences(base, []domain.Point3{{0, 0, 0}}, []domain.Point3{{1, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, base+".obj", path)

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"v 0.000000 0.000000 0.000000",
		"v 1.000000 1.000000 1.000000",
		"l 1 2",
	}, lines)
}

func TestWriteCorrespondencesOrdering(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corr.obj")
	src := []domain.Point3{{0.5, -1, 2}, {3, 4, 5}}
	tgt := []domain.Point3{{1, 1, 1}, {-0.25, 0, 9.1234567}}

	got, err := WriteCorrespondences(path, src, tgt)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"v 0.500000 -1.000000 2.000000",
		"v 1.000000 1.000000 1.000000",
		"v 3.000000 4.000000 5.000000",
		"v -0.250000 0.000000 9.123457",
		"l 1 2",
		"l 3 4",
	}, lines)
}

func TestWriteCorrespondencesRejectsLengthMismatch(t *testing.T) {
	t.Parallel()

	_, err := WriteCorrespondences(filepath.Join(t.TempDir(), "x"), []domain.Point3{{0, 0, 0}}, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, "length mismatch")
}
