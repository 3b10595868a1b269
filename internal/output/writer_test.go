package output

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/gofrs/flock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWriter(t *testing.T, lockTimeout time.Duration) *Writer {
	t.Helper()
	return &Writer{lockTimeout: lockTimeout, lockDir: t.TempDir()}
}

func TestWriter_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "report.pdf")
	w := newTestWriter(t, time.Second)

	require.NoError(t, w.WriteFile(context.Background(), path, []byte("first")))
	require.NoError(t, w.WriteFile(context.Background(), path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp", "temporary files must be cleaned up")
		assert.NotContains(t, e.Name(), ".lock", "lock files must stay out of the output directory")
	}
	assert.Len(t, entries, 1)
}

func TestWriter_WriteFile_Mode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	path := filepath.Join(t.TempDir(), "report.pdf")

	require.NoError(t, newTestWriter(t, time.Second).WriteFile(context.Background(), path, []byte("x")))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestWriter_LockPath(t *testing.T) {
	w := newTestWriter(t, time.Second)
	dir := t.TempDir()

	a := w.lockPath(filepath.Join(dir, "a.pdf"))
	assert.Equal(t, w.lockDir, filepath.Dir(a))
	assert.Equal(t, a, w.lockPath(filepath.Join(dir, "sub", "..", "a.pdf")))
	assert.NotEqual(t, a, w.lockPath(filepath.Join(dir, "b.pdf")))
}

func TestWriter_WriteFile_LockTimeout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.pdf")

	w := newTestWriter(t, 50*time.Millisecond)

	held := flock.New(w.lockPath(path))
	ok, err := held.TryLock()
	require.NoError(t, err)
	require.True(t, ok)
	defer func() { _ = held.Unlock() }()

	err = w.WriteFile(context.Background(), path, []byte("x"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLockTimeout)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestWriter_WriteFile_EmptyPath(t *testing.T) {
	err := newTestWriter(t, time.Second).WriteFile(context.Background(), "", []byte("x"))
	require.Error(t, err)
}

func TestFileName(t *testing.T) {
	tests := []struct {
		name, ext, fallback, want string
	}{
		{"Quarterly Report", "pdf", "id1", "Quarterly Report.pdf"},
		{"a/b\\c", "docx", "id1", "a_b_c.docx"},
		{"../../etc", "pdf", "id1", "_.._etc.pdf"},
		{"   ", "xlsx", "id1", "id1.xlsx"},
		{"...", "pptx", "id2", "id2.pptx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FileName(tt.name, tt.ext, tt.fallback))
		})
	}
}
