// Package output writes exported documents to local disk.
//
// Each write holds an advisory lock keyed by the target path and replaces the
// target through a rename, so two exports aimed at the same path never
// interleave and readers never observe a half-written file. Lock files live
// under the system temp directory, not next to the exports.
package output

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// ErrLockTimeout is returned when another writer holds the lock for too long.
var ErrLockTimeout = errors.New("timeout acquiring export lock")

const (
	lockPollInterval = 10 * time.Millisecond
	lockDirName      = "gworkspace-mcp-locks"
	exportFileMode   = 0o644
)

// Writer writes files under an advisory lock.
type Writer struct {
	lockTimeout time.Duration
	lockDir     string
}

// NewWriter returns a Writer that waits at most lockTimeout for a lock.
func NewWriter(lockTimeout time.Duration) *Writer {
	return &Writer{
		lockTimeout: lockTimeout,
		lockDir:     filepath.Join(os.TempDir(), lockDirName),
	}
}

// lockPath maps path to its lock file. Relative and absolute spellings of the
// same target share one lock.
func (w *Writer) lockPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	sum := sha256.Sum256([]byte(filepath.Clean(path)))
	return filepath.Join(w.lockDir, hex.EncodeToString(sum[:16])+".lock")
}

// WriteFile writes data to path, creating parent directories as needed.
func (w *Writer) WriteFile(ctx context.Context, path string, data []byte) error {
	if path == "" {
		return errors.New("output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	lockCtx, cancel := context.WithTimeout(ctx, w.lockTimeout)
	defer cancel()

	if err := os.MkdirAll(w.lockDir, 0o700); err != nil {
		return fmt.Errorf("failed to create lock directory: %w", err)
	}
	lock := flock.New(w.lockPath(path))
	locked, err := lock.TryLockContext(lockCtx, lockPollInterval)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w for %s", ErrLockTimeout, path)
		}
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	if !locked {
		return fmt.Errorf("%w for %s", ErrLockTimeout, path)
	}
	defer func() { _ = lock.Unlock() }()

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	// CreateTemp uses 0600; exports are ordinary user files.
	if err := tmp.Chmod(exportFileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to set mode of %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// FileName builds "<name>.<ext>" from a Drive file name, replacing characters
// that would escape the output directory or are invalid on common file
// systems. fallback is used when nothing printable remains.
func FileName(name, ext, fallback string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, name)
	cleaned = strings.Trim(strings.TrimSpace(cleaned), ".")
	if cleaned == "" {
		cleaned = fallback
	}
	return cleaned + "." + ext
}
