package organize

import (
	"io"
	"os"
	"syscall"
	"time"

	"gitlab.com/tozd/go/errors"
)

// MoveFile relocates src to dst. Rename is tried first; when the rename
// fails because src and dst sit on different devices, it falls back to
// copy-then-remove.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}

	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("moving file: %w", err)
	}

	// Cross-device rename fails with EXDEV; copy and remove instead.
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	if err := os.Remove(src); err != nil {
		return errors.Errorf("removing source after cross-device copy: %w", err)
	}
	return nil
}

// CopyFile duplicates src at dst, preserving the source's permission bits
// and modification time.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.Errorf("statting source file: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating target file: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return errors.Errorf("copying file content: %w", err)
	}
	if err := out.Close(); err != nil {
		return errors.Errorf("closing target file: %w", err)
	}

	if err := os.Chtimes(dst, time.Now(), info.ModTime()); err != nil {
		return errors.Errorf("preserving modification time: %w", err)
	}
	return nil
}
