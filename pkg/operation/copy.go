package operation

import (
	"io"
	"os"
	"time"

	"gitlab.com/tozd/go/errors"
)

// copyFile copies src to dst and restores the source's permission
// bits and modification time on the destination. An existing
// destination file is truncated in place.
func copyFile(src, dst string, srcInfo os.FileInfo) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	destination, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}

	if _, err := io.Copy(destination, source); err != nil {
		destination.Close()
		return errors.Errorf("copying file content: %w", err)
	}
	if err := destination.Close(); err != nil {
		return errors.Errorf("closing destination file: %w", err)
	}

	if err := os.Chmod(dst, srcInfo.Mode().Perm()); err != nil {
		return errors.Errorf("restoring permissions: %w", err)
	}
	if err := os.Chtimes(dst, time.Now(), srcInfo.ModTime()); err != nil {
		return errors.Errorf("restoring modification time: %w", err)
	}

	return nil
}
