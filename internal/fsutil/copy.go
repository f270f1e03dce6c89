// Package fsutil holds the single-file copy primitive used by backup and
// restore.
package fsutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CopyFile copies srcDir/name to dstDir/name, keeping the permission bits of
// the source and overwriting any existing destination, including a read-only
// one. Symlinks in the source are followed.
func CopyFile(srcDir, dstDir, name string) error {
	src := filepath.Join(srcDir, name)
	dst := filepath.Join(dstDir, name)

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", src, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", src)
	}

	out, err := openDest(dst, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s to %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", dst, err)
	}

	// OpenFile only applies the mode on creation.
	if err := os.Chmod(dst, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to set mode on %s: %w", dst, err)
	}

	return nil
}

// openDest opens dst for writing, truncating it. An existing destination
// without write permission, such as a previous copy of a read-only source, is
// removed and recreated.
func openDest(dst string, perm os.FileMode) (*os.File, error) {
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err == nil || !os.IsPermission(err) {
		return out, err
	}

	if _, statErr := os.Lstat(dst); statErr != nil {
		return nil, err
	}
	if rmErr := os.Remove(dst); rmErr != nil {
		return nil, err
	}
	return os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
}

// IsRegular reports whether dir/name resolves to a regular file.
func IsRegular(dir, name string) bool {
	info, err := os.Stat(filepath.Join(dir, name))
	return err == nil && info.Mode().IsRegular()
}
