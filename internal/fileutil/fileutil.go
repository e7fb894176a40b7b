package fileutil

import (
	"fmt"
	"io"
	"os"
)

// CopyFile streams src to dst using io.Copy with default permissions (0o644).
func CopyFile(src, dst string) error {
	return CopyFileMode(src, dst, 0o644)
}

// CopyFileMode streams src to dst, setting the given file mode on dst.
func CopyFileMode(src, dst string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// FinalizeTemp moves a finished temp artifact into its destination path,
// replacing any existing file. Rename is attempted first; when it fails
// (cross-device destinations) the file is copied and the temp removed.
func FinalizeTemp(tempPath, dstPath string) error {
	if err := os.Rename(tempPath, dstPath); err == nil {
		return nil
	}
	if err := CopyFile(tempPath, dstPath); err != nil {
		return fmt.Errorf("finalize %s: %w", dstPath, err)
	}
	if err := os.Remove(tempPath); err != nil {
		return fmt.Errorf("remove temp %s: %w", tempPath, err)
	}
	return nil
}
