// Package resources implements resource extraction: materializing a
// Service's deploy spec files out of an embedded bundle and onto disk.
// The bundle is served through the standard io/fs interfaces rather than
// a bespoke asset format.
package resources

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"flowc/internal/descriptors"
	"flowc/internal/errors"
)

const copyBufferSize = 8 * 1024

// Bundle is the embedded filesystem backing a Service's deploy spec
// files, each addressed by name. Any fs.FS works, such as a go:embed
// embed.FS or, in tests, an fstest.MapFS.
type Bundle = fs.FS

// ExtractSpec implements extractSpec(service): if svc's spec record
// already names a non-empty directory, it returns unchanged — a second
// call is a no-op. Otherwise it sets the directory to "." and copies the
// ordered file list (the main spec file followed by every referenced
// file) out of bundle by name into that directory, one file at a time. A
// destination file already present is left untouched.
func ExtractSpec(bundle Bundle, svc *descriptors.Service) error {
	if svc.Spec == nil || svc.Spec.MainSpecFile == "" {
		return &errors.ResourceNotFoundError{File: svc.DisplayName}
	}
	if svc.Spec.Directory != "" {
		return nil
	}

	const directory = "."
	for _, file := range svc.Spec.Files() {
		dest := filepath.Join(directory, file)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := copyFile(bundle, file, dest); err != nil {
			return err
		}
	}
	svc.Spec.Directory = directory
	return nil
}

func copyFile(bundle Bundle, srcName, destPath string) error {
	src, err := bundle.Open(srcName)
	if err != nil {
		return &errors.ResourceNotFoundError{File: srcName}
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return &errors.IoError{Op: "mkdir", File: destPath, Err: err}
	}
	dst, err := os.Create(destPath)
	if err != nil {
		return &errors.IoError{Op: "create", File: destPath, Err: err}
	}
	defer dst.Close()

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(dst, src, buf); err != nil {
		return &errors.IoError{Op: "copy", File: destPath, Err: err}
	}
	return nil
}
