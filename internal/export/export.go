// Package export delivers rendered cards to the user: as a file or on the clipboard.
// Failures are reported, never retried.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"instaquran/internal/logging"
	"instaquran/internal/render"
)

var (
	// ErrNoImage is returned when there is nothing rendered to export yet.
	ErrNoImage = errors.New("image is not ready yet")
	// ErrClipboardUnavailable is returned when no clipboard tool can take an image.
	ErrClipboardUnavailable = errors.New("no clipboard tool available")
)

// ExportError describes a failed export.
type ExportError struct {
	Op     string // save, copy image, copy text
	Target string // path or tool name, when known
	Err    error
}

func (e *ExportError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Target, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// DownloadSink writes PNG files into a directory.
type DownloadSink struct {
	Dir string
}

// Save writes img as name inside the sink directory, creating it if needed, and returns
// the written path. The file appears atomically.
func (s DownloadSink) Save(img render.Image, name string) (string, error) {
	if img.Empty() {
		return "", &ExportError{Op: "save", Err: ErrNoImage}
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, filepath.Base(name))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", &ExportError{Op: "save", Target: path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, ".instaquran-*.png")
	if err != nil {
		return "", &ExportError{Op: "save", Target: path, Err: err}
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(img.PNG); err != nil {
		tmp.Close()
		return "", &ExportError{Op: "save", Target: path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return "", &ExportError{Op: "save", Target: path, Err: err}
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return "", &ExportError{Op: "save", Target: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		return "", &ExportError{Op: "save", Target: path, Err: err}
	}

	logging.Export("saved %s (%d bytes, %dx%d)", path, len(img.PNG), img.Width, img.Height)
	return path, nil
}
