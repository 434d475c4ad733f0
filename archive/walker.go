// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/multierr"
)

// ErrEntryNotFound is returned by OpenEntry when archive has no such file.
var ErrEntryNotFound = errors.New("entry not found in archive")

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to Walk
// The file argument is the zip.File structure for file in archive which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks the all files in the archive which names match glob pattern
// (doublestar syntax, "**" crosses directories, empty pattern matches
// everything), calling walkFn for each item in archive order. Entries with
// path traversal components ("..") or absolute paths make Walk fail to
// prevent Zip Slip attacks.
func Walk(archive, pattern string, walkFn WalkFunc) error {
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("bad pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() {
			continue
		}
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, name); !ok {
				continue
			}
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// OpenEntry opens single file in archive for reading. Closing returned reader
// closes the archive as well.
func OpenEntry(archive, name string) (io.ReadCloser, error) {
	if !isSafePath(name) {
		return nil, fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
	}

	r, err := zip.OpenReader(archive)
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if f.FileHeader.Name != name || f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			r.Close()
			return nil, err
		}
		return &entryReader{ReadCloser: rc, archive: r}, nil
	}
	r.Close()
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

type entryReader struct {
	io.ReadCloser
	archive *zip.ReadCloser
}

func (e *entryReader) Close() error {
	return multierr.Append(e.ReadCloser.Close(), e.archive.Close())
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
