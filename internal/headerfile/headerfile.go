package headerfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// File is a header being written. Content is staged in a temporary file next
// to the destination and renamed over it on Close, so an existing header is
// replaced in one step and readers never see a half-written one.
type File struct {
	path string
	tmp  *os.File
	done bool
}

// Create opens a new, empty header for writing at path. Parent directories
// are not created. A symlink is written through to its target, and an
// existing file keeps its permissions. Anything that would stop the header
// from being written (a directory or read-only file in the way, a missing or
// read-only parent) is reported here rather than on Close.
func Create(path string) (*File, error) {
	dest, perm, exists, err := destination(path)
	if err != nil {
		return nil, err
	}
	tmpPath := filepath.Join(filepath.Dir(dest), "."+filepath.Base(dest)+"."+uuid.NewString()+".tmp")
	tmp, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return nil, err
	}
	// OpenFile applies the umask; an existing header keeps its exact mode.
	if exists {
		if err := tmp.Chmod(perm); err != nil {
			tmp.Close()
			os.Remove(tmpPath)
			return nil, err
		}
	}
	return &File{path: dest, tmp: tmp}, nil
}

// destination resolves the file that will actually receive the header, the
// permissions it should have and whether it already exists.
func destination(path string) (string, os.FileMode, bool, error) {
	dest := path
	if fi, err := os.Lstat(path); err == nil && fi.Mode()&os.ModeSymlink != 0 {
		target, err := os.Readlink(path)
		if err != nil {
			return "", 0, false, err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		if resolved, err := filepath.EvalSymlinks(target); err == nil {
			target = resolved
		}
		dest = target
	}

	fi, err := os.Stat(dest)
	if errors.Is(err, fs.ErrNotExist) {
		return dest, 0666, false, nil
	}
	if err != nil {
		return "", 0, false, err
	}
	if fi.IsDir() {
		return "", 0, false, &fs.PathError{Op: "open", Path: path, Err: errors.New("is a directory")}
	}
	f, err := os.OpenFile(dest, os.O_WRONLY, 0)
	if err != nil {
		return "", 0, false, err
	}
	f.Close()
	return dest, fi.Mode().Perm(), true, nil
}

// Path returns the destination path, after following a symlink.
func (f *File) Path() string {
	return f.path
}

func (f *File) Write(p []byte) (int, error) {
	if f.done {
		return 0, os.ErrClosed
	}
	n, err := f.tmp.Write(p)
	if err != nil {
		f.Abort()
	}
	return n, err
}

// WriteString is like Write but takes a string.
func (f *File) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

// Close flushes the staged content and moves it to the destination,
// truncating any previous file there.
func (f *File) Close() error {
	if f.done {
		return os.ErrClosed
	}
	f.done = true
	tmpPath := f.tmp.Name()
	if err := f.tmp.Sync(); err != nil {
		f.tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := f.tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// Abort discards everything written so far and leaves the destination
// untouched. It is a no-op after Close.
func (f *File) Abort() error {
	if f.done {
		return nil
	}
	f.done = true
	tmpPath := f.tmp.Name()
	return errors.Join(f.tmp.Close(), os.Remove(tmpPath))
}
