package fs

import (
	"os"
	"path/filepath"
)

// Local is the local file system of the host.
type Local struct{}

// MkdirAll creates the directory path and all missing parents. An existing
// directory is not an error, even if a concurrent caller created it.
func (Local) MkdirAll(path string, perm os.FileMode) error {
	err := os.MkdirAll(path, perm)
	if err != nil && os.IsExist(err) {
		if fi, serr := os.Stat(path); serr == nil && fi.IsDir() {
			return nil
		}
	}
	return err
}

// Stat returns a FileInfo structure describing the named file.
func (Local) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadDir returns the names of the entries of dir, sorted by filename.
func (Local) ReadDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// Writable reports whether the current process may create entries in the
// directory dir.
func (Local) Writable(dir string) bool {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return false
	}

	return writable(filepath.Clean(dir))
}
