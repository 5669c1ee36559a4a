//go:build !unix

package fs

import "os"

// writable probes the directory by creating and removing a file, as access
// bits do not describe ACL based permissions.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".backupdir-probe-")
	if err != nil {
		return false
	}

	name := f.Name()
	_ = f.Close()
	return os.Remove(name) == nil
}
