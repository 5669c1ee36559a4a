package storage

import (
	"net/url"
	"os"
	"strings"

	"github.com/signalbackup/backupdir/internal/errors"
)

// Root is a storage location. Path is set for every root, ID and Description
// only for volumes which have a stable identity.
type Root struct {
	Path        string
	ID          string
	Description string
}

// Handle references a directory the user granted access to. It is either a
// tree document id like "primary:Documents/Backups" or a tree URI like
// "content://com.android.externalstorage.documents/tree/primary%3ADocuments".
type Handle string

const treeURIScheme = "content"

// DocumentID returns the tree document id of h.
func (h Handle) DocumentID() (string, error) {
	if h == "" {
		return "", errors.New("empty handle")
	}

	if !strings.HasPrefix(string(h), treeURIScheme+"://") {
		return string(h), nil
	}

	u, err := url.Parse(string(h))
	if err != nil {
		return "", errors.Wrap(err, "Parse")
	}

	segments := strings.Split(strings.Trim(u.EscapedPath(), "/"), "/")
	for i := 0; i+1 < len(segments); i++ {
		if segments[i] != "tree" {
			continue
		}

		id, err := url.PathUnescape(segments[i+1])
		if err != nil {
			return "", errors.Wrap(err, "PathUnescape")
		}
		if id == "" {
			break
		}
		return id, nil
	}

	return "", errors.Errorf("no tree document id in %q", string(h))
}

// Platform provides the storage capabilities of the device.
type Platform interface {
	// Level returns the platform capability level.
	Level() int
	// DefaultRoot returns the default external storage root.
	DefaultRoot() (Root, error)
	// ExternalRoots returns the application directories on all mounted
	// volumes, in platform order.
	ExternalRoots() ([]Root, error)
	// ResolveHandle returns the path of the directory referenced by h.
	ResolveHandle(h Handle) (string, error)
}

// VolumeDescriber returns the human readable description of a volume.
type VolumeDescriber interface {
	VolumeDescription(id string) (string, bool)
}

// Filesystem is the part of the file system used to create backup directories.
type Filesystem interface {
	MkdirAll(path string, perm os.FileMode) error
	Stat(name string) (os.FileInfo, error)
	Writable(dir string) bool
}
