package storage

import (
	"os"
	"sync/atomic"

	"github.com/signalbackup/backupdir/internal/errors"
	"github.com/signalbackup/backupdir/internal/fs"
)

// testPlatform is a Platform with fixed roots. Handles are looked up in the
// handles map.
type testPlatform struct {
	level       int
	defaultRoot string
	external    []Root
	externalErr error
	handles     map[Handle]string

	defaultCalls atomic.Int32
}

func (p *testPlatform) Level() int { return p.level }

func (p *testPlatform) DefaultRoot() (Root, error) {
	p.defaultCalls.Add(1)
	if p.defaultRoot == "" {
		return Root{}, errors.New("no external storage")
	}
	return Root{Path: p.defaultRoot}, nil
}

func (p *testPlatform) ExternalRoots() ([]Root, error) {
	return p.external, p.externalErr
}

func (p *testPlatform) ResolveHandle(h Handle) (string, error) {
	path, ok := p.handles[h]
	if !ok {
		return "", errors.Errorf("permission for %v revoked", h)
	}
	return path, nil
}

// testFS is the local file system with injectable failures.
type testFS struct {
	fs.Local
	readOnly map[string]bool
	mkdirErr error
}

func (f *testFS) Writable(dir string) bool {
	if f.readOnly[dir] {
		return false
	}
	return f.Local.Writable(dir)
}

func (f *testFS) MkdirAll(path string, perm os.FileMode) error {
	if f.mkdirErr != nil {
		return f.mkdirErr
	}
	return f.Local.MkdirAll(path, perm)
}

type testVolumes map[string]string

func (v testVolumes) VolumeDescription(id string) (string, bool) {
	s, ok := v[id]
	return s, ok
}
