package host

import (
	"path/filepath"
	"strings"

	"github.com/signalbackup/backupdir/internal/debug"
	"github.com/signalbackup/backupdir/internal/errors"
	"github.com/signalbackup/backupdir/internal/fs"
	"github.com/signalbackup/backupdir/internal/storage"
)

// primaryVolume is the volume name of the default external storage in
// directory handles.
const primaryVolume = "primary"

// selfVolume is an alias of the primary storage next to the mounted volumes.
const selfVolume = "self"

// Host is a platform whose volumes are directories below Config.StorageDir.
type Host struct {
	cfg Config
	fs  fs.Local
}

// ensure statically that *Host implements the platform capabilities.
var _ storage.Platform = &Host{}
var _ storage.VolumeDescriber = &Host{}

// New returns a Host for cfg.
func New(cfg Config) *Host {
	if cfg.PackageID == "" {
		cfg.PackageID = storage.ProductionPackageID
	}
	return &Host{cfg: cfg}
}

// Level returns the configured platform level.
func (h *Host) Level() int {
	return h.cfg.Level
}

// DefaultRoot returns the default external storage root.
func (h *Host) DefaultRoot() (storage.Root, error) {
	if h.cfg.ExternalStorage == "" {
		return storage.Root{}, errors.New("no default external storage configured")
	}

	fi, err := h.fs.Stat(h.cfg.ExternalStorage)
	if err != nil {
		return storage.Root{}, errors.WithStack(err)
	}
	if !fi.IsDir() {
		return storage.Root{}, errors.Errorf("default external storage %v is not a directory", h.cfg.ExternalStorage)
	}

	return storage.Root{Path: h.cfg.ExternalStorage}, nil
}

// Volumes returns the mounted secondary volumes, sorted by ID.
func (h *Host) Volumes() ([]storage.Root, error) {
	names, err := h.fs.ReadDir(h.cfg.StorageDir)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var volumes []storage.Root
	for _, name := range names {
		if name == storage.PrimaryVolumeAlias || name == selfVolume {
			continue
		}

		dir := filepath.Join(h.cfg.StorageDir, name)
		if fi, err := h.fs.Stat(dir); err != nil || !fi.IsDir() {
			continue
		}

		volumes = append(volumes, storage.Root{
			Path:        dir,
			ID:          name,
			Description: h.describe(name),
		})
	}

	return volumes, nil
}

// ExternalRoots returns the application files directory on the primary
// storage followed by the one on each mounted volume. The directories are
// created if necessary, volumes on which that fails are skipped.
//
// The primary entry is only reported if its path carries the primary volume
// alias, otherwise it would be indistinguishable from a removable volume.
func (h *Host) ExternalRoots() ([]storage.Root, error) {
	var roots []storage.Root

	if def, err := h.DefaultRoot(); err == nil {
		primary := def.Path
		if resolved, err := filepath.EvalSymlinks(primary); err == nil {
			primary = resolved
		}
		if !storage.IsPrimaryAlias(primary) {
			debug.Log("default root %v is not below %q, not listing it", primary, storage.PrimaryVolumeAlias)
		} else if dir, ok := h.appFilesDir(primary); ok {
			roots = append(roots, storage.Root{Path: dir})
		}
	}

	volumes, err := h.Volumes()
	if err != nil {
		return roots, err
	}

	for _, v := range volumes {
		dir, ok := h.appFilesDir(v.Path)
		if !ok {
			continue
		}
		roots = append(roots, storage.Root{Path: dir, ID: v.ID, Description: v.Description})
	}

	return roots, nil
}

func (h *Host) appFilesDir(volume string) (string, bool) {
	dir := filepath.Join(volume, "Android", "data", h.cfg.PackageID, "files")
	if err := h.fs.MkdirAll(dir, 0700); err != nil {
		debug.Log("unable to create %v: %v", dir, err)
		return "", false
	}
	return dir, true
}

// ResolveHandle returns the directory a handle of the form
// "<volume>:<relative path>" refers to.
func (h *Host) ResolveHandle(handle storage.Handle) (string, error) {
	id, err := handle.DocumentID()
	if err != nil {
		return "", err
	}

	volume, rel, ok := strings.Cut(id, ":")
	if !ok || !validVolumeID(volume) {
		return "", errors.Errorf("invalid document id %q", id)
	}

	var base string
	if volume == primaryVolume {
		def, err := h.DefaultRoot()
		if err != nil {
			return "", err
		}
		base = def.Path
	} else {
		base = filepath.Join(h.cfg.StorageDir, volume)
	}

	path := filepath.Join(base, filepath.FromSlash(rel))
	if r, err := filepath.Rel(base, path); err != nil || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", errors.Errorf("document id %q leaves volume %v", id, volume)
	}

	fi, err := h.fs.Stat(path)
	if err != nil {
		return "", errors.WithStack(err)
	}
	if !fi.IsDir() {
		return "", errors.Errorf("%v is not a directory", path)
	}

	debug.Log("handle %v resolved to %v", handle, path)
	return path, nil
}

// VolumeDescription returns the description of a mounted volume.
func (h *Host) VolumeDescription(id string) (string, bool) {
	if !validVolumeID(id) || id == primaryVolume || id == storage.PrimaryVolumeAlias || id == selfVolume {
		return "", false
	}

	fi, err := h.fs.Stat(filepath.Join(h.cfg.StorageDir, id))
	if err != nil || !fi.IsDir() {
		return "", false
	}

	return h.describe(id), true
}

func (h *Host) describe(id string) string {
	if label, ok := h.cfg.VolumeLabels[id]; ok && label != "" {
		return label
	}
	return id
}

// validVolumeID reports whether id names a single directory below the
// storage directory.
func validVolumeID(id string) bool {
	return id != "" && id != "." && id != ".." && !strings.ContainsAny(id, `/\`)
}
