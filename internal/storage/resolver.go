package storage

import (
	"os"
	"path/filepath"

	"github.com/signalbackup/backupdir/internal/debug"
	"github.com/signalbackup/backupdir/internal/feature"
)

// dirMode is used for all directories created by the Resolver.
const dirMode os.FileMode = 0700

// ResolvedDirectory is a backup directory which existed on a writable storage
// root when it was returned.
type ResolvedDirectory struct {
	// Root is the storage root the directory was derived from. In the scoped
	// model this is the directory the handle resolved to.
	Root     Root
	Model    Model
	Category Category
	// Path is the backup directory itself.
	Path string
}

// Resolver computes and creates backup directories. Its methods may be called
// concurrently.
type Resolver struct {
	platform  Platform
	fs        Filesystem
	volumes   *VolumeSelector
	packageID string
}

// NewResolver returns a Resolver for the platform. Directories are namespaced
// for packageID as described in AppendNamespace.
func NewResolver(p Platform, fs Filesystem, packageID string) *Resolver {
	return &Resolver{
		platform:  p,
		fs:        fs,
		volumes:   NewVolumeSelector(p),
		packageID: packageID,
	}
}

// Volumes returns the VolumeSelector used by r.
func (r *Resolver) Volumes() *VolumeSelector {
	return r.volumes
}

// Model returns the storage model of the platform.
func (r *Resolver) Model() Model {
	return DetectModel(r.platform.Level())
}

// ResolvePlaintextBackupDirectory returns the directory for plaintext backups.
// The handle is only used in the scoped model, preferRemovable only in the
// legacy model.
func (r *Resolver) ResolvePlaintextBackupDirectory(h Handle, preferRemovable bool) (ResolvedDirectory, error) {
	return r.resolveCategory(h, preferRemovable, PlaintextBackup)
}

// ResolveFullBackupDirectory returns the directory for full backups. The
// handle is only used in the scoped model, preferRemovable only in the legacy
// model.
func (r *Resolver) ResolveFullBackupDirectory(h Handle, preferRemovable bool) (ResolvedDirectory, error) {
	return r.resolveCategory(h, preferRemovable, FullBackup)
}

// ResolveLegacyBackupDirectory returns Signal/Backups on the default root,
// followed by the namespace directory.
func (r *Resolver) ResolveLegacyBackupDirectory() (ResolvedDirectory, error) {
	const op = "resolve legacy backup directory"

	root, err := r.writableDefaultRoot(op)
	if err != nil {
		return ResolvedDirectory{}, err
	}

	return r.create(op, ResolvedDirectory{
		Root:     root,
		Model:    Legacy,
		Category: LegacyBackup,
		Path:     r.legacyPath(root),
	})
}

// ResolveLegacyBackupRootDirectory returns the application directory on the
// selected root, without category and namespace directories.
func (r *Resolver) ResolveLegacyBackupRootDirectory(preferRemovable bool) (ResolvedDirectory, error) {
	const op = "resolve legacy backup root directory"

	root, err := r.writableRoot(op, preferRemovable)
	if err != nil {
		return ResolvedDirectory{}, err
	}

	return r.create(op, ResolvedDirectory{
		Root:     root,
		Model:    Legacy,
		Category: LegacyBackup,
		Path:     NormalizeLegacyRoot(root.Path),
	})
}

// ResolveFlatBackupDirectory returns the directory of the flattened legacy
// layout: Signal on the default root, or a directory named after the
// namespace for builds other than production.
func (r *Resolver) ResolveFlatBackupDirectory() (ResolvedDirectory, error) {
	const op = "resolve flat backup directory"

	root, err := r.writableDefaultRoot(op)
	if err != nil {
		return ResolvedDirectory{}, err
	}

	return r.create(op, ResolvedDirectory{
		Root:     root,
		Model:    Legacy,
		Category: LegacyBackup,
		Path:     r.flatPath(root),
	})
}

// LegacyReadCandidates returns the existing directories which may contain
// legacy backups. The directory returned by ResolveLegacyBackupDirectory comes
// first. No backup directories are created, but with preferRemovable the
// platform enumerates its removable roots, which may create the application
// files directory on each volume.
func (r *Resolver) LegacyReadCandidates(preferRemovable bool) ([]string, error) {
	def, err := r.volumes.DefaultRoot()
	if err != nil {
		return nil, err
	}

	paths := []string{r.legacyPath(def)}

	if preferRemovable {
		root, err := r.volumes.SelectRoot(true)
		if err == nil && root.Path != def.Path {
			paths = append(paths, r.legacyPath(root))
		}
	}

	if feature.Flag.Enabled(feature.FlatLegacyLayoutReads) {
		paths = append(paths, r.flatPath(def))
	}

	var existing []string
	seen := make(map[string]struct{})
	for _, p := range paths {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}

		fi, err := r.fs.Stat(p)
		if err != nil || !fi.IsDir() {
			continue
		}
		existing = append(existing, p)
	}

	return existing, nil
}

// CanWriteDefaultRoot reports whether the default root is available and
// writable.
func (r *Resolver) CanWriteDefaultRoot() bool {
	root, err := r.volumes.DefaultRoot()
	if err != nil {
		return false
	}

	if !r.fs.Writable(root.Path) {
		r.volumes.Invalidate()
		return false
	}
	return true
}

func (r *Resolver) resolveCategory(h Handle, preferRemovable bool, c Category) (ResolvedDirectory, error) {
	op := "resolve " + c.String() + " backup directory"

	model := r.Model()
	debug.Log("%v: model %v, prefer removable %v", op, model, preferRemovable)

	var root Root
	var appRoot string

	switch model {
	case ScopedHandle:
		path, err := r.resolveHandle(op, h)
		if err != nil {
			return ResolvedDirectory{}, err
		}
		root = Root{Path: path}
		appRoot = NormalizeHandleRoot(path)

	default:
		var err error
		root, err = r.writableRoot(op, preferRemovable)
		if err != nil {
			return ResolvedDirectory{}, err
		}
		appRoot = NormalizeLegacyRoot(root.Path)
	}

	return r.create(op, ResolvedDirectory{
		Root:     root,
		Model:    model,
		Category: c,
		Path:     AppendNamespace(AppendCategory(appRoot, c), r.packageID),
	})
}

func (r *Resolver) resolveHandle(op string, h Handle) (string, error) {
	path, err := r.platform.ResolveHandle(h)
	if err != nil {
		return "", &Error{Op: op, Path: string(h), Kind: ErrHandleUnresolvable, Err: err}
	}
	if path == "" {
		return "", &Error{Op: op, Path: string(h), Kind: ErrHandleUnresolvable}
	}

	if !r.fs.Writable(path) {
		return "", &Error{Op: op, Path: path, Kind: ErrStorageUnavailable}
	}

	return path, nil
}

// writableRoot selects a root and checks that it is writable. A removable
// root which is not writable is treated like a missing one.
func (r *Resolver) writableRoot(op string, preferRemovable bool) (Root, error) {
	root, err := r.volumes.SelectRoot(preferRemovable)
	if err != nil {
		return Root{}, withOp(err, op)
	}

	if r.fs.Writable(root.Path) {
		return root, nil
	}

	if def, err := r.volumes.DefaultRoot(); err == nil && def.Path != root.Path {
		debug.Log("removable root %v is not writable, trying default root %v", root.Path, def.Path)
		return r.writableDefaultRoot(op)
	}

	r.volumes.Invalidate()
	return Root{}, &Error{Op: op, Path: root.Path, Kind: ErrStorageUnavailable}
}

func (r *Resolver) writableDefaultRoot(op string) (Root, error) {
	root, err := r.volumes.DefaultRoot()
	if err != nil {
		return Root{}, withOp(err, op)
	}

	if !r.fs.Writable(root.Path) {
		r.volumes.Invalidate()
		return Root{}, &Error{Op: op, Path: root.Path, Kind: ErrStorageUnavailable}
	}

	return root, nil
}

func (r *Resolver) create(op string, dir ResolvedDirectory) (ResolvedDirectory, error) {
	debug.Log("%v: creating %v", op, dir.Path)

	if err := r.fs.MkdirAll(dir.Path, dirMode); err != nil {
		return ResolvedDirectory{}, &Error{Op: op, Path: dir.Path, Kind: ErrDirectoryCreationFailed, Err: err}
	}

	return dir, nil
}

func (r *Resolver) legacyPath(root Root) string {
	return AppendNamespace(AppendCategory(NormalizeLegacyRoot(root.Path), LegacyBackup), r.packageID)
}

func (r *Resolver) flatPath(root Root) string {
	if suffix, ok := NamespaceSuffix(r.packageID); ok {
		return filepath.Join(root.Path, suffix)
	}
	return NormalizeLegacyRoot(root.Path)
}

// withOp sets the operation of a resolution error returned by a helper.
func withOp(err error, op string) error {
	if e, ok := err.(*Error); ok {
		clone := *e
		clone.Op = op
		return &clone
	}
	return err
}
