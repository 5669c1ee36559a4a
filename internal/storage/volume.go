package storage

import (
	"sort"
	"sync/atomic"

	"github.com/signalbackup/backupdir/internal/debug"
	"github.com/signalbackup/backupdir/internal/feature"
)

// VolumeSelector picks the storage root for legacy backup directories.
type VolumeSelector struct {
	platform Platform

	// defaultRoot caches the result of platform.DefaultRoot until
	// Invalidate is called.
	defaultRoot atomic.Pointer[Root]
}

// NewVolumeSelector returns a VolumeSelector for the platform.
func NewVolumeSelector(p Platform) *VolumeSelector {
	return &VolumeSelector{platform: p}
}

// DefaultRoot returns the default external storage root.
func (s *VolumeSelector) DefaultRoot() (Root, error) {
	if root := s.defaultRoot.Load(); root != nil {
		return *root, nil
	}

	root, err := s.platform.DefaultRoot()
	if err != nil {
		return Root{}, &Error{Op: "default root", Kind: ErrStorageUnavailable, Err: err}
	}
	if root.Path == "" {
		return Root{}, &Error{Op: "default root", Kind: ErrStorageUnavailable}
	}

	s.defaultRoot.Store(&root)
	return root, nil
}

// Invalidate forgets the cached default root, it is looked up again on the
// next call.
func (s *VolumeSelector) Invalidate() {
	s.defaultRoot.Store(nil)
}

// RemovableRoots returns the roots on volumes other than the primary one.
// Roots are returned in platform order, or sorted by path if the feature flag
// sorted-volume-selection is enabled.
func (s *VolumeSelector) RemovableRoots() ([]Root, error) {
	if !SupportsMultiVolume(s.platform.Level()) {
		return nil, nil
	}

	roots, err := s.platform.ExternalRoots()
	if err != nil {
		return nil, err
	}

	var candidates []Root
	for _, root := range roots {
		if root.Path == "" || IsPrimaryAlias(root.Path) {
			continue
		}
		candidates = append(candidates, root)
	}

	if feature.Flag.Enabled(feature.SortedVolumeSelection) {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Path < candidates[j].Path
		})
	}

	return candidates, nil
}

// SelectRoot returns the first removable root if preferRemovable is set and
// one is available, and the default root otherwise.
func (s *VolumeSelector) SelectRoot(preferRemovable bool) (Root, error) {
	if preferRemovable {
		candidates, err := s.RemovableRoots()
		if err != nil {
			debug.Log("enumerating volumes failed, using default root: %v", err)
		}

		if len(candidates) > 0 {
			debug.Log("selected removable root %v", candidates[0].Path)
			return candidates[0], nil
		}
		debug.Log("no removable root available, using default root")
	}

	return s.DefaultRoot()
}
