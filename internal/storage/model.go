package storage

// Model is the way backup directories are accessed on a platform.
type Model int

const (
	// Legacy accesses storage roots by path.
	Legacy Model = iota
	// ScopedHandle accesses a directory the user granted through a handle.
	ScopedHandle
)

const (
	// ScopedStorageLevel is the first platform level on which direct path
	// access to shared storage is no longer available.
	ScopedStorageLevel = 30
	// MultiVolumeLevel is the first platform level which enumerates the
	// application directories on all mounted volumes.
	MultiVolumeLevel = 19
)

func (m Model) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case ScopedHandle:
		return "scoped"
	default:
		return "unknown"
	}
}

// DetectModel returns the storage model for the platform level.
func DetectModel(level int) Model {
	if level >= ScopedStorageLevel {
		return ScopedHandle
	}
	return Legacy
}

// SupportsMultiVolume reports whether volumes other than the default one can
// be enumerated on the platform level.
func SupportsMultiVolume(level int) bool {
	return level >= MultiVolumeLevel
}
