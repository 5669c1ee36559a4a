package storage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reserved names of the on-disk layout.
const (
	// AppDirName is the application directory on a storage root.
	AppDirName = "Signal"
	// BackupsDirName holds legacy backups. A handle directory with this name
	// is treated as the backup container itself.
	BackupsDirName          = "Backups"
	FullBackupsDirName      = "FullBackups"
	PlaintextBackupsDirName = "PlaintextBackups"

	// ProductionPackageID is the package identity of the production build.
	// Other builds use it with a dotted suffix.
	ProductionPackageID = "org.thoughtcrime.securesms"

	// PrimaryVolumeAlias is part of every path which points to the primary
	// internal storage rather than a removable volume.
	PrimaryVolumeAlias = "emulated"
)

// Category is the kind of backup stored in a directory.
type Category int

const (
	FullBackup Category = iota
	PlaintextBackup
	LegacyBackup
)

var categoryNames = map[Category]string{
	FullBackup:      "full",
	PlaintextBackup: "plaintext",
	LegacyBackup:    "legacy",
}

func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// DirName returns the directory name reserved for the category. It panics if
// c is not one of FullBackup, PlaintextBackup and LegacyBackup.
func (c Category) DirName() string {
	switch c {
	case FullBackup:
		return FullBackupsDirName
	case PlaintextBackup:
		return PlaintextBackupsDirName
	case LegacyBackup:
		return BackupsDirName
	default:
		panic(fmt.Sprintf("unknown backup category %d", int(c)))
	}
}

// ParseCategory returns the category for its name as returned by String.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("invalid backup category %q", s)
}

// NormalizeLegacyRoot returns the application directory on a storage root.
func NormalizeLegacyRoot(root string) string {
	return filepath.Join(root, AppDirName)
}

// NormalizeHandleRoot returns the application directory for the path of a
// user selected directory. A selected directory named "Backups" already is a
// backup container, the category directories are then created next to it.
func NormalizeHandleRoot(path string) string {
	path = filepath.Clean(path)
	if filepath.Base(path) == BackupsDirName {
		return filepath.Dir(path)
	}
	return path
}

// AppendCategory returns the directory for category c below appRoot. c must
// be a declared Category, see DirName.
func AppendCategory(appRoot string, c Category) string {
	return filepath.Join(appRoot, c.DirName())
}

// NamespaceSuffix returns the part of packageID following the production
// package identity and a dot. The suffix is returned as a whole, even if it
// contains more dots.
func NamespaceSuffix(packageID string) (string, bool) {
	suffix, ok := strings.CutPrefix(packageID, ProductionPackageID+".")
	if !ok || suffix == "" {
		return "", false
	}
	return suffix, true
}

// AppendNamespace appends the namespace directory for packageID to path, if
// packageID is not the production identity.
func AppendNamespace(path, packageID string) string {
	suffix, ok := NamespaceSuffix(packageID)
	if !ok {
		return path
	}
	return filepath.Join(path, suffix)
}

// IsPrimaryAlias reports whether path is located on the primary storage.
func IsPrimaryAlias(path string) bool {
	return strings.Contains(path, PrimaryVolumeAlias)
}
