package host

import (
	"github.com/signalbackup/backupdir/internal/options"
	"github.com/signalbackup/backupdir/internal/storage"
)

// Config describes the storage layout of the host.
type Config struct {
	// Level is the platform capability level, it selects the storage model.
	Level int `env:"BACKUPDIR_PLATFORM_LEVEL" envDefault:"30" option:"level" help:"platform capability level, 30 and above use directory handles (default: 30)"`
	// ExternalStorage is the default external storage root.
	ExternalStorage string `env:"EXTERNAL_STORAGE" option:"external-storage" help:"path of the default external storage (default: $EXTERNAL_STORAGE)"`
	// StorageDir contains one directory per mounted volume.
	StorageDir string `env:"BACKUPDIR_STORAGE_DIR" envDefault:"/storage" option:"storage-dir" help:"directory containing the mounted volumes (default: /storage)"`
	// VolumeLabels maps volume IDs to descriptions, as "1A2B-3C4D:SD card,...".
	VolumeLabels map[string]string `env:"BACKUPDIR_VOLUME_LABELS"`

	// PackageID names the per-application directory on each volume.
	PackageID string
}

// NewConfig returns a new Config with the default values applied.
func NewConfig() Config {
	return Config{
		Level:      storage.ScopedStorageLevel,
		StorageDir: "/storage",
		PackageID:  storage.ProductionPackageID,
	}
}

func init() {
	options.Register("host", Config{})
}
