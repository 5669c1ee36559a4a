// Package config loads the persisted backup location preferences.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/signalbackup/backupdir/internal/host"
	"github.com/signalbackup/backupdir/internal/storage"
)

// Preferences are the inputs of a backup directory resolution which are kept
// outside of the resolver.
type Preferences struct {
	// PackageID is the identity of the installed build.
	PackageID string `env:"BACKUPDIR_PACKAGE_ID" envDefault:"org.thoughtcrime.securesms"`
	// PreferRemovable selects a removable volume for legacy backups if one is
	// available.
	PreferRemovable bool `env:"BACKUPDIR_PREFER_REMOVABLE" envDefault:"false"`
	// LocationChanged is set once the user picked a backup location.
	LocationChanged bool `env:"BACKUPDIR_LOCATION_CHANGED" envDefault:"false"`
	// Handle is the directory the user granted access to.
	Handle string `env:"BACKUPDIR_HANDLE"`
	// Language is used to format display paths.
	Language string `env:"BACKUPDIR_LANG" envDefault:"en"`

	Host host.Config
}

// Load returns the preferences from the environment.
func Load() (Preferences, error) {
	prefs := Preferences{Host: host.NewConfig()}
	if err := ParseEnv(&prefs); err != nil {
		return Preferences{}, err
	}

	prefs.Host.PackageID = prefs.PackageID
	return prefs, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// HandleValue returns the configured handle.
func (p Preferences) HandleValue() storage.Handle {
	return storage.Handle(p.Handle)
}
