package config

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signalbackup/backupdir/internal/host"
	rtest "github.com/signalbackup/backupdir/internal/test"
)

func clearEnv(t *testing.T) {
	for _, name := range []string{
		"BACKUPDIR_PACKAGE_ID", "BACKUPDIR_PREFER_REMOVABLE", "BACKUPDIR_LOCATION_CHANGED",
		"BACKUPDIR_HANDLE", "BACKUPDIR_LANG", "BACKUPDIR_PLATFORM_LEVEL", "EXTERNAL_STORAGE",
		"BACKUPDIR_STORAGE_DIR", "BACKUPDIR_VOLUME_LABELS",
	} {
		t.Setenv(name, "")
		rtest.OK(t, os.Unsetenv(name))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	prefs, err := Load()
	rtest.OK(t, err)

	want := Preferences{
		PackageID: "org.thoughtcrime.securesms",
		Language:  "en",
		Host: host.Config{
			Level:      30,
			StorageDir: "/storage",
			PackageID:  "org.thoughtcrime.securesms",
		},
	}
	if diff := cmp.Diff(want, prefs); diff != "" {
		t.Fatalf("wrong preferences (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKUPDIR_PACKAGE_ID", "org.thoughtcrime.securesms.staging")
	t.Setenv("BACKUPDIR_PREFER_REMOVABLE", "true")
	t.Setenv("BACKUPDIR_HANDLE", "primary:Documents/Backups")
	t.Setenv("BACKUPDIR_PLATFORM_LEVEL", "29")
	t.Setenv("EXTERNAL_STORAGE", "/storage/emulated/0")
	t.Setenv("BACKUPDIR_VOLUME_LABELS", "1A2B-3C4D:SD card,5E6F-7A8B:USB drive")

	prefs, err := Load()
	rtest.OK(t, err)

	want := Preferences{
		PackageID:       "org.thoughtcrime.securesms.staging",
		PreferRemovable: true,
		Handle:          "primary:Documents/Backups",
		Language:        "en",
		Host: host.Config{
			Level:           29,
			ExternalStorage: "/storage/emulated/0",
			StorageDir:      "/storage",
			VolumeLabels:    map[string]string{"1A2B-3C4D": "SD card", "5E6F-7A8B": "USB drive"},
			PackageID:       "org.thoughtcrime.securesms.staging",
		},
	}
	if diff := cmp.Diff(want, prefs); diff != "" {
		t.Fatalf("wrong preferences (-want +got):\n%s", diff)
	}
	rtest.Equals(t, "primary:Documents/Backups", string(prefs.HandleValue()))
}

func TestLoadInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("BACKUPDIR_PREFER_REMOVABLE", "sometimes")

	_, err := Load()
	rtest.Assert(t, err != nil, "expected error for invalid bool")
}
