package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	rtest "github.com/signalbackup/backupdir/internal/test"
)

var envNames = []string{
	"BACKUPDIR_PACKAGE_ID", "BACKUPDIR_PREFER_REMOVABLE", "BACKUPDIR_LOCATION_CHANGED",
	"BACKUPDIR_HANDLE", "BACKUPDIR_LANG", "BACKUPDIR_PLATFORM_LEVEL", "EXTERNAL_STORAGE",
	"BACKUPDIR_STORAGE_DIR", "BACKUPDIR_VOLUME_LABELS",
}

type testEnvironment struct {
	storage string
	sdcard  string
	volume  string
}

// withTestEnvironment creates a storage directory with the primary storage
// and one removable volume and points the environment at it.
func withTestEnvironment(t *testing.T) *testEnvironment {
	for _, name := range envNames {
		t.Setenv(name, "")
		rtest.OK(t, os.Unsetenv(name))
	}

	storageDir := filepath.Join(rtest.TempDir(t), "storage")
	env := &testEnvironment{
		storage: storageDir,
		sdcard:  rtest.MkdirAll(t, storageDir, "emulated", "0"),
		volume:  rtest.MkdirAll(t, storageDir, "1A2B-3C4D"),
	}
	rtest.MkdirAll(t, env.sdcard, "Documents", "Backups")

	t.Setenv("EXTERNAL_STORAGE", env.sdcard)
	t.Setenv("BACKUPDIR_STORAGE_DIR", storageDir)
	t.Setenv("BACKUPDIR_PLATFORM_LEVEL", "29")
	t.Setenv("BACKUPDIR_VOLUME_LABELS", "1A2B-3C4D:SD card")

	return env
}

// testRunCommand executes the root command with args and returns what it
// wrote to stdout and stderr.
func testRunCommand(t testing.TB, args ...string) (string, string, error) {
	t.Helper()

	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	gopts := &GlobalOptions{stdout: stdout, stderr: stderr}

	cmd := newRootCommand(gopts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
