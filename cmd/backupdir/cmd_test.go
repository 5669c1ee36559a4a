package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/signalbackup/backupdir/internal/errors"
	"github.com/signalbackup/backupdir/internal/feature"
	"github.com/signalbackup/backupdir/internal/storage"
	rtest "github.com/signalbackup/backupdir/internal/test"
)

func TestLegacyCandidates(t *testing.T) {
	env := withTestEnvironment(t)

	stdout, _, err := testRunCommand(t, "legacy-candidates")
	rtest.OK(t, err)
	rtest.Equals(t, "", stdout)

	rtest.MkdirAll(t, env.sdcard, "Signal", "Backups")

	stdout, _, err = testRunCommand(t, "legacy-candidates")
	rtest.OK(t, err)
	want := filepath.Join(env.sdcard, "Signal", "Backups") + "\n" + filepath.Join(env.sdcard, "Signal") + "\n"
	rtest.Equals(t, want, stdout)

	feature.TestSetFlag(t, feature.Flag, feature.FlatLegacyLayoutReads, false)

	stdout, _, err = testRunCommand(t, "--json", "legacy-candidates")
	rtest.OK(t, err)

	var paths []string
	rtest.OK(t, json.Unmarshal([]byte(stdout), &paths))
	rtest.Equals(t, []string{filepath.Join(env.sdcard, "Signal", "Backups")}, paths)

	stdout, _, err = testRunCommand(t, "legacy-candidates", "--prefer-removable")
	rtest.OK(t, err)
	rtest.Equals(t, filepath.Join(env.sdcard, "Signal", "Backups")+"\n", stdout)

	filesDir := filepath.Join(env.volume, "Android", "data", storage.ProductionPackageID, "files")
	_, err = os.Stat(filepath.Join(filesDir, "Signal"))
	rtest.Assert(t, os.IsNotExist(err), "backup directory created on the removable volume: %v", err)
}

func TestDisplayPath(t *testing.T) {
	withTestEnvironment(t)

	stdout, _, err := testRunCommand(t, "display-path",
		"1A2B-3C4D:Backups",
		"content://com.android.externalstorage.documents/tree/primary%3ADocuments",
		"9999-0000:signal\u202e.backup",
	)
	rtest.OK(t, err)
	rtest.Equals(t, "SD card Backups\nDocuments\nsignal\ufffd.backup\n", stdout)

	_, _, err = testRunCommand(t, "display-path")
	rtest.Assert(t, err != nil, "expected error without identifiers")
}

func TestVolumes(t *testing.T) {
	env := withTestEnvironment(t)

	stdout, _, err := testRunCommand(t, "--json", "volumes", "--prefer-removable")
	rtest.OK(t, err)

	var volumes []volumeInfo
	rtest.OK(t, json.Unmarshal([]byte(stdout), &volumes))

	want := []volumeInfo{
		{Path: env.sdcard},
		{
			ID:          "1A2B-3C4D",
			Description: "SD card",
			Path:        filepath.Join(env.volume, "Android", "data", storage.ProductionPackageID, "files"),
			Removable:   true,
			Selected:    true,
		},
	}
	if diff := cmp.Diff(want, volumes); diff != "" {
		t.Fatalf("wrong volumes (-want +got):\n%s", diff)
	}

	stdout, _, err = testRunCommand(t, "volumes")
	rtest.OK(t, err)
	rtest.Assert(t, strings.Contains(stdout, "1 removable volumes"), "missing footer in %q", stdout)

	// the default storage is marked when no removable volume is preferred
	line := strings.Split(stdout, "\n")[2]
	rtest.Assert(t, strings.HasPrefix(strings.TrimSpace(line), env.sdcard) && strings.HasSuffix(line, "*"),
		"default storage not selected: %q", line)
}

func TestVolumesLegacyLevel(t *testing.T) {
	env := withTestEnvironment(t)

	stdout, _, err := testRunCommand(t, "--json", "--level", "18", "volumes", "--prefer-removable")
	rtest.OK(t, err)

	var volumes []volumeInfo
	rtest.OK(t, json.Unmarshal([]byte(stdout), &volumes))
	rtest.Equals(t, []volumeInfo{{Path: env.sdcard, Selected: true}}, volumes)
}

func TestFeaturesAndOptions(t *testing.T) {
	withTestEnvironment(t)

	stdout, _, err := testRunCommand(t, "features")
	rtest.OK(t, err)
	rtest.Assert(t, strings.Contains(stdout, string(feature.FlatLegacyLayoutReads)), "missing feature flag in %q", stdout)

	stdout, _, err = testRunCommand(t, "options")
	rtest.OK(t, err)
	for _, name := range []string{"host.level", "host.external-storage", "host.storage-dir"} {
		rtest.Assert(t, strings.Contains(stdout, name), "missing option %v in %q", name, stdout)
	}

	stdout, _, err = testRunCommand(t, "--quiet", "options")
	rtest.OK(t, err)
	rtest.Equals(t, "", stdout)
}

func TestVersion(t *testing.T) {
	withTestEnvironment(t)

	stdout, _, err := testRunCommand(t, "--json", "version")
	rtest.OK(t, err)

	var v struct {
		MessageType string `json:"message_type"`
		Version     string `json:"version"`
	}
	rtest.OK(t, json.Unmarshal([]byte(stdout), &v))
	rtest.Equals(t, "version", v.MessageType)
	rtest.Equals(t, version, v.Version)
}

func TestGlobalOptionsPreRun(t *testing.T) {
	withTestEnvironment(t)

	_, _, err := testRunCommand(t, "--quiet", "--verbose", "version")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)

	_, _, err = testRunCommand(t, "-o", "host.level=many", "version")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)

	_, _, err = testRunCommand(t, "-o", "host.unknown=1", "version")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)

	t.Setenv("BACKUPDIR_PLATFORM_LEVEL", "thirty")
	_, _, err = testRunCommand(t, "version")
	rtest.Assert(t, errors.IsFatal(err), "expected fatal error, got %v", err)
}

func TestExitCode(t *testing.T) {
	for _, test := range []struct {
		err  error
		code int
	}{
		{nil, 0},
		{&storage.Error{Op: "resolve legacy backup directory", Kind: storage.ErrStorageUnavailable}, 10},
		{&storage.Error{Op: "resolve full backup directory", Kind: storage.ErrDirectoryCreationFailed}, 11},
		{&storage.Error{Op: "resolve full backup directory", Kind: storage.ErrHandleUnresolvable}, 12},
		{errors.Wrap(context.Canceled, "resolve"), 130},
		{errors.Fatal("invalid"), 1},
		{errors.New("other"), 1},
	} {
		rtest.Equals(t, test.code, exitCode(test.err))
	}
}

func TestExitMessage(t *testing.T) {
	rtest.Equals(t, "Fatal: invalid", exitMessage(errors.Fatal("invalid")))

	err := &storage.Error{Op: "resolve legacy backup directory", Path: "/sdcard", Kind: storage.ErrStorageUnavailable}
	rtest.Equals(t, "Fatal: resolve legacy backup directory /sdcard: storage unavailable", exitMessage(err))
}
