package storage

import (
	"testing"

	"golang.org/x/text/language"

	rtest "github.com/signalbackup/backupdir/internal/test"
)

func TestFormatDisplayPath(t *testing.T) {
	f := NewDisplayPathFormatter(testVolumes{"AB12": "SD Card"}, language.English)

	for _, test := range []struct {
		identifier string
		want       string
	}{
		{"AB12:MyBackup.zip", "SD Card MyBackup.zip"},
		{"CD34:MyBackup.zip", "MyBackup.zip"},
		{"primary:Documents/Backups", "Documents/Backups"},
		{"AB12:nested:leaf", "SD Card leaf"},
		{"AB12", "SD Card AB12"},
		{"content://com.android.externalstorage.documents/tree/AB12%3ASignal%2FBackups", "SD Card Signal/Backups"},
		{"content://com.android.externalstorage.documents/tree/XY99%3ASignal", "Signal"},
	} {
		t.Run(test.identifier, func(t *testing.T) {
			rtest.Equals(t, test.want, f.FormatDisplayPath(test.identifier))
		})
	}
}

func TestFormatDisplayPathLanguage(t *testing.T) {
	f := NewDisplayPathFormatter(testVolumes{"AB12": "SD-Karte"}, language.German)
	rtest.Equals(t, "SD-Karte Sicherung", f.FormatDisplayPath("AB12:Sicherung"))
}

func TestCleanFileName(t *testing.T) {
	rtest.Equals(t, "backup\ufffdpiz.\ufffdbin", CleanFileName("backup\u202epiz.\u202dbin"))
	rtest.Equals(t, "signal-2024.backup", CleanFileName("signal-2024.backup"))
}

func TestHandleDocumentID(t *testing.T) {
	for _, test := range []struct {
		handle Handle
		id     string
	}{
		{"primary:Documents/Backups", "primary:Documents/Backups"},
		{"content://com.android.externalstorage.documents/tree/primary%3ADocuments%2FBackups", "primary:Documents/Backups"},
		{"content://com.android.externalstorage.documents/tree/1A2B-3C4D%3A/document/1A2B-3C4D%3Ax", "1A2B-3C4D:"},
	} {
		id, err := test.handle.DocumentID()
		rtest.OK(t, err)
		rtest.Equals(t, test.id, id)
	}

	for _, h := range []Handle{"", "content://com.android.externalstorage.documents/document/x", "content://a/tree/"} {
		_, err := h.DocumentID()
		rtest.Assert(t, err != nil, "expected error for handle %q", h)
	}
}
