package debug

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestParseFilter(t *testing.T) {
	f := parseFilter("resolver.go, -volume.go,+display.go,,[", padFile)

	want := filter{
		"*/resolver.go:*": true,
		"*/volume.go:*":   false,
		"*/display.go:*":  true,
	}
	if len(f) != len(want) {
		t.Fatalf("wrong filter %v, want %v", f, want)
	}
	for key, exp := range want {
		if v, ok := f[key]; !ok || v != exp {
			t.Errorf("filter[%q] = %v (present %v), want %v", key, v, ok, exp)
		}
	}
}

func TestFilterMatch(t *testing.T) {
	f := parseFilter("storage/resolver.go", padFile)

	if !f.match("storage/resolver.go:42") {
		t.Error("expected resolver.go to match")
	}
	if f.match("storage/volume.go:10") {
		t.Error("expected volume.go not to match")
	}
	if !parseFilter("all,-host.go", padFile).match("storage/display.go:1") {
		t.Error("expected all to match everything")
	}
	if parseFilter("all,-host.go", padFile).match("host/host.go:1") {
		t.Error("expected host.go to be excluded")
	}
	if !parseFilter("storage.*", nil).match("storage.(*Resolver).create") {
		t.Error("expected function pattern to match")
	}
}

func TestLogToLogger(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	TestLogTo(t, log.New(buf, "", 0))

	Log("resolved %v\n", "/sdcard/Signal")

	out := buf.String()
	if !strings.HasPrefix(out, "debug/debug_test.go:") || !strings.HasSuffix(out, "\tresolved /sdcard/Signal\n") {
		t.Errorf("unexpected log output %q", out)
	}
}
