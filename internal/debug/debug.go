// Package debug writes a trace of the resolution steps. It is off unless one
// of DEBUG_LOG, DEBUG_FUNCS or DEBUG_FILES is set.
package debug

import (
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// filter maps glob patterns to whether matching names are printed. The
// pattern "all" matches everything not matched otherwise.
type filter map[string]bool

var opts struct {
	isEnabled bool
	logger    *log.Logger
	funcs     filter
	files     filter
}

// set up before the init functions of other packages run, so that they can
// already log
var _ = initDebug()

func initDebug() bool {
	opts.logger = openLogFile(os.Getenv("DEBUG_LOG"))
	opts.funcs = parseFilter(os.Getenv("DEBUG_FUNCS"), nil)
	opts.files = parseFilter(os.Getenv("DEBUG_FILES"), padFile)

	opts.isEnabled = opts.logger != nil || len(opts.funcs) > 0 || len(opts.files) > 0
	return opts.isEnabled
}

func openLogFile(name string) *log.Logger {
	if name == "" {
		return nil
	}

	f, err := os.OpenFile(name, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "unable to open debug log file: %v\n", err)
		os.Exit(2)
	}

	fmt.Fprintf(os.Stderr, "debug log file %v\n", name)
	return log.New(f, "", log.LstdFlags)
}

// parseFilter parses a comma separated list of patterns. A leading "-"
// excludes matching names. Invalid patterns are reported and skipped.
func parseFilter(list string, pad func(string) string) filter {
	f := make(filter)
	for _, item := range strings.Split(list, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		show := !strings.HasPrefix(item, "-")
		item = strings.TrimLeft(item, "+-")
		if pad != nil {
			item = pad(item)
		}

		if _, err := path.Match(item, ""); err != nil {
			fmt.Fprintf(os.Stderr, "debug: ignoring invalid pattern %q: %v\n", item, err)
			continue
		}
		f[item] = show
	}
	return f
}

// padFile turns "resolver.go" into "*/resolver.go:*".
func padFile(s string) string {
	if s == "all" {
		return s
	}
	if !strings.Contains(s, "/") {
		s = "*/" + s
	}
	if !strings.Contains(s, ":") {
		s += ":*"
	}
	return s
}

func (f filter) match(key string) bool {
	if show, ok := f[key]; ok {
		return show
	}
	for pattern, show := range f {
		if ok, _ := path.Match(pattern, key); ok {
			return show
		}
	}
	return f["all"]
}

// Log prints a message to the debug log (if debug is enabled).
func Log(format string, args ...interface{}) {
	if !opts.isEnabled {
		return
	}

	pc, file, line, _ := runtime.Caller(1)
	fn := path.Base(runtime.FuncForPC(pc).Name())
	pos := fmt.Sprintf("%s/%s:%d", filepath.Base(filepath.Dir(file)), filepath.Base(file), line)

	msg := fmt.Sprintf("%s\t%s\t%s", pos, fn, fmt.Sprintf(format, args...))
	msg = strings.TrimSuffix(msg, "\n")

	if opts.logger != nil {
		opts.logger.Println(msg)
	}
	if opts.files.match(pos) || opts.funcs.match(fn) {
		fmt.Fprintln(os.Stderr, msg)
	}
}
