package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/text/language"

	"github.com/signalbackup/backupdir/internal/config"
	"github.com/signalbackup/backupdir/internal/debug"
	"github.com/signalbackup/backupdir/internal/errors"
	"github.com/signalbackup/backupdir/internal/fs"
	"github.com/signalbackup/backupdir/internal/host"
	"github.com/signalbackup/backupdir/internal/options"
	"github.com/signalbackup/backupdir/internal/storage"
	"github.com/signalbackup/backupdir/internal/terminal"
)

var version = "0.4.0-dev (compiled manually)"

// GlobalOptions hold all global options for backupdir.
type GlobalOptions struct {
	JSON      bool
	Quiet     bool
	Verbose   int
	PackageID string
	Level     int
	Language  string
	Options   []string

	stdout io.Writer
	stderr io.Writer

	// verbosity is 0 for --quiet, 1 by default and 2 for --verbose
	verbosity uint

	prefs    config.Preferences
	extended options.Options
}

var globalOptions = GlobalOptions{
	stdout: os.Stdout,
	stderr: os.Stderr,
}

func (opts *GlobalOptions) AddFlags(f *pflag.FlagSet) {
	f.BoolVarP(&opts.JSON, "json", "", false, "set output mode to JSON for commands that support it")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "only print the resolved paths")
	f.CountVarP(&opts.Verbose, "verbose", "v", "be verbose")
	f.StringVar(&opts.PackageID, "package-id", "", "package `identity` of the installed build (default: $BACKUPDIR_PACKAGE_ID)")
	f.IntVar(&opts.Level, "level", 0, "platform capability `level` (default: $BACKUPDIR_PLATFORM_LEVEL or 30)")
	f.StringVar(&opts.Language, "lang", "", "`language` used for display paths (default: $BACKUPDIR_LANG or en)")
	f.StringSliceVarP(&opts.Options, "option", "o", []string{}, "set extended option (`key=value`, can be specified multiple times)")
}

// PreRun loads the preferences from the environment and applies the flags
// on top of them.
func (opts *GlobalOptions) PreRun() error {
	if opts.Quiet && opts.Verbose > 0 {
		return errors.Fatal("--quiet and --verbose cannot be specified at the same time")
	}

	switch {
	case opts.Verbose > 0:
		opts.verbosity = 2
	case opts.Quiet:
		opts.verbosity = 0
	default:
		opts.verbosity = 1
	}

	prefs, err := config.Load()
	if err != nil {
		return errors.Fatalf("unable to load preferences: %v", err)
	}

	if opts.PackageID != "" {
		prefs.PackageID = opts.PackageID
		prefs.Host.PackageID = opts.PackageID
	}
	if opts.Level != 0 {
		prefs.Host.Level = opts.Level
	}
	if opts.Language != "" {
		prefs.Language = opts.Language
	}

	extended, err := options.Parse(opts.Options)
	if err != nil {
		return err
	}
	if err := extended.Extract("host").Apply("host", &prefs.Host); err != nil {
		return err
	}

	opts.extended = extended
	opts.prefs = prefs
	debug.Log("preferences: %+v", prefs)

	return nil
}

func (opts *GlobalOptions) host() *host.Host {
	return host.New(opts.prefs.Host)
}

func (opts *GlobalOptions) resolver() *storage.Resolver {
	return storage.NewResolver(opts.host(), fs.Local{}, opts.prefs.PackageID)
}

func (opts *GlobalOptions) language() language.Tag {
	tag, err := language.Parse(opts.prefs.Language)
	if err != nil {
		debug.Log("invalid language %q: %v", opts.prefs.Language, err)
		return language.English
	}
	return tag
}

func (opts *GlobalOptions) stdoutIsTerminal() bool {
	return terminal.CanFormat(opts.stdout)
}

// Printf writes the message to stdout unless --quiet was given.
func (opts *GlobalOptions) Printf(format string, args ...interface{}) {
	if opts.verbosity == 0 {
		return
	}
	_, _ = fmt.Fprintf(opts.stdout, format, args...)
}

// Verbosef writes the message to stdout if --verbose was given.
func (opts *GlobalOptions) Verbosef(format string, args ...interface{}) {
	if opts.verbosity < 2 {
		return
	}
	_, _ = fmt.Fprintf(opts.stdout, format, args...)
}

// Warnf writes the message to stderr.
func (opts *GlobalOptions) Warnf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(opts.stderr, format, args...)
	debug.Log(format, args...)
}

// Println writes a line to stdout regardless of the verbosity.
func (opts *GlobalOptions) Println(args ...interface{}) {
	_, _ = fmt.Fprintln(opts.stdout, args...)
}
