package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/signalbackup/backupdir/internal/debug"
	"github.com/signalbackup/backupdir/internal/errors"
	"github.com/signalbackup/backupdir/internal/storage"
)

// ResolveOptions collects all options for the resolve command.
type ResolveOptions struct {
	Handle          string
	PreferRemovable bool
}

var resolveTargets = []string{"full", "plaintext", "legacy", "legacy-root", "flat"}

// retryDelay is the pause before a failed directory creation is repeated.
var retryDelay = 500 * time.Millisecond

func newResolveCommand(gopts *GlobalOptions) *cobra.Command {
	var opts ResolveOptions

	cmd := &cobra.Command{
		Use:   "resolve [flags] full|plaintext|legacy|legacy-root|flat|all",
		Short: "Resolve and create a backup directory",
		Long: `
The "resolve" command determines the directory for the given kind of backup,
creates it if necessary and prints its path.

  full         encrypted full backups
  plaintext    plaintext exports
  legacy       the nested legacy layout on the default storage
  legacy-root  the application directory on the selected storage
  flat         the flat legacy layout on the default storage
  all          all of the above

On platforms using directory handles, "full" and "plaintext" need the handle of
the directory picked by the user (--handle or $BACKUPDIR_HANDLE).

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 10 if no writable storage is available.
Exit status is 11 if the backup directory could not be created.
Exit status is 12 if the directory handle cannot be resolved.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.ExactArgs(1),
		ValidArgs:         append(append([]string{}, resolveTargets...), "all"),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("handle") {
				opts.Handle = gopts.prefs.Handle
			}
			if !cmd.Flags().Changed("prefer-removable") {
				opts.PreferRemovable = gopts.prefs.PreferRemovable
			}
			return runResolve(cmd.Context(), opts, gopts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.Handle, "handle", "", "`handle` of the directory picked by the user (default: $BACKUPDIR_HANDLE)")
	f.BoolVar(&opts.PreferRemovable, "prefer-removable", false, "use a removable volume if one is available (default: $BACKUPDIR_PREFER_REMOVABLE)")

	return cmd
}

type resolveResult struct {
	Target   string `json:"target"`
	Category string `json:"category"`
	Model    string `json:"model"`
	Path     string `json:"path"`
	Root     string `json:"root"`
	VolumeID string `json:"volume_id,omitempty"`
}

func resolveTarget(r *storage.Resolver, target string, opts ResolveOptions) (storage.ResolvedDirectory, error) {
	h := storage.Handle(opts.Handle)

	switch target {
	case "full":
		return r.ResolveFullBackupDirectory(h, opts.PreferRemovable)
	case "plaintext":
		return r.ResolvePlaintextBackupDirectory(h, opts.PreferRemovable)
	case "legacy":
		return r.ResolveLegacyBackupDirectory()
	case "legacy-root":
		return r.ResolveLegacyBackupRootDirectory(opts.PreferRemovable)
	case "flat":
		return r.ResolveFlatBackupDirectory()
	default:
		return storage.ResolvedDirectory{}, errors.Fatalf("unknown target %q", target)
	}
}

// resolveWithRetry calls fn and repeats it once if the directory could not be
// created. All other errors are returned immediately.
func resolveWithRetry(ctx context.Context, gopts *GlobalOptions, fn func() (storage.ResolvedDirectory, error)) (storage.ResolvedDirectory, error) {
	var dir storage.ResolvedDirectory

	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(retryDelay), 1), ctx)
	err := backoff.RetryNotify(func() error {
		var err error
		dir, err = fn()
		if err != nil && !errors.Is(err, storage.ErrDirectoryCreationFailed) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, d time.Duration) {
		gopts.Warnf("%v, retrying in %v\n", err, d)
	})

	return dir, err
}

func runResolve(ctx context.Context, opts ResolveOptions, gopts *GlobalOptions, target string) error {
	targets := []string{target}
	if target == "all" {
		targets = resolveTargets
	}

	r := gopts.resolver()
	gopts.Verbosef("storage model: %v\n", r.Model())
	if r.Model() == storage.ScopedHandle && opts.Handle == "" && !gopts.prefs.LocationChanged {
		gopts.Verbosef("no backup location has been chosen yet\n")
	}

	results := make([]resolveResult, len(targets))
	wg, wgCtx := errgroup.WithContext(ctx)
	for i, t := range targets {
		wg.Go(func() error {
			dir, err := resolveWithRetry(wgCtx, gopts, func() (storage.ResolvedDirectory, error) {
				return resolveTarget(r, t, opts)
			})
			if err != nil {
				return err
			}

			debug.Log("resolved %v to %v", t, dir.Path)
			results[i] = resolveResult{
				Target:   t,
				Category: dir.Category.String(),
				Model:    dir.Model.String(),
				Path:     dir.Path,
				Root:     dir.Root.Path,
				VolumeID: dir.Root.ID,
			}
			return nil
		})
	}
	if err := wg.Wait(); err != nil {
		return err
	}

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(results)
	}

	for _, res := range results {
		switch {
		case gopts.stdoutIsTerminal() && gopts.verbosity > 0:
			gopts.Printf("%-12s %v\n", res.Target+":", res.Path)
		case len(results) == 1:
			gopts.Println(res.Path)
		default:
			gopts.Println(res.Target, res.Path)
		}
	}

	return nil
}
