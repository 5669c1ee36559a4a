package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/automaxprocs/maxprocs"

	"github.com/signalbackup/backupdir/internal/debug"
	"github.com/signalbackup/backupdir/internal/errors"
	"github.com/signalbackup/backupdir/internal/feature"
	"github.com/signalbackup/backupdir/internal/storage"
)

func init() {
	// don't import `go.uber.org/automaxprocs` to disable the log output
	_, _ = maxprocs.Set()
}

var cmdGroupDefault = "default"
var cmdGroupAdvanced = "advanced"

func newRootCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backupdir",
		Short: "Resolve the directories backups are written to",
		Long: `
backupdir decides on which storage volume and in which directory backups of the
messenger are stored, creates those directories and formats storage locations
for display.
`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		DisableAutoGenTag: true,

		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return gopts.PreRun()
		},
	}

	cmd.AddGroup(
		&cobra.Group{
			ID:    cmdGroupDefault,
			Title: "Available Commands:",
		},
		&cobra.Group{
			ID:    cmdGroupAdvanced,
			Title: "Advanced Options:",
		},
	)

	gopts.AddFlags(cmd.PersistentFlags())

	cmd.CompletionOptions.DisableDefaultCmd = true

	cmd.AddCommand(
		newResolveCommand(gopts),
		newLegacyCandidatesCommand(gopts),
		newDisplayPathCommand(gopts),
		newVolumesCommand(gopts),
		newFeaturesCommand(gopts),
		newOptionsCommand(gopts),
		newVersionCommand(gopts),
	)

	return cmd
}

// exitCode maps an error returned by a command to the process exit status.
func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, storage.ErrStorageUnavailable):
		return 10
	case errors.Is(err, storage.ErrDirectoryCreationFailed):
		return 11
	case errors.Is(err, storage.ErrHandleUnresolvable):
		return 12
	case errors.Is(err, context.Canceled):
		return 130
	default:
		return 1
	}
}

func exitMessage(err error) string {
	var serr *storage.Error
	switch {
	case errors.IsFatal(err):
		return err.Error()
	case errors.As(err, &serr):
		return fmt.Sprintf("Fatal: %v", err)
	default:
		return fmt.Sprintf("%+v", err)
	}
}

func printExitError(gopts *GlobalOptions, code int, message string) {
	if gopts.JSON {
		type jsonExitError struct {
			MessageType string `json:"message_type"` // exit_error
			Code        int    `json:"code"`
			Message     string `json:"message"`
		}

		jsonS := jsonExitError{
			MessageType: "exit_error",
			Code:        code,
			Message:     message,
		}

		err := json.NewEncoder(gopts.stderr).Encode(jsonS)
		if err != nil {
			gopts.Warnf("JSON encode failed: %v\n", err)
			return
		}
	} else {
		_, _ = fmt.Fprintf(gopts.stderr, "%v\n", message)
	}
}

func main() {
	err := feature.Flag.Apply(os.Getenv("BACKUPDIR_FEATURES"), func(s string) {
		_, _ = fmt.Fprintln(os.Stderr, s)
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		Exit(1)
	}

	debug.Log("main %#v", os.Args)
	debug.Log("backupdir %s compiled with %v on %v/%v",
		version, runtime.Version(), runtime.GOOS, runtime.GOARCH)

	ctx := createGlobalContext(&globalOptions)
	err = newRootCommand(&globalOptions).ExecuteContext(ctx)
	if err == nil {
		err = ctx.Err()
	}

	code := exitCode(err)
	if err != nil {
		printExitError(&globalOptions, code, exitMessage(err))
	}
	Exit(code)
}
