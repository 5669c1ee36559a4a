package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

func newLegacyCandidatesCommand(gopts *GlobalOptions) *cobra.Command {
	var preferRemovable bool

	cmd := &cobra.Command{
		Use:   "legacy-candidates [flags]",
		Short: "List existing directories which may contain legacy backups",
		Long: `
The "legacy-candidates" command prints the existing directories which may
contain backups written with an older directory layout. The directory legacy
backups are written to comes first. No backup directories are created. With
--prefer-removable the removable volumes are enumerated, which creates the
application files directory on each of them.

The flat layout is only included if the feature flag "flat-legacy-layout-reads"
is enabled.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
Exit status is 10 if no storage is available.
`,
		GroupID:           cmdGroupAdvanced,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("prefer-removable") {
				preferRemovable = gopts.prefs.PreferRemovable
			}
			return runLegacyCandidates(gopts, preferRemovable)
		},
	}

	cmd.Flags().BoolVar(&preferRemovable, "prefer-removable", false, "also look on the removable volume (default: $BACKUPDIR_PREFER_REMOVABLE)")

	return cmd
}

func runLegacyCandidates(gopts *GlobalOptions, preferRemovable bool) error {
	paths, err := gopts.resolver().LegacyReadCandidates(preferRemovable)
	if err != nil {
		return err
	}

	if gopts.JSON {
		if paths == nil {
			paths = []string{}
		}
		return json.NewEncoder(gopts.stdout).Encode(paths)
	}

	if len(paths) == 0 {
		gopts.Verbosef("no legacy backup directories found\n")
	}
	for _, p := range paths {
		gopts.Println(p)
	}
	return nil
}
