package main

import (
	"github.com/spf13/cobra"

	"github.com/signalbackup/backupdir/internal/feature"
	"github.com/signalbackup/backupdir/internal/ui/table"
)

func newFeaturesCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "Print list of feature flags",
		Long: `
The "features" command prints a list of supported feature flags.

To pass feature flags to backupdir, set the environment variable
"BACKUPDIR_FEATURES" to a comma-separated list of key=value pairs, for example
"sorted-volume-selection=true". Alpha features are disabled by default, beta
features are enabled by default.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupAdvanced,
		DisableAutoGenTag: true,
		Args:              cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			gopts.Printf("All Feature Flags:\n")

			tab := table.New()
			tab.AddColumn("Name", "{{ .Name }}")
			tab.AddColumn("Type", "{{ .Type }}")
			tab.AddColumn("Default", "{{ .Default }}")
			tab.AddColumn("Description", "{{ .Description }}")

			for _, flag := range feature.Flag.List() {
				tab.AddRow(flag)
			}
			return tab.Write(gopts.stdout)
		},
	}

	return cmd
}
