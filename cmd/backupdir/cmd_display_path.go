package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/signalbackup/backupdir/internal/storage"
)

func newDisplayPathCommand(gopts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "display-path identifier [identifier...]",
		Short: "Format storage locations for display",
		Long: `
The "display-path" command formats the document identifier of a backup location
as "<volume> <name>", for example "SD card Backups". The volume is looked up in
the volume labels, identifiers which cannot be formatted are printed unchanged.
Characters which change the text direction are replaced.

EXIT STATUS
===========

Exit status is 0 if the command was successful.
Exit status is 1 if there was any error.
`,
		GroupID:           cmdGroupDefault,
		DisableAutoGenTag: true,
		Args:              cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runDisplayPath(gopts, args)
		},
	}

	return cmd
}

func runDisplayPath(gopts *GlobalOptions, identifiers []string) error {
	formatter := storage.NewDisplayPathFormatter(gopts.host(), gopts.language())

	type displayPath struct {
		Identifier string `json:"identifier"`
		Display    string `json:"display"`
	}

	var out []displayPath
	for _, id := range identifiers {
		out = append(out, displayPath{
			Identifier: id,
			Display:    storage.CleanFileName(formatter.FormatDisplayPath(id)),
		})
	}

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(out)
	}

	for _, p := range out {
		gopts.Println(p.Display)
	}
	return nil
}
