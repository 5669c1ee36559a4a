package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/signalbackup/backupdir/internal/storage"
	"github.com/signalbackup/backupdir/internal/ui/table"
)

func newVolumesCommand(gopts *GlobalOptions) *cobra.Command {
	var preferRemovable bool

	cmd := &cobra.Command{
		Use:   "volumes [flags]",
		Short: "List storage volumes",
		Long: `
The "volumes" command lists the default storage and the removable volumes
usable for backups. The volume selected for legacy backups is marked.
Listing a removable volume creates the application files directory on it.

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
			return runVolumes(gopts, preferRemovable)
		},
	}

	cmd.Flags().BoolVar(&preferRemovable, "prefer-removable", false, "mark the volume selected with a removable preference (default: $BACKUPDIR_PREFER_REMOVABLE)")

	return cmd
}

type volumeInfo struct {
	ID          string `json:"id,omitempty"`
	Description string `json:"description,omitempty"`
	Path        string `json:"path"`
	Removable   bool   `json:"removable"`
	Selected    bool   `json:"selected"`
}

func runVolumes(gopts *GlobalOptions, preferRemovable bool) error {
	selector := storage.NewVolumeSelector(gopts.host())

	def, err := selector.DefaultRoot()
	if err != nil {
		return err
	}
	removable, err := selector.RemovableRoots()
	if err != nil {
		return err
	}
	selected, err := selector.SelectRoot(preferRemovable)
	if err != nil {
		return err
	}

	volumes := []volumeInfo{{
		ID:          def.ID,
		Description: def.Description,
		Path:        def.Path,
		Selected:    selected.Path == def.Path,
	}}
	for _, root := range removable {
		volumes = append(volumes, volumeInfo{
			ID:          root.ID,
			Description: root.Description,
			Path:        root.Path,
			Removable:   true,
			Selected:    selected.Path == root.Path,
		})
	}

	if gopts.JSON {
		return json.NewEncoder(gopts.stdout).Encode(volumes)
	}

	tab := table.New()
	tab.AddColumn("ID", "{{ .ID }}")
	tab.AddColumn("Description", "{{ .Description }}")
	tab.AddColumn("Path", "{{ .Path }}")
	tab.AddColumn("Removable", "{{ if .Removable }}yes{{ end }}")
	tab.AddColumn("Selected", "{{ if .Selected }}*{{ end }}")
	for _, v := range volumes {
		tab.AddRow(v)
	}
	tab.AddFooter(fmt.Sprintf("%d removable volumes", len(removable)))

	return tab.Write(gopts.stdout)
}
