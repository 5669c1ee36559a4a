package feature

// Flag is named such that checking for a feature uses `feature.Flag.Enabled(feature.ExampleFeature)`.
var Flag = New()

// flag names are written in kebab-case
const (
	FlatLegacyLayoutReads FlagName = "flat-legacy-layout-reads"
	SortedVolumeSelection FlagName = "sorted-volume-selection"
)

func init() {
	Flag.SetFlags(map[FlagName]FlagDesc{
		FlatLegacyLayoutReads: {Type: Beta, Description: "also look for backups in the flattened legacy layout (`Signal` or the build variant directory directly on the default storage) when listing legacy backup directories."},
		SortedVolumeSelection: {Type: Alpha, Description: "pick the removable volume with the lexically smallest path instead of the first one reported by the platform."},
	})
}
