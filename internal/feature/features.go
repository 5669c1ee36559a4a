package feature

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Phase is the maturity of a feature flag.
type Phase string

// FlagName is the kebab-case name of a feature flag as used in $BACKUPDIR_FEATURES.
type FlagName string

const (
	// Alpha flags are off unless enabled explicitly.
	Alpha Phase = "alpha"
	// Beta flags are on unless disabled explicitly.
	Beta Phase = "beta"
)

// FlagDesc describes a registered flag.
type FlagDesc struct {
	Type        Phase
	Description string
}

// FlagSet holds the registered flags and their current state.
type FlagSet struct {
	flags   map[FlagName]FlagDesc
	enabled map[FlagName]bool
}

func New() *FlagSet {
	return &FlagSet{}
}

func (p Phase) enabledByDefault() bool {
	switch p {
	case Alpha:
		return false
	case Beta:
		return true
	default:
		panic(fmt.Sprintf("unknown feature phase %q", p))
	}
}

// SetFlags replaces the registered flags, each starts in its default state.
func (f *FlagSet) SetFlags(flags map[FlagName]FlagDesc) {
	f.flags = make(map[FlagName]FlagDesc, len(flags))
	f.enabled = make(map[FlagName]bool, len(flags))

	for name, desc := range flags {
		f.flags[name] = desc
		f.enabled[name] = desc.Type.enabledByDefault()
	}
}

// Apply parses a comma separated list of `name[=bool]` entries and updates the
// flag states. Nothing is changed if an entry is invalid. A flag listed more
// than once takes the last value, logWarning is called for it.
func (f *FlagSet) Apply(flags string, logWarning func(string)) error {
	if flags == "" {
		return nil
	}

	selection := make(map[FlagName]bool)
	for _, entry := range strings.Split(flags, ",") {
		name, value, ok := strings.Cut(entry, "=")
		if !ok {
			value = "true"
		}

		enable, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("failed to parse value %q for feature flag %v: %w", value, name, err)
		}

		fname := FlagName(name)
		if _, ok := f.flags[fname]; !ok {
			return fmt.Errorf("unknown feature flag %q", name)
		}

		if _, seen := selection[fname]; seen {
			logWarning(fmt.Sprintf("feature flag %q given more than once, using %v", name, enable))
		}
		selection[fname] = enable
	}

	for name, enable := range selection {
		f.enabled[name] = enable
	}
	return nil
}

// Enabled returns whether the flag is enabled. It panics for unknown flags.
func (f *FlagSet) Enabled(name FlagName) bool {
	enabled, ok := f.enabled[name]
	if !ok {
		panic(fmt.Sprintf("unknown feature flag %v", name))
	}
	return enabled
}

// Help describes a flag for the features command.
type Help struct {
	Name        string
	Type        string
	Default     bool
	Description string
}

// List returns all registered flags sorted by name.
func (f *FlagSet) List() []Help {
	help := make([]Help, 0, len(f.flags))
	for name, desc := range f.flags {
		help = append(help, Help{
			Name:        string(name),
			Type:        string(desc.Type),
			Default:     desc.Type.enabledByDefault(),
			Description: desc.Description,
		})
	}

	sort.Slice(help, func(i, j int) bool { return help[i].Name < help[j].Name })
	return help
}
