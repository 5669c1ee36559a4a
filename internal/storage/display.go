package storage

import (
	"net/url"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// volumeLeafFormat composes a volume description and a directory name. It is
// also the catalog key, languages without a translation use it as is.
const volumeLeafFormat = "%[1]s %[2]s"

// DisplayPathFormatter turns handle identifiers into labels for the user.
type DisplayPathFormatter struct {
	volumes VolumeDescriber
	printer *message.Printer
}

// NewDisplayPathFormatter returns a formatter which looks up volume
// descriptions in volumes and formats labels for the language tag.
func NewDisplayPathFormatter(volumes VolumeDescriber, tag language.Tag) *DisplayPathFormatter {
	return &DisplayPathFormatter{
		volumes: volumes,
		printer: message.NewPrinter(tag),
	}
}

// FormatDisplayPath returns "<volume description> <name>" for an identifier
// of the form "<volume>:<name>", or only the name if the volume is unknown.
// Tree URIs are reduced to their last path segment first.
func (f *DisplayPathFormatter) FormatDisplayPath(identifier string) string {
	segment := lastPathSegment(identifier)

	volume, _, _ := strings.Cut(segment, ":")
	name := segment
	if i := strings.LastIndex(segment, ":"); i >= 0 {
		name = segment[i+1:]
	}

	description, ok := f.volumes.VolumeDescription(volume)
	if !ok {
		return name
	}

	return f.printer.Sprintf(volumeLeafFormat, description, name)
}

func lastPathSegment(identifier string) string {
	if !strings.HasPrefix(identifier, treeURIScheme+"://") {
		return identifier
	}

	u, err := url.Parse(identifier)
	if err != nil {
		return identifier
	}

	escaped := strings.TrimRight(u.EscapedPath(), "/")
	segment, err := url.PathUnescape(escaped[strings.LastIndex(escaped, "/")+1:])
	if err != nil {
		return identifier
	}
	return segment
}

// CleanFileName replaces the bidirectional override characters in name,
// which would otherwise let a file name display differently than it is.
func CleanFileName(name string) string {
	return strings.NewReplacer("\u202d", "\ufffd", "\u202e", "\ufffd").Replace(name)
}
