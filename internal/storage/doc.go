// Package storage computes where backups of a certain category are stored.
//
// Two storage models exist. In the legacy model the backup directory lives
// below a storage root that is accessed by path directly, either the
// default external storage or, when preferred, a removable volume. In the
// scoped model the user grants access to a directory through a handle, and
// the backup directory lives next to (or below) that directory.
//
// All reserved directory names are defined as constants in this package.
// The Resolver is the entry point; it creates the resolved directory before
// returning it.
package storage
