package libraw

import (
	"cmp"
	"fmt"
)

// Version is a LibRaw version packed as 0x00MMmmpp.
//
// Because each component occupies its own byte, comparing two Versions as
// integers orders them by (major, minor, patch).
type Version uint32

// NewVersion packs a major, minor and patch number.
func NewVersion(major, minor, patch uint8) Version {
	return Version(uint32(major)<<16 | uint32(minor)<<8 | uint32(patch))
}

// Major returns the major version number.
func (v Version) Major() uint8 {
	return uint8((v & 0xFF0000) >> 16)
}

// Minor returns the minor version number.
func (v Version) Minor() uint8 {
	return uint8((v & 0x00FF00) >> 8)
}

// Patch returns the patch version number.
func (v Version) Patch() uint8 {
	return uint8(v & 0x0000FF)
}

// Compare returns -1, 0 or +1 depending on whether v is older than, equal to,
// or newer than o.
func (v Version) Compare(o Version) int {
	return cmp.Compare(v, o)
}

// Less reports whether v is older than o.
func (v Version) Less(o Version) bool {
	return v < o
}

// String renders the version as "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
}

// LibraryVersion returns the version of the linked LibRaw.
func LibraryVersion() Version {
	return Version(engineVersionNumber() & 0xFFFFFF)
}

// LibraryVersionString returns LibRaw's own version string, which may carry a
// release suffix such as "0.21.2-Release".
func LibraryVersionString() string {
	return engineVersionString()
}
