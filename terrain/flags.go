package terrain

import "strings"

// Flags are the boolean custom-data fields a tile may expose.
type Flags uint8

const (
	Buildable Flags = 1 << iota
	Resource
	Ignored
)

// Custom-data keys as they appear in level documents.
const (
	KeyBuildable = "is_buildable"
	KeyResource  = "is_resource"
	KeyWood      = "is_wood"
	KeyIgnored   = "is_ignored"
)

// Has reports whether every bit of o is set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(Buildable) {
		parts = append(parts, KeyBuildable)
	}
	if f.Has(Resource) {
		parts = append(parts, KeyResource)
	}
	if f.Has(Ignored) {
		parts = append(parts, KeyIgnored)
	}
	return strings.Join(parts, "|")
}

// FlagsFromKeys converts a custom-data map into Flags. Unknown keys are reported
// through the second return value.
func FlagsFromKeys(data map[string]bool) (Flags, []string) {
	var f Flags
	var unknown []string
	for key, set := range data {
		var bit Flags
		switch key {
		case KeyBuildable:
			bit = Buildable
		case KeyResource, KeyWood:
			bit = Resource
		case KeyIgnored:
			bit = Ignored
		default:
			unknown = append(unknown, key)
			continue
		}
		if set {
			f |= bit
		}
	}
	return f, unknown
}
