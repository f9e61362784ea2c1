package fileset

import "strings"

// Ordered suffix lists; the first match wins. Audio suffixes are checked
// before text suffixes, and the longer mp3 bitrate variants before the bare
// -mp3 so a single pass never strips a partial suffix.
var (
	audioSuffixes = []string{"-opus16", "-opus32", "-mp3-64", "-mp3-128", "-mp3"}
	textSuffixes  = []string{"-json", "-usx", "-html"}
)

// NormalizeID strips a known trailing format or bitrate suffix from a fileset
// identifier, returning the canonical id used for timing lookups and
// cross-referencing. Identifiers without a known suffix pass through
// unchanged.
//
//	AAAMLTN1DA-opus16 -> AAAMLTN1DA
//	ENGESV_ET-json    -> ENGESV_ET
func NormalizeID(id string) string {
	for _, suffix := range audioSuffixes {
		if strings.HasSuffix(id, suffix) {
			return id[:len(id)-len(suffix)]
		}
	}
	for _, suffix := range textSuffixes {
		if strings.HasSuffix(id, suffix) {
			return id[:len(id)-len(suffix)]
		}
	}
	return id
}
