package fileset

import "strings"

// Kind categorizes a fileset's deliverable content.
type Kind string

const (
	KindAudio   Kind = "audio"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

// Fileset is one deliverable unit from the catalog. The identifier is opaque
// but structurally meaningful; comparisons are always exact-string.
type Fileset struct {
	ID   string
	Type string
	Size string
}

// audioTypes are the catalog type values that deliver audio recordings.
var audioTypes = map[string]struct{}{
	"audio":              {},
	"audio_stream":       {},
	"audio_drama":        {},
	"audio_drama_stream": {},
}

// KindOf derives the content kind from a raw catalog type value. Text types
// share a "text" prefix (text_plain, text_usx, text_json, text_format).
func KindOf(filesetType string) Kind {
	if _, ok := audioTypes[filesetType]; ok {
		return KindAudio
	}
	if strings.HasPrefix(filesetType, "text") {
		return KindText
	}
	return KindUnknown
}

// Kind returns the content kind of the fileset.
func (f Fileset) Kind() Kind {
	return KindOf(f.Type)
}
