package classify

import (
	"biblefetch/internal/canon"
	"biblefetch/internal/fileset"
)

// Category is the availability label attached to a (translation, canon)
// group. Exactly one applies; CategoryNone means the group has no usable
// content and is dropped from output.
type Category string

const (
	CategoryPartial            Category = "partial"
	CategoryWithTimecode       Category = "with-timecode"
	CategoryIncompleteTimecode Category = "incomplete-timecode"
	CategorySyncable           Category = "syncable"
	CategoryTextOnly           Category = "text-only"
	CategoryAudioOnly          Category = "audio-only"
	CategoryNone               Category = ""
)

// GroupFlags aggregates content availability over one (translation, canon)
// group.
type GroupFlags struct {
	HasAudio  bool
	HasText   bool
	HasTiming bool
}

// Classify labels a (translation, canon) group. PARTIAL canon returns
// partial unconditionally; otherwise the first matching row of the fixed
// priority order wins. The result is a pure function of the canon and three
// booleans, re-derivable from the snapshot at any time.
func Classify(c canon.Canon, flags GroupFlags) Category {
	if c == canon.Partial {
		return CategoryPartial
	}
	switch {
	case flags.HasTiming && flags.HasText && flags.HasAudio:
		return CategoryWithTimecode
	case flags.HasTiming:
		return CategoryIncompleteTimecode
	case flags.HasText && flags.HasAudio:
		return CategorySyncable
	case flags.HasText:
		return CategoryTextOnly
	case flags.HasAudio:
		return CategoryAudioOnly
	default:
		return CategoryNone
	}
}

// GroupFlagsFor computes availability flags for one (translation, canon)
// group within a language. Timing is present when any of the group's audio
// filesets has a normalized id in the timing set.
func GroupFlagsFor(ls *LanguageSet, translation string, c canon.Canon, timing fileset.TimingSet) GroupFlags {
	var flags GroupFlags
	for _, rec := range ls.Audio {
		if rec.Bible.Abbr != translation || rec.Canon != c {
			continue
		}
		flags.HasAudio = true
		if timing.Contains(fileset.NormalizeID(rec.Fileset.ID)) {
			flags.HasTiming = true
		}
	}
	for _, rec := range ls.Text {
		if rec.Bible.Abbr == translation && rec.Canon == c {
			flags.HasText = true
			break
		}
	}
	return flags
}

// CategoryFor classifies one (translation, canon) group directly.
func CategoryFor(ls *LanguageSet, translation string, c canon.Canon, timing fileset.TimingSet) Category {
	return Classify(c, GroupFlagsFor(ls, translation, c, timing))
}
