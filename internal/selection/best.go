package selection

import (
	"errors"
	"fmt"
	"strings"

	"biblefetch/internal/canon"
	"biblefetch/internal/fileset"
)

// ErrPriorityConflict reports two distinct filesets ranking identically after
// the complete priority tuple, which a consistent priority table cannot
// produce.
var ErrPriorityConflict = errors.New("priority table produced an irresolvable tie")

// Choice is the selection result for one (translation, book) request. Either
// fileset id may be empty when no candidate of that kind qualifies.
type Choice struct {
	AudioFilesetID  string
	TextFilesetID   string
	TimingAvailable bool
}

// Unavailable reports whether nothing qualified for the request. Expected for
// incomplete catalogs, not an error.
func (c Choice) Unavailable() bool {
	return c.AudioFilesetID == "" && c.TextFilesetID == ""
}

// ContainsBook reports whether a fileset of the given size code contains the
// book, under the group's canon. NT books live in NT/NTOTP/C sizes, OT books
// in OT/NTOTP/C; partial sizes match permissively when the group canon is
// PARTIAL. An unknown book code is a caller input error.
func ContainsBook(size, book string, groupCanon canon.Canon) (bool, error) {
	testament, err := canon.BookTestament(book)
	if err != nil {
		return false, err
	}
	switch size {
	case "C", "NTOTP":
		return true, nil
	case "NT":
		return testament == canon.NewTestament, nil
	case "OT":
		return testament == canon.OldTestament, nil
	case "P", "PARTIAL":
		return groupCanon == canon.Partial, nil
	}
	return false, nil
}

// audioRank orders audio candidates ascending: narration before drama,
// plain encoding before opus, then the id string for determinism.
type audioRank struct {
	dramatized int
	opus       int
	id         string
}

func rankAudio(id string) audioRank {
	rank := audioRank{id: id}
	if strings.Contains(id, "2DA") {
		rank.dramatized = 1
	}
	if strings.Contains(id, "-opus") {
		rank.opus = 1
	}
	return rank
}

func (a audioRank) less(b audioRank) bool {
	if a.dramatized != b.dramatized {
		return a.dramatized < b.dramatized
	}
	if a.opus != b.opus {
		return a.opus < b.opus
	}
	return a.id < b.id
}

func (a audioRank) equal(b audioRank) bool {
	return a.dramatized == b.dramatized && a.opus == b.opus && a.id == b.id
}

// textTiers is the ordered format-preference table. A candidate takes the
// first matching row; anything unmatched falls into the "other" tier below
// the table. New format tiers are new rows, not new branches.
var textTiers = []struct {
	name    string
	matches func(id, filesetType string) bool
}{
	{"plain", func(id, filesetType string) bool {
		return (strings.HasSuffix(id, "_ET") && !strings.Contains(id, "-")) || filesetType == "text_plain"
	}},
	{"usx", func(id, filesetType string) bool {
		return strings.HasSuffix(id, "-usx") || filesetType == "text_usx"
	}},
	{"json", func(id, filesetType string) bool {
		return strings.HasSuffix(id, "-json") || filesetType == "text_json"
	}},
}

// canonSpecificOffset shifts non-Complete editions below every Complete
// edition of the same format tier.
var canonSpecificOffset = len(textTiers) + 1

// textRank orders text candidates ascending: format tier first, with
// Complete-size editions taking the lower band, then the id string.
type textRank struct {
	bucket int
	id     string
}

func rankText(fs fileset.Fileset) textRank {
	tier := len(textTiers)
	for i, row := range textTiers {
		if row.matches(fs.ID, fs.Type) {
			tier = i
			break
		}
	}
	bucket := tier
	if fs.Size != "C" {
		bucket += canonSpecificOffset
	}
	return textRank{bucket: bucket, id: fs.ID}
}

func (a textRank) less(b textRank) bool {
	if a.bucket != b.bucket {
		return a.bucket < b.bucket
	}
	return a.id < b.id
}

func (a textRank) equal(b textRank) bool {
	return a.bucket == b.bucket && a.id == b.id
}

// BestForBook selects at most one audio and one text fileset from a
// translation's filesets for the requested book. Timing availability of the
// chosen audio is recorded but never influences the choice.
func BestForBook(filesets []fileset.Fileset, groupCanon canon.Canon, book string, timing fileset.TimingSet) (Choice, error) {
	var choice Choice
	var bestAudio audioRank
	var bestText textRank
	var audioFS, textFS fileset.Fileset
	haveAudio := false
	haveText := false

	for _, fs := range filesets {
		contained, err := ContainsBook(fs.Size, book, groupCanon)
		if err != nil {
			return Choice{}, err
		}
		if !contained {
			continue
		}

		switch fs.Kind() {
		case fileset.KindAudio:
			rank := rankAudio(fs.ID)
			switch {
			case !haveAudio:
				bestAudio, audioFS, haveAudio = rank, fs, true
			case rank.equal(bestAudio) && fs != audioFS:
				// Two distinct filesets surviving the full priority tuple
				// means the table is inconsistent; never pick silently.
				return Choice{}, fmt.Errorf("%w: audio %s ties %s", ErrPriorityConflict, fs.ID, audioFS.ID)
			case rank.less(bestAudio):
				bestAudio, audioFS = rank, fs
			}
		case fileset.KindText:
			rank := rankText(fs)
			switch {
			case !haveText:
				bestText, textFS, haveText = rank, fs, true
			case rank.equal(bestText) && fs != textFS:
				return Choice{}, fmt.Errorf("%w: text %s ties %s", ErrPriorityConflict, fs.ID, textFS.ID)
			case rank.less(bestText):
				bestText, textFS = rank, fs
			}
		}
	}

	if haveAudio {
		choice.AudioFilesetID = bestAudio.id
		choice.TimingAvailable = timing.Contains(fileset.NormalizeID(bestAudio.id))
	}
	if haveText {
		choice.TextFilesetID = bestText.id
	}
	return choice, nil
}
