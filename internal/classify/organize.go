package classify

import (
	"sort"
	"strings"

	"biblefetch/internal/canon"
	"biblefetch/internal/catalog"
	"biblefetch/internal/fileset"
)

// LanguageInfo identifies one language; the ISO code is the identity key.
type LanguageInfo struct {
	ISO      string `json:"iso"`
	ID       int64  `json:"language_id"`
	Name     string `json:"name"`
	Autonym  string `json:"autonym"`
	RolvCode string `json:"language_rolv_code,omitempty"`
}

// BibleInfo carries the translation-level fields attached to each record.
type BibleInfo struct {
	Abbr  string `json:"abbr"`
	Name  string `json:"name"`
	VName string `json:"vname"`
	Date  string `json:"date,omitempty"`
}

// Record is one classified fileset record: a fileset annotated with its
// translation, canon, and the canon it resolved to before FULL fan-out.
type Record struct {
	Fileset       fileset.Fileset
	Bible         BibleInfo
	Canon         canon.Canon
	OriginalCanon canon.Canon
}

// LanguageSet holds every classified record for one language.
type LanguageSet struct {
	Info  LanguageInfo
	Audio []Record
	Text  []Record
}

// AudioIDs returns the language's audio fileset ids in record order.
func (ls *LanguageSet) AudioIDs() []string {
	ids := make([]string, 0, len(ls.Audio))
	for _, rec := range ls.Audio {
		ids = append(ids, rec.Fileset.ID)
	}
	return ids
}

// TextIDs returns the language's distinct text fileset ids in record order.
// FULL fan-out duplicates records, not ids.
func (ls *LanguageSet) TextIDs() []string {
	ids := make([]string, 0, len(ls.Text))
	seen := make(map[string]struct{}, len(ls.Text))
	for _, rec := range ls.Text {
		if _, dup := seen[rec.Fileset.ID]; dup {
			continue
		}
		seen[rec.Fileset.ID] = struct{}{}
		ids = append(ids, rec.Fileset.ID)
	}
	return ids
}

// NormalizeTranslation derives the 6-character translation abbreviation
// (distinct_id). Abbreviations longer than six characters carry a trailing
// canon marker that is stripped. A missing abbreviation falls back to the
// first six characters of the fileset id.
func NormalizeTranslation(abbr, filesetID string) string {
	abbr = strings.TrimSpace(abbr)
	if abbr == "" {
		if len(filesetID) >= 6 {
			return strings.ToUpper(filesetID[:6])
		}
		return strings.ToUpper(filesetID)
	}
	if len(abbr) > 6 {
		return abbr[:6]
	}
	return abbr
}

// Organize groups a snapshot's records by language and classifies every
// fileset. Duplicate fileset ids within a language are kept once (first
// occurrence wins). FULL text filesets fan out into an NT and an OT record
// pointing at the same id; audio is never fanned out. Overlay fields found on
// regular catalog records are folded into the snapshot's extended metadata.
func Organize(snapshot *catalog.Snapshot) map[string]*LanguageSet {
	languages := make(map[string]*LanguageSet)

	for _, record := range snapshot.Records {
		if record.ISO == "" {
			continue
		}
		ls, ok := languages[record.ISO]
		if !ok {
			ls = &LanguageSet{Info: LanguageInfo{
				ISO:      record.ISO,
				ID:       record.LanguageID,
				Name:     record.Language,
				Autonym:  record.Autonym,
				RolvCode: record.RolvCode,
			}}
			languages[record.ISO] = ls
		}

		seenAudio := idSet(ls.Audio)
		seenText := idSet(ls.Text)

		for _, key := range sortedKeys(record.Filesets) {
			for _, descriptor := range record.Filesets[key] {
				if descriptor.ID == "" {
					continue
				}
				translation := NormalizeTranslation(record.Abbr, descriptor.ID)
				snapshot.MergeExtended(translation, catalog.ExtendedMeta{
					Mark:         record.Mark,
					Country:      record.Country,
					Description:  record.Description,
					VDescription: record.VDescription,
				})

				fs := fileset.Fileset{ID: descriptor.ID, Type: descriptor.Type, Size: descriptor.Size}
				resolved := canon.Resolve(descriptor.ID, descriptor.Size)
				rec := Record{
					Fileset: fs,
					Bible: BibleInfo{
						Abbr:  translation,
						Name:  record.Name,
						VName: record.VName,
						Date:  firstNonEmpty(record.Date, descriptor.Date),
					},
					Canon:         resolved,
					OriginalCanon: resolved,
				}

				switch fs.Kind() {
				case fileset.KindAudio:
					if _, dup := seenAudio[fs.ID]; dup {
						continue
					}
					seenAudio[fs.ID] = struct{}{}
					ls.Audio = append(ls.Audio, rec)
				case fileset.KindText:
					if _, dup := seenText[fs.ID]; dup {
						continue
					}
					seenText[fs.ID] = struct{}{}
					for _, expanded := range canon.Expand(resolved) {
						fanned := rec
						fanned.Canon = expanded
						ls.Text = append(ls.Text, fanned)
					}
				}
			}
		}
	}

	return languages
}

func idSet(records []Record) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, rec := range records {
		set[rec.Fileset.ID] = struct{}{}
	}
	return set
}

func sortedKeys(m map[string][]catalog.FilesetDescriptor) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
