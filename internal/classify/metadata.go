package classify

import (
	"biblefetch/internal/canon"
	"biblefetch/internal/catalog"
	"biblefetch/internal/fileset"
)

// BibleMeta is the translation block of a metadata record, including any
// extended overlay fields.
type BibleMeta struct {
	Abbr         string `json:"abbr"`
	Name         string `json:"name"`
	VName        string `json:"vname"`
	Mark         string `json:"mark,omitempty"`
	Country      string `json:"country,omitempty"`
	Description  string `json:"description,omitempty"`
	VDescription string `json:"vdescription,omitempty"`
}

// FilesetMeta is the fileset block of a metadata record.
type FilesetMeta struct {
	ID         string `json:"id"`
	Type       string `json:"type"`
	Size       string `json:"size"`
	Volume     string `json:"volume,omitempty"`
	Date       string `json:"date,omitempty"`
	Collection string `json:"collection,omitempty"`
}

// Categorization carries the individual and group-level capability flags.
type Categorization struct {
	HasText        bool                   `json:"has_text"`
	HasAudio       bool                   `json:"has_audio"`
	HasTiming      bool                   `json:"has_timing"`
	CanonHasText   bool                   `json:"canon_has_text"`
	CanonHasAudio  bool                   `json:"canon_has_audio"`
	CanonHasTiming bool                   `json:"canon_has_timing"`
	DataSource     string                 `json:"data_source,omitempty"`
	Syncable       bool                   `json:"syncable"`
	AudioTextPairs []fileset.SyncablePair `json:"audio_text_pairs,omitempty"`
}

// DownloadReady mirrors the fields the download planner reads directly.
type DownloadReady struct {
	TextFileset     string `json:"text_fileset,omitempty"`
	AudioFileset    string `json:"audio_fileset,omitempty"`
	TimingAvailable bool   `json:"timing_available"`
}

// Metadata is the full classification output for one fileset record. An
// expanded FULL text fileset produces two Metadata values, one per derived
// canon.
type Metadata struct {
	Language          LanguageInfo   `json:"language"`
	Bible             BibleMeta      `json:"bible"`
	Fileset           FilesetMeta    `json:"fileset"`
	IndividualKind    string         `json:"individual_category"`
	AggregateCategory Category       `json:"aggregate_category"`
	Canon             canon.Canon    `json:"canon"`
	OriginalCanon     canon.Canon    `json:"-"`
	Categorization    Categorization `json:"categorization"`
	DownloadReady     DownloadReady  `json:"download_ready"`
}

// IndividualKind labels one fileset by its own capability: timing beats
// audio beats text; anything else is unknown.
func IndividualKind(fs fileset.Fileset, timing fileset.TimingSet) string {
	if timing.Contains(fileset.NormalizeID(fs.ID)) {
		return "timing"
	}
	switch fs.Kind() {
	case fileset.KindAudio:
		return "audio"
	case fileset.KindText:
		return "text"
	default:
		return "unknown"
	}
}

// dataSource labels where alignment data for a fileset would come from:
// "timing" for audio that already has timestamps, "sync" for members of a
// syncable pair, empty otherwise.
func dataSource(fs fileset.Fileset, pairs []fileset.SyncablePair, timing fileset.TimingSet) string {
	if fs.Kind() == fileset.KindAudio {
		if timing.Contains(fileset.NormalizeID(fs.ID)) {
			return "timing"
		}
		for _, pair := range pairs {
			if pair.AudioFilesetID == fs.ID {
				return "sync"
			}
		}
		return ""
	}
	for _, pair := range pairs {
		for _, textID := range pair.TextFilesetIDs {
			if textID == fs.ID {
				return "sync"
			}
		}
	}
	return ""
}

// BuildMetadata assembles the metadata record for one classified fileset.
func BuildMetadata(ls *LanguageSet, rec Record, pairs []fileset.SyncablePair, timing fileset.TimingSet, extended map[string]catalog.ExtendedMeta) Metadata {
	fs := rec.Fileset
	kind := fs.Kind()
	hasTiming := timing.Contains(fileset.NormalizeID(fs.ID))

	var audioTextPairs []fileset.SyncablePair
	syncable := false
	if kind == fileset.KindAudio {
		for _, pair := range pairs {
			if pair.AudioFilesetID == fs.ID {
				audioTextPairs = append(audioTextPairs, pair)
				syncable = true
			}
		}
	}

	flags := GroupFlagsFor(ls, rec.Bible.Abbr, rec.Canon, timing)

	meta := Metadata{
		Language: ls.Info,
		Bible: BibleMeta{
			Abbr:  rec.Bible.Abbr,
			Name:  rec.Bible.Name,
			VName: rec.Bible.VName,
		},
		Fileset: FilesetMeta{
			ID:   fs.ID,
			Type: fs.Type,
			Size: fs.Size,
			Date: rec.Bible.Date,
		},
		IndividualKind:    IndividualKind(fs, timing),
		AggregateCategory: Classify(rec.Canon, flags),
		Canon:             rec.Canon,
		OriginalCanon:     rec.OriginalCanon,
		Categorization: Categorization{
			HasText:        kind == fileset.KindText,
			HasAudio:       kind == fileset.KindAudio,
			HasTiming:      hasTiming,
			CanonHasText:   flags.HasText,
			CanonHasAudio:  flags.HasAudio,
			CanonHasTiming: flags.HasTiming,
			DataSource:     dataSource(fs, pairs, timing),
			Syncable:       syncable,
			AudioTextPairs: audioTextPairs,
		},
		DownloadReady: DownloadReady{TimingAvailable: hasTiming},
	}

	if kind == fileset.KindText {
		meta.DownloadReady.TextFileset = fs.ID
	}
	if kind == fileset.KindAudio {
		meta.DownloadReady.AudioFileset = fs.ID
	}

	// Collection marker from the identifier, when present.
	if len(fs.ID) >= 7 {
		meta.Fileset.Collection = string(fs.ID[6])
	}

	if overlay, ok := extended[rec.Bible.Abbr]; ok {
		meta.Bible.Mark = overlay.Mark
		meta.Bible.Country = overlay.Country
		meta.Bible.Description = overlay.Description
		meta.Bible.VDescription = overlay.VDescription
	}

	return meta
}
