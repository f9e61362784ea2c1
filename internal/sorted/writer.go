package sorted

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"biblefetch/internal/canon"
	"biblefetch/internal/catalog"
	"biblefetch/internal/classify"
	"biblefetch/internal/fileset"
	"biblefetch/internal/fileutil"
	"biblefetch/internal/logging"
	"biblefetch/internal/store"
)

// Summary describes one completed sort run. Field names match the
// summary.json layout downstream tooling reads.
type Summary struct {
	TotalLanguages          int `json:"total_languages"`
	TotalFilesets           int `json:"total_filesets"`
	TimingFilesetsAvailable int `json:"timing_filesets_available"`
	SyncablePairs           int `json:"syncable_pairs"`
	FilesetsWithTiming      int `json:"filesets_with_timing"`
	AudioFilesets           int `json:"audio_filesets"`
	TextFilesets            int `json:"text_filesets"`
}

// ExclusionRecord explains why one fileset is unsuitable for download.
type ExclusionRecord struct {
	ISO       string `json:"iso"`
	Language  string `json:"language"`
	BibleAbbr string `json:"bible_abbr"`
	BibleName string `json:"bible_name"`
	FilesetID string `json:"fileset_id"`
	Type      string `json:"type"`
	Size      string `json:"size"`
	Reason    string `json:"reason"`
	BookSet   string `json:"book_set,omitempty"`
}

// Exclusions groups flagged filesets by reason.
type Exclusions struct {
	SAVersions       []ExclusionRecord `json:"sa_versions"`
	PartialContent   []ExclusionRecord `json:"partial_content"`
	StoryAdaptations []ExclusionRecord `json:"story_adaptations"`
}

func (e *Exclusions) total() int {
	return len(e.SAVersions) + len(e.PartialContent) + len(e.StoryAdaptations)
}

// Sorter writes the classified metadata tree for a catalog snapshot.
type Sorter struct {
	outputDir string
	logger    *slog.Logger
	ledger    *store.Store
}

// NewSorter constructs a Sorter. The ledger may be nil, in which case
// classifications are not persisted to the database.
func NewSorter(outputDir string, logger *slog.Logger, ledger *store.Store) *Sorter {
	return &Sorter{
		outputDir: outputDir,
		logger:    logging.NewComponentLogger(logger, "sorter"),
		ledger:    ledger,
	}
}

// Run classifies every fileset in the snapshot and writes the sorted tree.
func (s *Sorter) Run(ctx context.Context, snapshot *catalog.Snapshot) (Summary, error) {
	languages := classify.Organize(snapshot)
	timing := fileset.NewTimingSet(snapshot.TimingIDs)

	var runID string
	if s.ledger != nil {
		var err error
		runID, err = s.ledger.BeginRun(ctx)
		if err != nil {
			return Summary{}, err
		}
	}

	isos := make([]string, 0, len(languages))
	for iso := range languages {
		isos = append(isos, iso)
	}
	sort.Strings(isos)

	summary := Summary{
		TotalLanguages:          len(languages),
		TimingFilesetsAvailable: len(snapshot.TimingIDs),
	}
	var exclusions Exclusions
	processed := make(map[string]struct{})

	for _, iso := range isos {
		if err := ctx.Err(); err != nil {
			return Summary{}, err
		}
		ls := languages[iso]
		pairs := fileset.SyncablePairs(ls.AudioIDs(), ls.TextIDs(), timing)
		summary.SyncablePairs += len(pairs)

		groups := make(map[string]store.Classification)
		records := make([]classify.Record, 0, len(ls.Audio)+len(ls.Text))
		records = append(records, ls.Audio...)
		records = append(records, ls.Text...)

		for _, rec := range records {
			key := processedKey(iso, rec)
			if _, done := processed[key]; done {
				continue
			}
			processed[key] = struct{}{}

			meta := classify.BuildMetadata(ls, rec, pairs, timing, snapshot.Extended)
			if err := s.writeMetadata(iso, rec, meta); err != nil {
				return Summary{}, err
			}

			trackExclusions(&exclusions, ls, rec, meta)
			accumulate(&summary, rec, timing)
			mergeGroup(groups, iso, rec, meta, runID)
		}

		if s.ledger != nil {
			for _, classification := range groups {
				if err := s.ledger.Record(ctx, classification); err != nil {
					return Summary{}, err
				}
			}
		}

		s.logger.Debug("language sorted",
			logging.String(logging.FieldLanguage, iso),
			logging.Int("filesets", len(records)),
			logging.Int("syncable_pairs", len(pairs)),
		)
	}

	summary.TotalFilesets = len(processed)

	if err := s.writeSummary(summary); err != nil {
		return Summary{}, err
	}
	if err := s.writeExclusions(&exclusions); err != nil {
		return Summary{}, err
	}
	if s.ledger != nil {
		if err := s.ledger.FinishRun(ctx, runID, summary.TotalLanguages, summary.TotalFilesets); err != nil {
			return Summary{}, err
		}
	}

	s.logger.Info("sort complete",
		logging.Int("languages", summary.TotalLanguages),
		logging.Int("filesets", summary.TotalFilesets),
		logging.Int("excluded", exclusions.total()),
		logging.String(logging.FieldRunID, runID),
	)
	return summary, nil
}

// processedKey allows expanded FULL records to be written once per derived
// canon while everything else is written once per fileset.
func processedKey(iso string, rec classify.Record) string {
	if rec.OriginalCanon == canon.Full {
		return iso + "/" + rec.Fileset.ID + "/" + string(rec.Canon)
	}
	return iso + "/" + rec.Fileset.ID
}

func (s *Sorter) writeMetadata(iso string, rec classify.Record, meta classify.Metadata) error {
	dirName := rec.Fileset.ID
	if rec.OriginalCanon == canon.Full && (rec.Canon == canon.NT || rec.Canon == canon.OT) {
		dirName = fmt.Sprintf("%s-%s", rec.Fileset.ID, strings.ToLower(string(rec.Canon)))
	}
	dir := filepath.Join(s.outputDir, iso, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create metadata directory: %w", err)
	}
	return writeJSON(filepath.Join(dir, "metadata.json"), meta)
}

func (s *Sorter) writeSummary(summary Summary) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return writeJSON(filepath.Join(s.outputDir, "summary.json"), summary)
}

func (s *Sorter) writeExclusions(exclusions *Exclusions) error {
	payload := struct {
		Generated string `json:"generated"`
		Summary   struct {
			SAVersions       int `json:"sa_versions"`
			PartialContent   int `json:"partial_content"`
			StoryAdaptations int `json:"story_adaptations"`
			TotalExcluded    int `json:"total_excluded"`
		} `json:"summary"`
		Exclusions *Exclusions `json:"exclusions"`
	}{
		Generated:  time.Now().Format(time.RFC3339),
		Exclusions: exclusions,
	}
	payload.Summary.SAVersions = len(exclusions.SAVersions)
	payload.Summary.PartialContent = len(exclusions.PartialContent)
	payload.Summary.StoryAdaptations = len(exclusions.StoryAdaptations)
	payload.Summary.TotalExcluded = exclusions.total()
	return writeJSON(filepath.Join(s.outputDir, "exclude_download.json"), payload)
}

func trackExclusions(exclusions *Exclusions, ls *classify.LanguageSet, rec classify.Record, meta classify.Metadata) {
	record := ExclusionRecord{
		ISO:       ls.Info.ISO,
		Language:  ls.Info.Name,
		BibleAbbr: rec.Bible.Abbr,
		BibleName: rec.Bible.Name,
		FilesetID: rec.Fileset.ID,
		Type:      rec.Fileset.Type,
		Size:      rec.Fileset.Size,
	}

	if strings.HasSuffix(rec.Fileset.ID, "SA") {
		record.Reason = "Streaming-only Story Adaptation (SA suffix)"
		exclusions.SAVersions = append(exclusions.SAVersions, record)
	}
	if meta.Canon == canon.Partial {
		partial := record
		partial.Reason = "Partial content (collection P - incomplete book set)"
		partial.BookSet = string(meta.Canon)
		exclusions.PartialContent = append(exclusions.PartialContent, partial)
	}
	lowerType := strings.ToLower(rec.Fileset.Type)
	if strings.Contains(lowerType, "story") || strings.Contains(lowerType, "video") {
		story := record
		story.Reason = "Video/Story adaptation format"
		exclusions.StoryAdaptations = append(exclusions.StoryAdaptations, story)
	}
}

func accumulate(summary *Summary, rec classify.Record, timing fileset.TimingSet) {
	switch rec.Fileset.Kind() {
	case fileset.KindAudio:
		summary.AudioFilesets++
		if timing.Contains(fileset.NormalizeID(rec.Fileset.ID)) {
			summary.FilesetsWithTiming++
		}
	case fileset.KindText:
		summary.TextFilesets++
	}
}

// mergeGroup folds one record into its (translation, canon) ledger row. The
// row keeps the first audio and text ids seen for the group.
func mergeGroup(groups map[string]store.Classification, iso string, rec classify.Record, meta classify.Metadata, runID string) {
	key := rec.Bible.Abbr + "/" + string(rec.Canon)
	row, ok := groups[key]
	if !ok {
		row = store.Classification{
			ISO:         iso,
			Translation: rec.Bible.Abbr,
			Canon:       string(rec.Canon),
			Category:    meta.AggregateCategory,
			RunID:       runID,
		}
	}
	if meta.DownloadReady.AudioFileset != "" && row.AudioFileset == "" {
		row.AudioFileset = meta.DownloadReady.AudioFileset
	}
	if meta.DownloadReady.TextFileset != "" && row.TextFileset == "" {
		row.TextFileset = meta.DownloadReady.TextFileset
	}
	if meta.DownloadReady.TimingAvailable {
		row.TimingAvailable = true
	}
	groups[key] = row
}

func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
