package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"biblefetch/internal/fileutil"
)

// Cache layout under the cache directory:
//
//	bibles/bibles_page_*.json               paginated catalog responses
//	bibles/timing_bibles/*.json             extended metadata per translation
//	samples/audio_timestamps_filesets.json  timing-available fileset list
const (
	biblesSubdir       = "bibles"
	timingBiblesSubdir = "timing_bibles"
	timingListPath     = "samples/audio_timestamps_filesets.json"
)

type pageEnvelope struct {
	Data []Record `json:"data"`
}

type timingEntry struct {
	FilesetID string `json:"fileset_id"`
}

type timingBibleEnvelope struct {
	Data struct {
		Abbr         string `json:"abbr"`
		Mark         string `json:"mark"`
		Country      string `json:"country"`
		Description  string `json:"description"`
		VDescription string `json:"vdescription"`
	} `json:"data"`
}

// LoadSnapshot reads a complete catalog snapshot from the offline cache
// directory. Missing timing data or extended metadata degrades to an empty
// set; missing catalog pages are an error because nothing can be classified
// without them.
func LoadSnapshot(cacheDir string) (*Snapshot, error) {
	records, err := loadPages(filepath.Join(cacheDir, biblesSubdir))
	if err != nil {
		return nil, err
	}

	timingIDs, err := loadTimingIDs(filepath.Join(cacheDir, timingListPath))
	if err != nil {
		return nil, err
	}

	extended, err := loadExtended(filepath.Join(cacheDir, biblesSubdir, timingBiblesSubdir))
	if err != nil {
		return nil, err
	}

	return &Snapshot{Records: records, TimingIDs: timingIDs, Extended: extended}, nil
}

func loadPages(dir string) ([]Record, error) {
	pages, err := filepath.Glob(filepath.Join(dir, "bibles_page_*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob catalog pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no catalog pages found in %s", dir)
	}
	sort.Strings(pages)

	var records []Record
	for _, page := range pages {
		data, err := os.ReadFile(page)
		if err != nil {
			return nil, fmt.Errorf("read catalog page: %w", err)
		}
		var envelope pageEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			return nil, fmt.Errorf("parse catalog page %s: %w", filepath.Base(page), err)
		}
		records = append(records, envelope.Data...)
	}
	return records, nil
}

func loadTimingIDs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read timing list: %w", err)
	}
	var entries []timingEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse timing list: %w", err)
	}
	ids := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.FilesetID != "" {
			ids = append(ids, entry.FilesetID)
		}
	}
	return ids, nil
}

func loadExtended(dir string) (map[string]ExtendedMeta, error) {
	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("glob timing bibles: %w", err)
	}
	extended := make(map[string]ExtendedMeta)
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read timing bible %s: %w", filepath.Base(path), err)
		}
		var envelope timingBibleEnvelope
		if err := json.Unmarshal(data, &envelope); err != nil {
			// Individual overlay files are best-effort; skip malformed ones.
			continue
		}
		if envelope.Data.Abbr == "" {
			continue
		}
		meta := ExtendedMeta{
			Mark:         envelope.Data.Mark,
			Country:      envelope.Data.Country,
			Description:  envelope.Data.Description,
			VDescription: envelope.Data.VDescription,
		}
		if meta.Empty() {
			continue
		}
		extended[envelope.Data.Abbr] = meta
	}
	return extended, nil
}

// WritePage stores one page of catalog records in the cache layout
// LoadSnapshot reads. Pages are numbered from 1.
func WritePage(cacheDir string, page int, records []Record) error {
	data, err := json.MarshalIndent(pageEnvelope{Data: records}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode catalog page: %w", err)
	}
	data = append(data, '\n')
	path := filepath.Join(cacheDir, biblesSubdir, fmt.Sprintf("bibles_page_%03d.json", page))
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog page: %w", err)
	}
	return nil
}

// MergeExtended folds overlay fields found on regular catalog records into the
// snapshot's extended map, keyed by the normalized translation abbreviation.
// Existing overlay entries win field by field.
func (s *Snapshot) MergeExtended(abbr string, meta ExtendedMeta) {
	if meta.Empty() || abbr == "" {
		return
	}
	if s.Extended == nil {
		s.Extended = make(map[string]ExtendedMeta)
	}
	if existing, ok := s.Extended[abbr]; ok {
		s.Extended[abbr] = existing.merge(meta)
		return
	}
	s.Extended[abbr] = meta
}
