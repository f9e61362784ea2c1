package download

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"biblefetch/internal/canon"
	"biblefetch/internal/fileutil"
)

// ErrorEntry records one failed download attempt.
type ErrorEntry struct {
	Timestamp  string `json:"timestamp"`
	ErrorType  string `json:"error_type"`
	Fileset    string `json:"fileset"`
	DistinctID string `json:"distinct_id"`
	Details    string `json:"details"`
}

// chapterErrors groups a chapter's failures by content type.
type chapterErrors struct {
	Audio  []ErrorEntry
	Text   []ErrorEntry
	Timing []ErrorEntry
}

type chapterKey struct {
	Book    string
	Chapter int
}

// ErrorLog accumulates download failures per language and canon. It is safe
// for concurrent use by download workers.
type ErrorLog struct {
	mu     sync.Mutex
	byLang map[string]map[canon.Canon]map[chapterKey]*chapterErrors
}

// NewErrorLog returns an empty error log.
func NewErrorLog() *ErrorLog {
	return &ErrorLog{byLang: make(map[string]map[canon.Canon]map[chapterKey]*chapterErrors)}
}

// Add records one failure. contentType is "audio", "text" or "timing".
func (l *ErrorLog) Add(iso string, c canon.Canon, book string, chapter int, errorType, contentType, filesetID, distinctID, details string) {
	entry := ErrorEntry{
		Timestamp:  time.Now().Format(time.RFC3339),
		ErrorType:  errorType,
		Fileset:    filesetID,
		DistinctID: distinctID,
		Details:    details,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.byLang[iso] == nil {
		l.byLang[iso] = make(map[canon.Canon]map[chapterKey]*chapterErrors)
	}
	if l.byLang[iso][c] == nil {
		l.byLang[iso][c] = make(map[chapterKey]*chapterErrors)
	}
	key := chapterKey{Book: book, Chapter: chapter}
	errs := l.byLang[iso][c][key]
	if errs == nil {
		errs = &chapterErrors{}
		l.byLang[iso][c][key] = errs
	}
	switch contentType {
	case "audio":
		errs.Audio = append(errs.Audio, entry)
	case "text":
		errs.Text = append(errs.Text, entry)
	case "timing":
		errs.Timing = append(errs.Timing, entry)
	}
}

// Empty reports whether nothing has been recorded.
func (l *ErrorLog) Empty() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.byLang) == 0
}

// errorFile is the persisted per-language report. Re-running a download
// merges new failures into the existing file instead of replacing it.
type errorFile struct {
	Language    string             `json:"language"`
	Canon       string             `json:"canon"`
	Errors      []errorFileChapter `json:"errors"`
	LastUpdated string             `json:"last_updated"`
}

type errorFileChapter struct {
	Timestamp    string       `json:"timestamp"`
	Book         string       `json:"book"`
	Chapter      int          `json:"chapter"`
	AudioErrors  []ErrorEntry `json:"audio_errors"`
	TextErrors   []ErrorEntry `json:"text_errors"`
	TimingErrors []ErrorEntry `json:"timing_errors"`
}

// Save writes accumulated failures under
// {logDir}/{canon}/{iso}/{canon}-{iso}-error.json, merging with any existing
// report for the same language and canon.
func (l *ErrorLog) Save(logDir string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now().Format(time.RFC3339)
	for iso, canons := range l.byLang {
		for c, chapters := range canons {
			canonDir := strings.ToLower(string(c))
			dir := filepath.Join(logDir, canonDir, iso)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create error log directory: %w", err)
			}
			path := filepath.Join(dir, fmt.Sprintf("%s-%s-error.json", canonDir, iso))

			report := errorFile{Language: iso, Canon: string(c)}
			if data, err := os.ReadFile(path); err == nil {
				// A corrupt existing report is discarded rather than
				// blocking new failures from being written.
				_ = json.Unmarshal(data, &report)
			}

			for key, errs := range chapters {
				merged := false
				for i := range report.Errors {
					if report.Errors[i].Book == key.Book && report.Errors[i].Chapter == key.Chapter {
						report.Errors[i].AudioErrors = append(report.Errors[i].AudioErrors, errs.Audio...)
						report.Errors[i].TextErrors = append(report.Errors[i].TextErrors, errs.Text...)
						report.Errors[i].TimingErrors = append(report.Errors[i].TimingErrors, errs.Timing...)
						report.Errors[i].Timestamp = now
						merged = true
						break
					}
				}
				if !merged {
					report.Errors = append(report.Errors, errorFileChapter{
						Timestamp:    now,
						Book:         key.Book,
						Chapter:      key.Chapter,
						AudioErrors:  errs.Audio,
						TextErrors:   errs.Text,
						TimingErrors: errs.Timing,
					})
				}
			}
			report.LastUpdated = now

			data, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("encode error log: %w", err)
			}
			data = append(data, '\n')
			if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
				return fmt.Errorf("write error log: %w", err)
			}
		}
	}
	return nil
}
