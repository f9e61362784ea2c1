package download

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"biblefetch/internal/canon"
	"biblefetch/internal/classify"
	"biblefetch/internal/fileset"
	"biblefetch/internal/fileutil"
	"biblefetch/internal/logging"
	"biblefetch/internal/selection"
	"biblefetch/internal/services"
	"biblefetch/internal/services/biblebrain"
	"biblefetch/internal/sorted"
)

// legacyTimingCategory is the label older sorted trees used for groups with
// timing but no text. The classifier now emits incomplete-timecode; both are
// accepted when filtering for timing content.
const legacyTimingCategory = classify.Category("audio-with-timecode")

// Options control one download run.
type Options struct {
	Force            bool
	ForcePartial     bool
	RequiredCategory classify.Category
	RequiredCanon    canon.Canon
	ContentTypes     []string
	Workers          int
}

func (o Options) wants(contentType string) bool {
	if len(o.ContentTypes) == 0 {
		return true
	}
	for _, ct := range o.ContentTypes {
		if ct == contentType {
			return true
		}
	}
	return false
}

// Downloader fetches chapter media for classified languages.
type Downloader struct {
	client    *biblebrain.Client
	sortedDir string
	outputDir string
	logger    *slog.Logger
	opts      Options
	stats     *Stats
	errors    *ErrorLog
}

// New constructs a Downloader reading classifications from sortedDir and
// writing media under outputDir.
func New(client *biblebrain.Client, sortedDir, outputDir string, opts Options, logger *slog.Logger) *Downloader {
	return &Downloader{
		client:    client,
		sortedDir: sortedDir,
		outputDir: outputDir,
		logger:    logging.NewComponentLogger(logger, "download"),
		opts:      opts,
		stats:     &Stats{},
		errors:    NewErrorLog(),
	}
}

// Stats returns the run's counters so far.
func (d *Downloader) Stats() Report {
	return d.stats.Snapshot()
}

// SaveErrorLog persists accumulated failures under logDir. A no-op when
// nothing failed.
func (d *Downloader) SaveErrorLog(logDir string) error {
	if d.errors.Empty() {
		return nil
	}
	return d.errors.Save(logDir)
}

// DownloadLanguage fetches the planned books for one language. Per-chapter
// failures are counted and logged but do not abort the run; the returned
// error covers only planning and I/O faults.
func (d *Downloader) DownloadLanguage(ctx context.Context, iso string, plan []BookPlan) error {
	byCanon := make(map[canon.Canon][]BookPlan)
	for _, bp := range plan {
		c, err := BookCanon(bp.Book)
		if err != nil {
			return err
		}
		// PARTIAL groups hold books from either testament, so a PARTIAL
		// canon requirement routes every book through the PARTIAL metadata
		// instead of filtering by testament.
		if d.opts.RequiredCanon == canon.Partial {
			byCanon[canon.Partial] = append(byCanon[canon.Partial], bp)
			continue
		}
		if d.opts.RequiredCanon != "" && c != d.opts.RequiredCanon {
			d.logger.Debug("book outside required canon",
				logging.String(logging.FieldLanguage, iso),
				logging.String(logging.FieldBook, bp.Book),
				logging.String(logging.FieldCanon, string(c)),
			)
			continue
		}
		byCanon[c] = append(byCanon[c], bp)
	}

	canons := make([]canon.Canon, 0, len(byCanon))
	for c := range byCanon {
		canons = append(canons, c)
	}
	sort.Slice(canons, func(i, j int) bool { return canons[i] < canons[j] })

	for _, c := range canons {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.downloadCanon(ctx, iso, c, byCanon[c]); err != nil {
			return err
		}
	}
	return nil
}

func (d *Downloader) downloadCanon(ctx context.Context, iso string, c canon.Canon, books []BookPlan) error {
	metadata, err := sorted.LoadLanguageMetadata(d.sortedDir, iso, c)
	if err != nil {
		return err
	}
	metadata = d.filterCategory(metadata)
	if len(metadata) == 0 {
		d.logger.Warn("no matching filesets",
			logging.String(logging.FieldLanguage, iso),
			logging.String(logging.FieldCanon, string(c)),
		)
		return nil
	}

	if !d.opts.ForcePartial && allPartial(metadata) {
		d.logger.Info("skipping partial content",
			logging.String(logging.FieldLanguage, iso),
			logging.String(logging.FieldCanon, string(c)),
		)
		return nil
	}

	for _, bp := range books {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.downloadBook(ctx, iso, c, bp, metadata); err != nil {
			return err
		}
	}
	return nil
}

// filterCategory narrows metadata to the required category. The timing
// filter accepts the incomplete-timecode and legacy audio-with-timecode
// labels alongside with-timecode.
func (d *Downloader) filterCategory(metadata map[string]classify.Metadata) map[string]classify.Metadata {
	if d.opts.RequiredCategory == "" {
		return metadata
	}
	filtered := make(map[string]classify.Metadata)
	for id, meta := range metadata {
		if d.opts.RequiredCategory == classify.CategoryWithTimecode {
			switch meta.AggregateCategory {
			case classify.CategoryWithTimecode, classify.CategoryIncompleteTimecode, legacyTimingCategory:
				filtered[id] = meta
			}
			continue
		}
		if meta.AggregateCategory == d.opts.RequiredCategory {
			filtered[id] = meta
		}
	}
	return filtered
}

func allPartial(metadata map[string]classify.Metadata) bool {
	for _, meta := range metadata {
		if meta.AggregateCategory != classify.CategoryPartial {
			return false
		}
	}
	return len(metadata) > 0
}

func (d *Downloader) downloadBook(ctx context.Context, iso string, c canon.Canon, bp BookPlan, metadata map[string]classify.Metadata) error {
	versions := make(map[string][]classify.Metadata)
	for _, meta := range metadata {
		contained, err := selection.ContainsBook(meta.Fileset.Size, bp.Book, c)
		if err != nil {
			return err
		}
		if !contained {
			continue
		}
		distinct := classify.NormalizeTranslation(meta.Bible.Abbr, meta.Fileset.ID)
		versions[distinct] = append(versions[distinct], meta)
	}
	if len(versions) == 0 {
		d.logger.Warn("no filesets contain book",
			logging.String(logging.FieldLanguage, iso),
			logging.String(logging.FieldBook, bp.Book),
			logging.String(logging.FieldCanon, string(c)),
		)
		return nil
	}

	for _, distinct := range d.orderVersions(versions) {
		group := versions[distinct]
		choice, category, err := bestForVersion(group, c, bp.Book)
		if errors.Is(err, selection.ErrPriorityConflict) {
			// Catalog anomaly in one version; the rest of the run proceeds.
			d.logger.Warn("fileset priority conflict",
				logging.String(logging.FieldLanguage, iso),
				logging.String(logging.FieldBook, bp.Book),
				logging.String("translation", distinct),
				logging.Error(err),
			)
			continue
		}
		if err != nil {
			return err
		}
		if choice.Unavailable() {
			continue
		}

		d.logger.Info("downloading version",
			logging.String(logging.FieldLanguage, iso),
			logging.String(logging.FieldBook, bp.Book),
			logging.String("translation", distinct),
			logging.String(logging.FieldCategory, string(category)),
			logging.String("audio_fileset", choice.AudioFilesetID),
			logging.String("text_fileset", choice.TextFilesetID),
		)

		d.downloadChapters(ctx, chapterTarget{
			iso:      iso,
			distinct: distinct,
			canon:    c,
			category: category,
			book:     bp.Book,
			choice:   choice,
		}, bp.Chapters)
	}
	return nil
}

// orderVersions returns the version keys in download order. When filtering
// for timing, versions whose category is exactly with-timecode come first;
// the id orders everything else for determinism.
func (d *Downloader) orderVersions(versions map[string][]classify.Metadata) []string {
	keys := make([]string, 0, len(versions))
	for distinct := range versions {
		keys = append(keys, distinct)
	}
	if d.opts.RequiredCategory != classify.CategoryWithTimecode {
		sort.Strings(keys)
		return keys
	}
	exact := func(distinct string) int {
		for _, meta := range versions[distinct] {
			if meta.AggregateCategory == classify.CategoryWithTimecode {
				return 0
			}
		}
		return 1
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := exact(keys[i]), exact(keys[j])
		if a != b {
			return a < b
		}
		return keys[i] < keys[j]
	})
	return keys
}

// bestForVersion runs fileset selection over one version's metadata. The
// version's category is taken from its lexically first fileset; all members
// of a group carry the same aggregate label.
func bestForVersion(group []classify.Metadata, c canon.Canon, book string) (selection.Choice, classify.Category, error) {
	filesets := make([]fileset.Fileset, 0, len(group))
	var timingIDs []string
	category := classify.CategoryNone
	first := ""
	for _, meta := range group {
		filesets = append(filesets, fileset.Fileset{
			ID:   meta.Fileset.ID,
			Type: meta.Fileset.Type,
			Size: meta.Fileset.Size,
		})
		if meta.DownloadReady.TimingAvailable {
			timingIDs = append(timingIDs, fileset.NormalizeID(meta.Fileset.ID))
		}
		if first == "" || meta.Fileset.ID < first {
			first = meta.Fileset.ID
			category = meta.AggregateCategory
		}
	}
	choice, err := selection.BestForBook(filesets, c, book, fileset.NewTimingSet(timingIDs))
	return choice, category, err
}

type chapterTarget struct {
	iso      string
	distinct string
	canon    canon.Canon
	category classify.Category
	book     string
	choice   selection.Choice
}

// downloadChapters fans chapter fetches out over the configured worker
// count. Chapter failures are recorded, never returned.
func (d *Downloader) downloadChapters(ctx context.Context, target chapterTarget, chapters []int) {
	workers := d.opts.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(chapters) {
		workers = len(chapters)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for chapter := range jobs {
				if ctx.Err() != nil {
					continue
				}
				d.downloadChapter(ctx, target, chapter)
			}
		}()
	}
	for _, chapter := range chapters {
		jobs <- chapter
	}
	close(jobs)
	wg.Wait()
}

func (d *Downloader) downloadChapter(ctx context.Context, target chapterTarget, chapter int) {
	baseDir := filepath.Join(d.outputDir,
		strings.ToLower(string(target.canon)),
		string(target.category),
		target.iso,
		target.distinct,
		target.book,
	)

	if target.choice.AudioFilesetID != "" && d.opts.wants("audio") {
		name := fmt.Sprintf("%s_%03d_%s.mp3", target.book, chapter, target.choice.AudioFilesetID)
		d.fetchFile(ctx, target, chapter, "audio", target.choice.AudioFilesetID, filepath.Join(baseDir, name))
	}
	if target.choice.TextFilesetID != "" && d.opts.wants("text") {
		name := fmt.Sprintf("%s_%03d_%s.txt", target.book, chapter, target.choice.TextFilesetID)
		d.fetchFile(ctx, target, chapter, "text", target.choice.TextFilesetID, filepath.Join(baseDir, name))
	}
	if target.choice.TimingAvailable && target.choice.AudioFilesetID != "" && d.opts.wants("timing") {
		name := fmt.Sprintf("%s_%03d_%s_timing.json", target.book, chapter, target.choice.AudioFilesetID)
		d.fetchTiming(ctx, target, chapter, filepath.Join(baseDir, name))
	}
}

// fetchFile downloads one audio or text chapter file: resolve the media path
// through the catalog API, then fetch the media itself.
// retryOnce re-runs an API call a single time when the failure may be
// intermittent. Faults needing operator action fail immediately.
func retryOnce[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	out, err := fn(ctx)
	if err == nil || !services.Retryable(err) || ctx.Err() != nil {
		return out, err
	}
	return fn(ctx)
}

func (d *Downloader) fetchFile(ctx context.Context, target chapterTarget, chapter int, contentType, filesetID, path string) {
	if d.skipExisting(path) {
		return
	}

	mediaURL, err := retryOnce(ctx, func(ctx context.Context) (string, error) {
		return d.client.MediaPath(ctx, filesetID, target.book, chapter)
	})
	if err != nil {
		d.recordFailure(target, chapter, "download_failed", contentType, filesetID,
			fmt.Sprintf("media path lookup failed for %s: %v", filesetID, err))
		return
	}
	if mediaURL == "" {
		d.recordFailure(target, chapter, "no_"+contentType+"_available", contentType, filesetID,
			fmt.Sprintf("no %s path returned for fileset_id=%s book=%s chapter=%d", contentType, filesetID, target.book, chapter))
		return
	}

	data, err := retryOnce(ctx, func(ctx context.Context) ([]byte, error) {
		return d.client.FetchMedia(ctx, mediaURL)
	})
	if err != nil {
		d.recordFailure(target, chapter, "download_failed", contentType, filesetID,
			fmt.Sprintf("%s download failed for %s: %v", contentType, filesetID, err))
		return
	}
	d.writeFile(target, chapter, contentType, filesetID, path, data)
}

func (d *Downloader) fetchTiming(ctx context.Context, target chapterTarget, chapter int, path string) {
	filesetID := target.choice.AudioFilesetID
	if d.skipExisting(path) {
		return
	}

	raw, err := retryOnce(ctx, func(ctx context.Context) (json.RawMessage, error) {
		return d.client.Timestamps(ctx, filesetID, target.book, chapter)
	})
	if err != nil {
		d.recordFailure(target, chapter, "download_failed", "timing", filesetID,
			fmt.Sprintf("timing download failed for %s: %v", filesetID, err))
		return
	}
	if raw == nil {
		d.recordFailure(target, chapter, "no_timing_available", "timing", filesetID,
			fmt.Sprintf("no timing data returned for fileset_id=%s book=%s chapter=%d", filesetID, target.book, chapter))
		return
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, raw, "", "  "); err != nil {
		d.recordFailure(target, chapter, "save_failed", "timing", filesetID,
			fmt.Sprintf("timing data not valid JSON: %v", err))
		return
	}
	indented.WriteByte('\n')
	d.writeFile(target, chapter, "timing", filesetID, path, indented.Bytes())
}

func (d *Downloader) skipExisting(path string) bool {
	if d.opts.Force {
		return false
	}
	if _, err := os.Stat(path); err != nil {
		return false
	}
	d.stats.addExists()
	d.logger.Debug("already exists", logging.String("file", filepath.Base(path)))
	return true
}

func (d *Downloader) writeFile(target chapterTarget, chapter int, contentType, filesetID, path string, data []byte) {
	if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
		d.recordFailure(target, chapter, "save_failed", contentType, filesetID,
			fmt.Sprintf("write %s: %v", filepath.Base(path), err))
		return
	}
	d.stats.addDownloaded()
	d.logger.Info("downloaded", logging.String("file", filepath.Base(path)))
}

func (d *Downloader) recordFailure(target chapterTarget, chapter int, errorType, contentType, filesetID, details string) {
	d.errors.Add(target.iso, target.canon, target.book, chapter, errorType, contentType, filesetID, target.distinct, details)
	d.stats.addFailed()
	d.logger.Warn("chapter download failed",
		logging.String(logging.FieldLanguage, target.iso),
		logging.String(logging.FieldBook, target.book),
		logging.Int(logging.FieldChapter, chapter),
		logging.String(logging.FieldFileset, filesetID),
		logging.String("error_type", errorType),
	)
}
