package sorted

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"biblefetch/internal/canon"
	"biblefetch/internal/catalog"
	"biblefetch/internal/classify"
	"biblefetch/internal/logging"
	"biblefetch/internal/store"
)

func engSnapshot() *catalog.Snapshot {
	return &catalog.Snapshot{
		Records: []catalog.Record{{
			ISO: "eng", Language: "English", Abbr: "ENGWEB",
			Filesets: map[string][]catalog.FilesetDescriptor{
				"dbp-prod": {
					{ID: "ENGWEBN1DA", Type: "audio", Size: "NT"},
					{ID: "ENGWEBN_ET", Type: "text_plain", Size: "NT"},
				},
			},
		}},
	}
}

func TestSorterWritesMetadataTree(t *testing.T) {
	dir := t.TempDir()
	sorter := NewSorter(dir, logging.NewNop(), nil)

	summary, err := sorter.Run(context.Background(), engSnapshot())
	if err != nil {
		t.Fatal(err)
	}
	if summary.TotalLanguages != 1 || summary.TotalFilesets != 2 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.AudioFilesets != 1 || summary.TextFilesets != 1 {
		t.Fatalf("fileset counts = %+v", summary)
	}
	if summary.SyncablePairs != 1 {
		t.Fatalf("syncable pairs = %d", summary.SyncablePairs)
	}

	loaded, err := LoadLanguageMetadata(dir, "eng", "")
	if err != nil {
		t.Fatal(err)
	}
	meta, ok := loaded["ENGWEBN1DA"]
	if !ok {
		t.Fatalf("audio metadata missing: %v", loaded)
	}
	if meta.AggregateCategory != classify.CategorySyncable {
		t.Fatalf("category = %q", meta.AggregateCategory)
	}

	for _, name := range []string{"summary.json", "exclude_download.json"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not written: %v", name, err)
		}
	}
}

func TestSorterSplitsFullText(t *testing.T) {
	dir := t.TempDir()
	snapshot := &catalog.Snapshot{
		Records: []catalog.Record{{
			ISO: "eng", Abbr: "ENGESV",
			Filesets: map[string][]catalog.FilesetDescriptor{
				"dbp-prod": {{ID: "ENGESVC_ET", Type: "text_plain", Size: "C"}},
			},
		}},
	}

	if _, err := NewSorter(dir, logging.NewNop(), nil).Run(context.Background(), snapshot); err != nil {
		t.Fatal(err)
	}

	for _, sub := range []string{"ENGESVC_ET-nt", "ENGESVC_ET-ot"} {
		if _, err := os.Stat(filepath.Join(dir, "eng", sub, "metadata.json")); err != nil {
			t.Fatalf("fan-out directory %s missing: %v", sub, err)
		}
	}

	ntOnly, err := LoadLanguageMetadata(dir, "eng", canon.NT)
	if err != nil {
		t.Fatal(err)
	}
	if len(ntOnly) != 1 || ntOnly["ENGESVC_ET"].Canon != canon.NT {
		t.Fatalf("canon filter failed: %v", ntOnly)
	}
}

func TestSorterTracksExclusions(t *testing.T) {
	dir := t.TempDir()
	snapshot := &catalog.Snapshot{
		Records: []catalog.Record{{
			ISO: "spa", Abbr: "SPAXXX",
			Filesets: map[string][]catalog.FilesetDescriptor{
				"dbp-prod": {
					{ID: "SPAXXXP1SA", Type: "audio_drama_stream", Size: "P"},
					{ID: "SPAXXXS_ET", Type: "text_story", Size: "S"},
				},
			},
		}},
	}

	if _, err := NewSorter(dir, logging.NewNop(), nil).Run(context.Background(), snapshot); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "exclude_download.json"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"SA suffix", "Partial content", "Video/Story"} {
		if !strings.Contains(text, want) {
			t.Fatalf("exclusion report missing %q: %s", want, text)
		}
	}
}

func TestSorterPersistsLedger(t *testing.T) {
	dir := t.TempDir()
	ledger, err := store.Open(filepath.Join(dir, "ledger.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer ledger.Close()

	sorter := NewSorter(filepath.Join(dir, "sorted"), logging.NewNop(), ledger)
	if _, err := sorter.Run(context.Background(), engSnapshot()); err != nil {
		t.Fatal(err)
	}

	rows, err := ledger.ByLanguage(context.Background(), "eng")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(rows))
	}
	row := rows[0]
	if row.Translation != "ENGWEB" || row.Canon != "NT" {
		t.Fatalf("row group = %+v", row)
	}
	if row.Category != classify.CategorySyncable {
		t.Fatalf("row category = %q", row.Category)
	}
	if row.AudioFileset != "ENGWEBN1DA" || row.TextFileset != "ENGWEBN_ET" {
		t.Fatalf("row filesets = %+v", row)
	}
	if row.RunID == "" {
		t.Fatal("run id not stamped")
	}
}
