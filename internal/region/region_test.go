package region

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleConfig = `# Distribution regions

West Africa
hau, yor
eng
@trade: hau
@literacy: eng, hau

East Africa: Coastal
swh, eng
@regional: swh
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "regions.conf")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseConfig(t *testing.T) {
	regions, err := ParseConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	if len(regions) != 2 {
		t.Fatalf("regions = %+v", regions)
	}

	west := regions[0]
	if west.Name != "West Africa" {
		t.Fatalf("name = %q", west.Name)
	}
	if !reflect.DeepEqual(west.Languages, []string{"hau", "yor", "eng"}) {
		t.Fatalf("languages = %v", west.Languages)
	}
	if !reflect.DeepEqual(west.Trade, []string{"hau"}) || !reflect.DeepEqual(west.Literacy, []string{"eng", "hau"}) {
		t.Fatalf("metadata = %+v", west)
	}

	east := regions[1]
	if east.ID() != "East_Africa_Coastal" {
		t.Fatalf("id = %q", east.ID())
	}
	if !reflect.DeepEqual(east.Regional, []string{"swh"}) {
		t.Fatalf("regional = %v", east.Regional)
	}
}

func TestParseConfigMissingFile(t *testing.T) {
	regions, err := ParseConfig(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatal(err)
	}
	if regions != nil {
		t.Fatalf("regions = %v", regions)
	}
}

func TestLanguageInMultipleRegions(t *testing.T) {
	regions, err := ParseConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}
	count := 0
	for _, r := range regions {
		for _, iso := range r.Languages {
			if iso == "eng" {
				count++
			}
		}
	}
	if count != 2 {
		t.Fatalf("eng appears in %d regions, want 2", count)
	}
}

func TestWriteMetadata(t *testing.T) {
	regions, err := ParseConfig(writeConfig(t, sampleConfig))
	if err != nil {
		t.Fatal(err)
	}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "regions.json")
	zipPath := filepath.Join(dir, "regions.zip")
	if err := WriteMetadata(regions, jsonPath, zipPath); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var metadata map[string]MetadataEntry
	if err := json.Unmarshal(data, &metadata); err != nil {
		t.Fatal(err)
	}
	entry, ok := metadata["West_Africa"]
	if !ok {
		t.Fatalf("metadata = %v", metadata)
	}
	if !reflect.DeepEqual(entry.Languages, []string{"hau", "yor", "eng"}) {
		t.Fatalf("entry = %+v", entry)
	}

	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	if len(zr.File) != 1 || zr.File[0].Name != "regions.json" {
		t.Fatalf("zip entries = %v", zr.File)
	}
}

func TestArchiveAndFilterZip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "workspace")
	files := map[string]string{
		"nt/syncable/eng/ENGWEB/data.json":  "eng-data",
		"nt/syncable/swh/SWHONE/data.json":  "swh-data",
		"ot/text-only/hau/HAUCLV/data.json": "hau-data",
		"failed/eng/data.json":              "failed",
		"summary.json":                      "{}",
	}
	for rel, content := range files {
		path := filepath.Join(src, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	include := func(rel string) bool {
		switch {
		case rel == "summary.json":
			return true
		default:
			top, _, _ := strings.Cut(rel, "/")
			return top == "nt" || top == "ot"
		}
	}
	allZip := filepath.Join(dir, "ALL-langs-data.zip")
	count, err := Archive(src, allZip, include)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Fatalf("archived %d files, want 4", count)
	}

	regionZip := filepath.Join(dir, "West_Africa.zip")
	isos := map[string]struct{}{"eng": {}, "hau": {}}
	copied, err := FilterZip(allZip, regionZip, isos, map[string][]byte{"summary.json": []byte(`{"region":true}`)})
	if err != nil {
		t.Fatal(err)
	}
	if copied != 2 {
		t.Fatalf("copied %d entries, want 2", copied)
	}

	zr, err := zip.OpenReader(regionZip)
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	names := make(map[string]bool)
	for _, f := range zr.File {
		names[f.Name] = true
	}
	for _, want := range []string{"summary.json", "nt/syncable/eng/ENGWEB/data.json", "ot/text-only/hau/HAUCLV/data.json"} {
		if !names[want] {
			t.Errorf("region zip missing %s (have %v)", want, names)
		}
	}
	if names["nt/syncable/swh/SWHONE/data.json"] {
		t.Error("region zip includes out-of-region language")
	}
}

func TestArchiveReproducible(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	if err := os.MkdirAll(filepath.Join(src, "nt"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(src, "nt", "a.txt"), []byte("same"), 0o644); err != nil {
		t.Fatal(err)
	}

	first := filepath.Join(dir, "first.zip")
	second := filepath.Join(dir, "second.zip")
	if _, err := Archive(src, first, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := Archive(src, second, nil); err != nil {
		t.Fatal(err)
	}

	a, err := os.ReadFile(first)
	if err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(second)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical content produced different archives")
	}
}
