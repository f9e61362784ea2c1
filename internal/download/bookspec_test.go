package download

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"biblefetch/internal/canon"
	"biblefetch/internal/services"
)

func TestParseChapterSpec(t *testing.T) {
	tests := []struct {
		spec string
		want []int
	}{
		{"1", []int{1}},
		{"1-5", []int{1, 2, 3, 4, 5}},
		{"1,3,5", []int{1, 3, 5}},
		{"5,1-3,2", []int{1, 2, 3, 5}},
	}
	for _, tt := range tests {
		got, err := ParseChapterSpec(tt.spec)
		if err != nil {
			t.Fatalf("ParseChapterSpec(%q): %v", tt.spec, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseChapterSpec(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}

	for _, bad := range []string{"", "x", "3-1", "1-x"} {
		if _, err := ParseChapterSpec(bad); !errors.Is(err, services.ErrValidation) {
			t.Errorf("ParseChapterSpec(%q) error = %v, want validation failure", bad, err)
		}
	}
}

func TestSplitBookSpecs(t *testing.T) {
	tests := []struct {
		spec string
		want []string
	}{
		{"GEN", []string{"GEN"}},
		{"GEN,MAT", []string{"GEN", "MAT"}},
		{"GEN:1-3,MAT:1-5", []string{"GEN:1-3", "MAT:1-5"}},
		{"GEN:1,2,3 LUK:1,2", []string{"GEN:1,2,3", "LUK:1,2"}},
	}
	for _, tt := range tests {
		if got := SplitBookSpecs(tt.spec); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("SplitBookSpecs(%q) = %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestExpandBookSpecWholeBook(t *testing.T) {
	plans, err := ExpandBookSpec("jud", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 1 || plans[0].Book != "JUD" {
		t.Fatalf("plans = %v", plans)
	}
	if !reflect.DeepEqual(plans[0].Chapters, []int{1}) {
		t.Fatalf("JUD chapters = %v", plans[0].Chapters)
	}
}

func TestExpandBookSpecStorySetShadowsBook(t *testing.T) {
	sets := map[string][]BookPlan{
		"Test": {{Book: "PSA", Chapters: []int{117}}, {Book: "REV", Chapters: []int{15}}},
	}
	plans, err := ExpandBookSpec("Test", sets)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 || plans[0].Book != "PSA" || plans[1].Book != "REV" {
		t.Fatalf("plans = %v", plans)
	}
}

func TestExpandBooksSpec(t *testing.T) {
	plans, err := ExpandBooksSpec("GEN:1-3,MAT:1-5", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Fatalf("plans = %v", plans)
	}
	if plans[0].Book != "GEN" || len(plans[0].Chapters) != 3 {
		t.Fatalf("GEN plan = %v", plans[0])
	}
	if plans[1].Book != "MAT" || len(plans[1].Chapters) != 5 {
		t.Fatalf("MAT plan = %v", plans[1])
	}

	if _, err := ExpandBooksSpec("NOPE", nil); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("unknown book error = %v", err)
	}
}

func TestBookCanon(t *testing.T) {
	tests := []struct {
		book string
		want canon.Canon
	}{
		{"GEN", canon.OT},
		{"MAL", canon.OT},
		{"MAT", canon.NT},
		{"REV", canon.NT},
	}
	for _, tt := range tests {
		got, err := BookCanon(tt.book)
		if err != nil {
			t.Fatalf("BookCanon(%q): %v", tt.book, err)
		}
		if got != tt.want {
			t.Errorf("BookCanon(%q) = %q, want %q", tt.book, got, tt.want)
		}
	}

	var unknown *canon.ErrUnknownBook
	if _, err := BookCanon("XYZ"); !errors.As(err, &unknown) {
		t.Fatalf("BookCanon(XYZ) error = %v", err)
	}
}

func TestLoadStorySets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "story-set.conf")
	conf := `# sample sets
Test
PSA:117, REV:15

Intro
GEN:1-2, JHN:1
`
	if err := os.WriteFile(path, []byte(conf), 0o644); err != nil {
		t.Fatal(err)
	}

	sets, err := LoadStorySets(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 2 {
		t.Fatalf("sets = %v", sets)
	}
	test := sets["Test"]
	if len(test) != 2 || test[0].Book != "PSA" || test[1].Book != "REV" {
		t.Fatalf("Test set = %v", test)
	}
	intro := sets["Intro"]
	if len(intro) != 2 || !reflect.DeepEqual(intro[0].Chapters, []int{1, 2}) {
		t.Fatalf("Intro set = %v", intro)
	}
}

func TestLoadStorySetsMissingFile(t *testing.T) {
	sets, err := LoadStorySets(filepath.Join(t.TempDir(), "absent.conf"))
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 0 {
		t.Fatalf("sets = %v", sets)
	}
}

func TestLoadTemplateReferences(t *testing.T) {
	dir := t.TempDir()
	templateDir := filepath.Join(dir, "obs")
	if err := os.MkdirAll(templateDir, 0o755); err != nil {
		t.Fatal(err)
	}
	page := "Intro text <<<REF: GEN 1:1-2>>> more <<<REF: GEN 2:4>>> and <<<REF: LUK 1:5-7>>>\n"
	if err := os.WriteFile(filepath.Join(templateDir, "01.md"), []byte(page), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(templateDir, "02.md"), []byte("<<<REF: GEN 1:10,22>>>\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	plans, err := LoadTemplateReferences(dir, "obs")
	if err != nil {
		t.Fatal(err)
	}
	if len(plans) != 2 {
		t.Fatalf("plans = %v", plans)
	}
	if plans[0].Book != "GEN" || !reflect.DeepEqual(plans[0].Chapters, []int{1, 2}) {
		t.Fatalf("GEN plan = %v", plans[0])
	}
	if plans[1].Book != "LUK" || !reflect.DeepEqual(plans[1].Chapters, []int{1}) {
		t.Fatalf("LUK plan = %v", plans[1])
	}

	if got := BooksSpec(plans); got != "GEN:1,2 LUK:1" {
		t.Fatalf("BooksSpec = %q", got)
	}
}

func TestLoadTemplateReferencesMissingTemplate(t *testing.T) {
	if _, err := LoadTemplateReferences(t.TempDir(), "absent"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("error = %v", err)
	}
}
