package canon

import (
	"errors"
	"testing"
)

func TestResolveStructuralMarker(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		filesetID string
		size      string
		want      Canon
	}{
		{"marker O", "ENGWEBO1DA", "", OT},
		{"marker N", "ENGWEBN1DA", "", NT},
		{"marker C", "ENGWEBC_ET", "", Full},
		{"marker P", "ENGWEBP1DA", "", Partial},
		{"marker S", "ENGWEBS1DA", "", Story},
		{"short id no marker", "ENGWEB", "", Various},
		{"no signal at all", "ABC", "", Various},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Resolve(tc.filesetID, tc.size); got != tc.want {
				t.Fatalf("Resolve(%q, %q) = %s, want %s", tc.filesetID, tc.size, got, tc.want)
			}
		})
	}
}

func TestResolveSizeReconciliation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		filesetID string
		size      string
		want      Canon
	}{
		{"size C forces full", "ENGWEBN1DA", "C", Full},
		{"size NTOTP forces full", "ENGWEBN1DA", "NTOTP", Full},
		{"size NT fills missing signal", "ENGWEB", "NT", NT},
		{"size OT fills missing signal", "ENGWEB", "OT", OT},
		{"size NTP keeps structural OT", "XXXAAAO1DA", "NTP", OT},
		{"size OTP keeps structural NT", "XXXAAAN1DA", "OTP", NT},
		{"size NT keeps structural full", "ENGWEBC_ET", "NT", Full},
		{"size never overrides partial", "ENGWEBP1DA", "C", Partial},
		{"size OT never overrides partial", "ENGWEBP1DA", "OT", Partial},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Resolve(tc.filesetID, tc.size); got != tc.want {
				t.Fatalf("Resolve(%q, %q) = %s, want %s", tc.filesetID, tc.size, got, tc.want)
			}
		})
	}
}

func TestExpand(t *testing.T) {
	t.Parallel()

	full := Expand(Full)
	if len(full) != 2 || full[0] != NT || full[1] != OT {
		t.Fatalf("Expand(Full) = %v, want [NT OT]", full)
	}
	for _, c := range []Canon{NT, OT, Partial, Story, Various} {
		got := Expand(c)
		if len(got) != 1 || got[0] != c {
			t.Fatalf("Expand(%s) = %v, want [%s]", c, got, c)
		}
	}
}

func TestBookTestament(t *testing.T) {
	t.Parallel()

	if ts, err := BookTestament("GEN"); err != nil || ts != OldTestament {
		t.Fatalf("BookTestament(GEN) = %v, %v", ts, err)
	}
	if ts, err := BookTestament("rev"); err != nil || ts != NewTestament {
		t.Fatalf("BookTestament(rev) = %v, %v", ts, err)
	}

	_, err := BookTestament("XYZ")
	var unknown *ErrUnknownBook
	if !errors.As(err, &unknown) {
		t.Fatalf("BookTestament(XYZ) error = %v, want ErrUnknownBook", err)
	}
	if unknown.Book != "XYZ" {
		t.Fatalf("unknown book = %q, want XYZ", unknown.Book)
	}
}

func TestChapters(t *testing.T) {
	t.Parallel()

	cases := map[string]int{"GEN": 50, "PSA": 150, "OBA": 1, "MAT": 28, "REV": 22, "JUD": 1}
	for book, want := range cases {
		got, err := Chapters(book)
		if err != nil {
			t.Fatalf("Chapters(%s): %v", book, err)
		}
		if got != want {
			t.Fatalf("Chapters(%s) = %d, want %d", book, got, want)
		}
	}
}

func TestBooksCoversCanon(t *testing.T) {
	t.Parallel()

	books := Books()
	if len(books) != 66 {
		t.Fatalf("expected 66 books, got %d", len(books))
	}
	seen := make(map[string]struct{}, len(books))
	for _, b := range books {
		if _, dup := seen[b]; dup {
			t.Fatalf("duplicate book %s", b)
		}
		seen[b] = struct{}{}
	}
	// OT half precedes NT half.
	for i, b := range books {
		ts, err := BookTestament(b)
		if err != nil {
			t.Fatalf("BookTestament(%s): %v", b, err)
		}
		if i < 39 && ts != OldTestament {
			t.Fatalf("book %s at %d should be Old Testament", b, i)
		}
		if i >= 39 && ts != NewTestament {
			t.Fatalf("book %s at %d should be New Testament", b, i)
		}
	}
}
