package fileset

import (
	"reflect"
	"testing"
)

func TestFilterDramatizedDropsDuplicateDramatization(t *testing.T) {
	t.Parallel()

	got := FilterDramatized([]string{"ENGWEBN1DA", "ENGWEBN2DA"})
	want := []string{"ENGWEBN1DA"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterDramatized = %v, want %v", got, want)
	}
}

func TestFilterDramatizedKeepsLoneDramatized(t *testing.T) {
	t.Parallel()

	got := FilterDramatized([]string{"ENGWEBN2DA"})
	want := []string{"ENGWEBN2DA"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterDramatized = %v, want %v", got, want)
	}
}

func TestFilterDramatizedSeparateBaseKeys(t *testing.T) {
	t.Parallel()

	// Different suffixes form different base keys, so the 2-variant survives.
	got := FilterDramatized([]string{"ENGWEBN1DA", "ENGWEBN2DB"})
	want := []string{"ENGWEBN1DA", "ENGWEBN2DB"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterDramatized = %v, want %v", got, want)
	}
}

func TestFilterDramatizedNeverRemovesNarration(t *testing.T) {
	t.Parallel()

	ids := []string{"AAAWBTN1DA", "AAAWBTN2DA", "AAAWBTO1DA", "AAAWBTO2DA", "BBBWBTN2DA"}
	got := FilterDramatized(ids)
	for _, id := range ids {
		if !IsDramatized(id) {
			found := false
			for _, kept := range got {
				if kept == id {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("narration id %s was removed: %v", id, got)
			}
		}
	}
	want := []string{"AAAWBTN1DA", "AAAWBTO1DA", "BBBWBTN2DA"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterDramatized = %v, want %v", got, want)
	}
}

func TestFilterDramatizedShortIDsPassThrough(t *testing.T) {
	t.Parallel()

	got := FilterDramatized([]string{"AB", "X"})
	want := []string{"AB", "X"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("FilterDramatized = %v, want %v", got, want)
	}
}

func TestIsDramatized(t *testing.T) {
	t.Parallel()

	if !IsDramatized("ENGWEBN2DA") {
		t.Error("ENGWEBN2DA should be dramatized")
	}
	if IsDramatized("ENGWEBN1DA") {
		t.Error("ENGWEBN1DA should not be dramatized")
	}
	if IsDramatized("2D") {
		t.Error("ids shorter than 3 carry no dramatization digit")
	}
}
