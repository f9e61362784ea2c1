package bookset

import (
	"fmt"
	"os"
	"sort"

	"biblefetch/internal/canon"
	"biblefetch/internal/classify"
	"biblefetch/internal/services"
	"biblefetch/internal/sorted"
)

// Set names one batch-download audience.
type Set string

const (
	All      Set = "ALL"
	TimingNT Set = "TIMING_NT"
	TimingOT Set = "TIMING_OT"
	SyncNT   Set = "SYNC_NT"
	SyncOT   Set = "SYNC_OT"
	Partial  Set = "PARTIAL"
)

// Sets returns every valid set name in display order.
func Sets() []Set {
	return []Set{All, TimingNT, TimingOT, SyncNT, SyncOT, Partial}
}

// Parse validates a set name.
func Parse(name string) (Set, error) {
	set := Set(name)
	for _, valid := range Sets() {
		if set == valid {
			return set, nil
		}
	}
	return "", services.Wrap(services.ErrValidation, "bookset", "parse", fmt.Sprintf("unknown book set %q", name), nil)
}

// RequiredCategory is the category constraint the set's batch download
// applies; empty means unconstrained.
func (s Set) RequiredCategory() classify.Category {
	switch s {
	case TimingNT, TimingOT:
		return classify.CategoryWithTimecode
	case SyncNT, SyncOT:
		return classify.CategorySyncable
	case Partial:
		return classify.CategoryPartial
	}
	return ""
}

// RequiredCanon is the canon constraint the set's batch download applies;
// empty means unconstrained.
func (s Set) RequiredCanon() canon.Canon {
	switch s {
	case TimingNT, SyncNT:
		return canon.NT
	case TimingOT, SyncOT:
		return canon.OT
	case Partial:
		return canon.Partial
	}
	return ""
}

// ForcePartial reports whether the set implies downloading partial content.
func (s Set) ForcePartial() bool {
	return s == Partial
}

// timingCategory matches both the current and legacy labels for groups with
// timing data.
func timingCategory(c classify.Category) bool {
	return c == classify.CategoryWithTimecode ||
		c == classify.CategoryIncompleteTimecode ||
		c == "audio-with-timecode"
}

// Languages scans a sorted tree and returns the ISO codes matching the set,
// sorted. ALL admits any language with NT or OT content, excluding languages
// holding only partial book-sets.
func Languages(sortedDir string, set Set) ([]string, error) {
	entries, err := os.ReadDir(sortedDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, services.Wrap(services.ErrNotFound, "bookset", "languages", fmt.Sprintf("sorted tree %s not found", sortedDir), err)
		}
		return nil, fmt.Errorf("read sorted tree: %w", err)
	}

	var isos []string
	for _, entry := range entries {
		if !entry.IsDir() || len(entry.Name()) != 3 {
			continue
		}
		isos = append(isos, entry.Name())
	}
	sort.Strings(isos)

	var matched []string
	for _, iso := range isos {
		ok, err := matches(sortedDir, iso, set)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, iso)
		}
	}
	return matched, nil
}

func matches(sortedDir, iso string, set Set) (bool, error) {
	switch set {
	case All:
		for _, c := range []canon.Canon{canon.NT, canon.OT} {
			metadata, err := sorted.LoadLanguageMetadata(sortedDir, iso, c)
			if err != nil {
				return false, err
			}
			if len(metadata) > 0 {
				return true, nil
			}
		}
		return false, nil

	case TimingNT, TimingOT:
		metadata, err := sorted.LoadLanguageMetadata(sortedDir, iso, set.RequiredCanon())
		if err != nil {
			return false, err
		}
		for _, meta := range metadata {
			if timingCategory(meta.AggregateCategory) {
				return true, nil
			}
		}
		return false, nil

	case SyncNT, SyncOT:
		metadata, err := sorted.LoadLanguageMetadata(sortedDir, iso, set.RequiredCanon())
		if err != nil {
			return false, err
		}
		for _, meta := range metadata {
			if meta.AggregateCategory == classify.CategorySyncable {
				return true, nil
			}
		}
		return false, nil

	case Partial:
		metadata, err := sorted.LoadLanguageMetadata(sortedDir, iso, canon.Partial)
		if err != nil {
			return false, err
		}
		return len(metadata) > 0, nil
	}
	return false, nil
}
