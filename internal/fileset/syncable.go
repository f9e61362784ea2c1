package fileset

import "sort"

// SyncablePair associates one audio fileset with the text filesets it can be
// time-aligned against. Pairs exist only for audio without timing data; they
// are recomputed per language on demand, never persisted.
type SyncablePair struct {
	AudioFilesetID string   `json:"audio_fileset_id"`
	TextFilesetIDs []string `json:"text_fileset_id"`
}

// syncPrefixLen caps the prefix comparison. Translation-family prefixes run
// 6-7 characters; shorter text ids compare at their own length so abbreviated
// editions still match.
const syncPrefixLen = 7

// MatchTexts returns the text fileset ids whose prefix matches the audio id,
// sorted lexicographically. Audio ids shorter than six characters carry no
// translation prefix and match nothing.
func MatchTexts(audioID string, textIDs []string) []string {
	if len(audioID) < 6 {
		return nil
	}
	var matches []string
	for _, textID := range textIDs {
		k := syncPrefixLen
		if len(textID) < k {
			k = len(textID)
		}
		if len(audioID) >= k && audioID[:k] == textID[:k] {
			matches = append(matches, textID)
		}
	}
	sort.Strings(matches)
	return matches
}

// SyncablePairs computes the syncable pairs for one language. Audio whose
// normalized id is in the timing set is excluded first, dramatized duplicates
// are filtered next, and the survivors are prefix-matched against the
// language's text ids. Audio with zero matching texts is omitted.
func SyncablePairs(audioIDs, textIDs []string, timing TimingSet) []SyncablePair {
	withoutTiming := make([]string, 0, len(audioIDs))
	for _, id := range audioIDs {
		if timing.Contains(NormalizeID(id)) {
			continue
		}
		withoutTiming = append(withoutTiming, id)
	}

	var pairs []SyncablePair
	for _, audioID := range FilterDramatized(withoutTiming) {
		matches := MatchTexts(audioID, textIDs)
		if len(matches) == 0 {
			continue
		}
		pairs = append(pairs, SyncablePair{
			AudioFilesetID: audioID,
			TextFilesetIDs: matches,
		})
	}
	return pairs
}

// TimingSet is the externally supplied set of normalized fileset identifiers
// known to have verse-level timing data.
type TimingSet map[string]struct{}

// NewTimingSet builds a TimingSet from already-normalized identifiers.
func NewTimingSet(ids []string) TimingSet {
	set := make(TimingSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Contains reports whether the normalized id has timing data.
func (s TimingSet) Contains(normalizedID string) bool {
	_, ok := s[normalizedID]
	return ok
}
