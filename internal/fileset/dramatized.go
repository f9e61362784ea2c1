package fileset

// Audio fileset identifiers carry a dramatization digit third from the end:
// 1 is a single-narrator recording, 2 is a multi-voice dramatized rendition.
const (
	narrationDigit  = '1'
	dramatizedDigit = '2'
)

// IsDramatized reports whether an audio fileset id names a dramatized
// recording. Identifiers too short to carry the digit are treated as plain.
func IsDramatized(id string) bool {
	return len(id) >= 3 && id[len(id)-3] == dramatizedDigit
}

// FilterDramatized removes dramatized duplicates from a language's audio
// fileset ids. Ids are grouped by a base key formed by removing the
// dramatization digit; within a group that holds both a 1-variant and a
// 2-variant, every 2-variant is dropped. Groups without that overlap pass
// through unchanged, as do ids too short to be groupable. Input order is
// preserved.
func FilterDramatized(ids []string) []string {
	groups := make(map[string][]string, len(ids))
	order := make([]string, 0, len(ids))

	for _, id := range ids {
		key := id
		if len(id) >= 3 {
			key = id[:len(id)-3] + id[len(id)-2:]
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], id)
	}

	kept := make([]string, 0, len(ids))
	for _, key := range order {
		group := groups[key]
		hasNarration := false
		hasDramatized := false
		for _, id := range group {
			if len(id) < 3 {
				continue
			}
			switch id[len(id)-3] {
			case narrationDigit:
				hasNarration = true
			case dramatizedDigit:
				hasDramatized = true
			}
		}
		for _, id := range group {
			if hasNarration && hasDramatized && IsDramatized(id) {
				continue
			}
			kept = append(kept, id)
		}
	}
	return kept
}
