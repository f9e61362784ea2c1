package language

import "strings"

type entry struct {
	code2   string   // ISO 639-1 (2-letter)
	code3   string   // ISO 639-3 primary (3-letter)
	alt3    string   // ISO 639-2 bibliographic alternate (e.g. "fre" vs "fra")
	display string   // Human-readable name
	words   []string // Full word forms (e.g. "english")
}

var languages = []entry{
	{"en", "eng", "", "English", []string{"english"}},
	{"es", "spa", "", "Spanish", []string{"spanish"}},
	{"fr", "fra", "fre", "French", []string{"french"}},
	{"de", "deu", "ger", "German", []string{"german"}},
	{"it", "ita", "", "Italian", []string{"italian"}},
	{"pt", "por", "", "Portuguese", []string{"portuguese"}},
	{"ja", "jpn", "", "Japanese", []string{"japanese"}},
	{"ko", "kor", "", "Korean", []string{"korean"}},
	{"zh", "zho", "chi", "Chinese", []string{"chinese", "mandarin"}},
	{"ru", "rus", "", "Russian", []string{"russian"}},
	{"ar", "arb", "ara", "Arabic", []string{"arabic"}},
	{"hi", "hin", "", "Hindi", []string{"hindi"}},
	{"nl", "nld", "dut", "Dutch", []string{"dutch"}},
	{"pl", "pol", "", "Polish", []string{"polish"}},
	{"sw", "swh", "swa", "Swahili", []string{"swahili"}},
	{"am", "amh", "", "Amharic", []string{"amharic"}},
	{"id", "ind", "", "Indonesian", []string{"indonesian"}},
	{"tl", "tgl", "", "Tagalog", []string{"tagalog"}},
	{"vi", "vie", "", "Vietnamese", []string{"vietnamese"}},
	{"th", "tha", "", "Thai", []string{"thai"}},
	{"ur", "urd", "", "Urdu", []string{"urdu"}},
	{"fa", "pes", "fas", "Persian", []string{"persian", "farsi"}},
	{"ha", "hau", "", "Hausa", []string{"hausa"}},
	{"yo", "yor", "", "Yoruba", []string{"yoruba"}},
}

// Index maps built at init time.
var (
	byCode2 map[string]*entry
	byCode3 map[string]*entry
	byWord  map[string]*entry
)

func init() {
	byCode2 = make(map[string]*entry, len(languages))
	byCode3 = make(map[string]*entry, len(languages)*2)
	byWord = make(map[string]*entry, len(languages))
	for i := range languages {
		e := &languages[i]
		byCode2[e.code2] = e
		byCode3[e.code3] = e
		if e.alt3 != "" {
			byCode3[e.alt3] = e
		}
		for _, w := range e.words {
			byWord[w] = e
		}
	}
}

func lookup(code string) *entry {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return nil
	}
	if e, ok := byCode3[code]; ok {
		return e
	}
	if e, ok := byCode2[code]; ok {
		return e
	}
	if e, ok := byWord[code]; ok {
		return e
	}
	return nil
}

// ToISO3 converts any recognized language code or word to ISO 639-3.
// Unrecognized 3-letter codes pass through unchanged since the catalog
// covers far more languages than this table; anything else returns "".
func ToISO3(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code3
	}
	if len(code) == 3 {
		return code
	}
	return ""
}

// ToISO2 converts any recognized language code to ISO 639-1 (2-letter).
// Returns empty string for unrecognized input. If the input is already a
// 2-letter code (even if unknown), it passes through.
func ToISO2(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if e := lookup(code); e != nil {
		return e.code2
	}
	if len(code) == 2 {
		return code
	}
	return ""
}

// DisplayName returns a human-readable language name for any recognized code.
// Returns "Unknown" for empty input, or the uppercased code for unrecognized input.
func DisplayName(code string) string {
	if strings.TrimSpace(code) == "" {
		return "Unknown"
	}
	if e := lookup(code); e != nil {
		return e.display
	}
	return strings.ToUpper(strings.TrimSpace(code))
}

// NormalizeList deduplicates and normalizes a list of language identifiers
// to ISO 639-3, dropping anything unrecognized.
func NormalizeList(codes []string) []string {
	if len(codes) == 0 {
		return nil
	}
	normalized := make([]string, 0, len(codes))
	seen := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		mapped := ToISO3(code)
		if mapped == "" {
			continue
		}
		if _, ok := seen[mapped]; ok {
			continue
		}
		seen[mapped] = struct{}{}
		normalized = append(normalized, mapped)
	}
	return normalized
}
