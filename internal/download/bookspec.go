package download

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"biblefetch/internal/canon"
	"biblefetch/internal/services"
)

// BookPlan is one book with the chapters to fetch, ascending and distinct.
type BookPlan struct {
	Book     string
	Chapters []int
}

// ParseChapterSpec parses a chapter list like "1", "1-5" or "1,3,5-7" into a
// sorted, de-duplicated slice of chapter numbers.
func ParseChapterSpec(spec string) ([]int, error) {
	seen := make(map[int]struct{})
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if start, end, ok := strings.Cut(part, "-"); ok {
			lo, err := strconv.Atoi(strings.TrimSpace(start))
			if err != nil {
				return nil, services.Wrap(services.ErrValidation, "download", "parse_chapters", fmt.Sprintf("bad chapter range %q", part), err)
			}
			hi, err := strconv.Atoi(strings.TrimSpace(end))
			if err != nil {
				return nil, services.Wrap(services.ErrValidation, "download", "parse_chapters", fmt.Sprintf("bad chapter range %q", part), err)
			}
			if hi < lo {
				return nil, services.Wrap(services.ErrValidation, "download", "parse_chapters", fmt.Sprintf("inverted chapter range %q", part), nil)
			}
			for ch := lo; ch <= hi; ch++ {
				seen[ch] = struct{}{}
			}
			continue
		}
		ch, err := strconv.Atoi(part)
		if err != nil {
			return nil, services.Wrap(services.ErrValidation, "download", "parse_chapters", fmt.Sprintf("bad chapter %q", part), err)
		}
		seen[ch] = struct{}{}
	}
	if len(seen) == 0 {
		return nil, services.Wrap(services.ErrValidation, "download", "parse_chapters", fmt.Sprintf("empty chapter spec %q", spec), nil)
	}
	chapters := make([]int, 0, len(seen))
	for ch := range seen {
		chapters = append(chapters, ch)
	}
	sort.Ints(chapters)
	return chapters, nil
}

// SplitBookSpecs splits a combined books argument into individual specs.
// Template-derived arguments separate books with spaces and chapters with
// commas ("GEN:1,2 LUK:1"); manual arguments separate books with commas
// ("GEN:1-3,MAT" or "GEN,MAT").
func SplitBookSpecs(booksSpec string) []string {
	var parts []string
	if strings.Contains(booksSpec, " ") && strings.Contains(booksSpec, ":") {
		parts = strings.Fields(booksSpec)
	} else {
		parts = strings.Split(booksSpec, ",")
	}
	specs := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			specs = append(specs, part)
		}
	}
	return specs
}

// ExpandBookSpec expands one spec into book plans. The spec is a story set
// name, a bare book code ("GEN", all chapters), or a book with a chapter list
// ("GEN:1-3"). Story set names are matched before book parsing so a set may
// shadow a book code.
func ExpandBookSpec(spec string, storySets map[string][]BookPlan) ([]BookPlan, error) {
	if plans, ok := storySets[spec]; ok {
		return plans, nil
	}

	if book, chapterSpec, ok := strings.Cut(spec, ":"); ok {
		book = strings.ToUpper(strings.TrimSpace(book))
		chapters, err := ParseChapterSpec(chapterSpec)
		if err != nil {
			return nil, err
		}
		return []BookPlan{{Book: book, Chapters: chapters}}, nil
	}

	book := strings.ToUpper(strings.TrimSpace(spec))
	count, err := canon.Chapters(book)
	if err != nil {
		return nil, services.Wrap(services.ErrValidation, "download", "expand_books", fmt.Sprintf("unknown book or story set %q", spec), err)
	}
	chapters := make([]int, count)
	for i := range chapters {
		chapters[i] = i + 1
	}
	return []BookPlan{{Book: book, Chapters: chapters}}, nil
}

// ExpandBooksSpec expands a combined books argument into the full plan.
func ExpandBooksSpec(booksSpec string, storySets map[string][]BookPlan) ([]BookPlan, error) {
	var plans []BookPlan
	for _, spec := range SplitBookSpecs(booksSpec) {
		expanded, err := ExpandBookSpec(spec, storySets)
		if err != nil {
			return nil, err
		}
		plans = append(plans, expanded...)
	}
	if len(plans) == 0 {
		return nil, services.Wrap(services.ErrValidation, "download", "expand_books", "no books specified", nil)
	}
	return plans, nil
}

// BookCanon maps a book code to the canon its testament downloads under.
func BookCanon(book string) (canon.Canon, error) {
	testament, err := canon.BookTestament(book)
	if err != nil {
		return "", err
	}
	if testament == canon.OldTestament {
		return canon.OT, nil
	}
	return canon.NT, nil
}
