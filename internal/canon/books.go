package canon

import (
	"fmt"
	"sort"
	"strings"
)

// Testament identifies which half of the canon a book belongs to.
type Testament string

const (
	OldTestament Testament = "OT"
	NewTestament Testament = "NT"
)

// ErrUnknownBook is returned when a book code is not in the membership table.
type ErrUnknownBook struct {
	Book string
}

func (e *ErrUnknownBook) Error() string {
	return fmt.Sprintf("unknown book code %q", e.Book)
}

var otChapters = map[string]int{
	"GEN": 50, "EXO": 40, "LEV": 27, "NUM": 36, "DEU": 34,
	"JOS": 24, "JDG": 21, "RUT": 4, "1SA": 31, "2SA": 24,
	"1KI": 22, "2KI": 25, "1CH": 29, "2CH": 36, "EZR": 10,
	"NEH": 13, "EST": 10, "JOB": 42, "PSA": 150, "PRO": 31,
	"ECC": 12, "SNG": 8, "ISA": 66, "JER": 52, "LAM": 5,
	"EZK": 48, "DAN": 12, "HOS": 14, "JOL": 3, "AMO": 9,
	"OBA": 1, "JON": 4, "MIC": 7, "NAM": 3, "HAB": 3,
	"ZEP": 3, "HAG": 2, "ZEC": 14, "MAL": 4,
}

var ntChapters = map[string]int{
	"MAT": 28, "MRK": 16, "LUK": 24, "JHN": 21, "ACT": 28,
	"ROM": 16, "1CO": 16, "2CO": 13, "GAL": 6, "EPH": 6,
	"PHP": 4, "COL": 4, "1TH": 5, "2TH": 3, "1TI": 6,
	"2TI": 4, "TIT": 3, "PHM": 1, "HEB": 13, "JAS": 5,
	"1PE": 5, "2PE": 3, "1JN": 5, "2JN": 1, "3JN": 1,
	"JUD": 1, "REV": 22,
}

// BookTestament reports the testament a book code belongs to. A book code
// outside the membership table is a caller input error.
func BookTestament(book string) (Testament, error) {
	book = strings.ToUpper(strings.TrimSpace(book))
	if _, ok := otChapters[book]; ok {
		return OldTestament, nil
	}
	if _, ok := ntChapters[book]; ok {
		return NewTestament, nil
	}
	return "", &ErrUnknownBook{Book: book}
}

// Chapters returns the chapter count for a book code.
func Chapters(book string) (int, error) {
	book = strings.ToUpper(strings.TrimSpace(book))
	if n, ok := otChapters[book]; ok {
		return n, nil
	}
	if n, ok := ntChapters[book]; ok {
		return n, nil
	}
	return 0, &ErrUnknownBook{Book: book}
}

// IsBook reports whether the code names a book in the membership table.
func IsBook(book string) bool {
	_, err := BookTestament(book)
	return err == nil
}

// Books returns every book code in the membership table, Old Testament first,
// each testament in stable sorted order.
func Books() []string {
	out := make([]string, 0, len(otChapters)+len(ntChapters))
	for book := range otChapters {
		out = append(out, book)
	}
	sort.Strings(out)
	nt := make([]string, 0, len(ntChapters))
	for book := range ntChapters {
		nt = append(nt, book)
	}
	sort.Strings(nt)
	return append(out, nt...)
}
