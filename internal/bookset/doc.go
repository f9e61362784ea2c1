// Package bookset selects languages from a sorted tree by content
// capability. A book set names a batch-download audience: every language
// with usable content, languages with timing data for one testament,
// languages with syncable pairs, or languages holding only partial
// book-sets. Each set also carries the category and canon constraints the
// batch download applies.
package bookset
