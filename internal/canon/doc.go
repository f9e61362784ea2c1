// Package canon models testament membership and resolves the canon scope of
// catalog filesets.
//
// The book table is the fixed Protestant canon the content API uses: 39 Old
// Testament and 27 New Testament books, each with its chapter count. The
// resolver combines the structural signal embedded in a fileset identifier
// with the catalog size code to classify a fileset as NT, OT, FULL, PARTIAL,
// STORY, or VARIOUS.
package canon
