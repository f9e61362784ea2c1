// Package download plans and executes content retrieval for classified
// languages.
//
// A download request names a language and a set of books with chapters. The
// planner loads the language's sorted metadata, groups it by translation,
// selects the best audio and text fileset per book, and fetches chapter media
// into downloads/{canon}/{category}/{iso}/{translation}/{book}/. Existing
// files are skipped unless forced. Failures are recorded per chapter in a
// mergeable on-disk error log; a failed chapter never aborts the run.
package download
