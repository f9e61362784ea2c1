// Package selection picks the single best audio and text fileset to download
// for one (translation, book) request.
//
// Priorities are fixed, hand-specified tables rather than nested branches:
// audio ranks by (dramatized, opus, id) ascending, text by a format tier
// offset by completeness. Absence of any qualifying fileset is a normal
// outcome, not an error; an irresolvable tie after the full priority tuple is
// a defect in the priority table and is reported as such.
package selection
