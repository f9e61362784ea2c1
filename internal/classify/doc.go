// Package classify turns a raw catalog snapshot into classified fileset
// records and availability categories.
//
// Organize groups catalog records per language, normalizes translation
// abbreviations, annotates each fileset with its canon, and fans complete
// Bible text editions out into one NT and one OT record. Classify then labels
// each (translation, canon) group with exactly one availability category from
// a fixed priority order. Both steps are deterministic projections of the
// snapshot; reruns replace, never merge, earlier results.
package classify
