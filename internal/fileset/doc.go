// Package fileset models catalog filesets and the identifier-level rules the
// classification engine applies to them: format-suffix normalization,
// dramatized-duplicate filtering, and audio-to-text syncable pairing.
//
// Everything here is a pure function of fileset identifiers. Nothing performs
// I/O and nothing mutates its inputs, so the per-language pipeline stages can
// run independently across languages.
package fileset
