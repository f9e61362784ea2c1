// Package language provides unified language code normalization and mapping.
//
// The catalog keys every language by its ISO 639-3 code, while operators
// tend to type 2-letter codes or English names on the command line. All
// conversions between those forms live here.
package language
