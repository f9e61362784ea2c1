// Package config loads, validates, and normalizes biblefetch configuration.
//
// Configuration comes from a TOML file with sane defaults for every field;
// the API key may also arrive via the BIBLE_API_KEY environment variable.
// All path fields are expanded (including ~) and made absolute during load.
package config
