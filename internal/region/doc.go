// Package region groups languages into distribution regions and packages
// exported content into per-region archives.
//
// Regions come from a plain-text config: a region name line followed by
// comma-separated ISO code lines, with optional @-prefixed metadata lines
// naming trade, regional, educational, and literacy languages. A language may
// appear in any number of regions. Archives carry a fixed entry timestamp so
// identical content produces identical bytes.
package region
