// Package services defines shared utilities consumed by the catalog, sort,
// and download stages and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, stage names, and language
//     codes for logging and tracing.
//   - Structured error markers plus the Wrap helper that keep failure
//     classification (retryable vs fatal) consistent across stages.
//
// Use these helpers when wiring new stage logic so operational behaviour
// stays uniform across the pipeline.
package services
