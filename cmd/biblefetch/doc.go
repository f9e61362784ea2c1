// Package main hosts the biblefetch CLI entrypoint and command graph.
//
// The Cobra-based command tree drives the pipeline stages: refreshing the
// catalog cache, classifying it into the sorted metadata tree, downloading
// chapter media, listing languages by book set, and packaging exports. It
// centralizes configuration resolution, structured logging setup, and the
// single-writer lock so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
