// Package sorted turns a catalog snapshot into the classified on-disk tree
// consumed by the download stage.
//
// Layout: sorted/{iso}/{fileset_id}/metadata.json, with expanded FULL text
// filesets split into {fileset_id}-nt and {fileset_id}-ot directories. The
// tree root also carries summary.json and exclude_download.json. Every run
// rewrites the metadata it touches; nothing is merged with previous output.
package sorted
