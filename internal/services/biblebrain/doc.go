// Package biblebrain wraps the Bible Brain (dbt.io v4) content API.
//
// The client covers the three call shapes the pipeline needs: paginated
// bible catalog listings (Bearer auth), per-chapter media path lookups
// (key query-parameter auth), and verse timestamp retrieval. Media bytes
// live on a CDN behind the returned paths and are fetched separately.
package biblebrain
