// Package detail extracts extended announcement fields from per-item detail
// pages: a labeled field table, downloadable file links, and registration
// info. Results are memoized in a capacity-bounded cache for the run.
package detail
