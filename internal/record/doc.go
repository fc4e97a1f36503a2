// Package record provides the announcement record type and the merge rules
// applied between a freshly scraped record and its prior-snapshot counterpart.
//
// Records are identified by their detail URL when one exists, falling back to
// the title. Merging always prefers fresh list-page data; detail-only fields
// carry over from the prior record so an already-enriched announcement does
// not need its detail page refetched on every run.
package record
