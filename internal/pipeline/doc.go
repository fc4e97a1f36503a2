// Package pipeline orchestrates one aggregation run: sequential list-page
// fetching with first-occurrence dedup, merging against the prior snapshot,
// bounded-concurrency detail enrichment, and classification. The result is
// the final record list in original page/row order, emitted only after every
// dispatched detail task has completed or failed.
package pipeline
