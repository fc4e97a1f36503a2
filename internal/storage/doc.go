// Package storage provides JSON-based persistence for announcement snapshots.
//
// The storage package manages the local snapshot file that carries records
// across runs. Each run overwrites the snapshot atomically (write to a temp
// file, then rename), so a crash mid-write never leaves a truncated document
// for the next run to merge against.
package storage
