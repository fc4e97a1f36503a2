// Package cli implements the kaa-events command: flag parsing, environment
// overrides, pipeline wiring, and run-summary output in text or JSON.
package cli
