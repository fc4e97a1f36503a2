package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/pfrederiksen/kaa-events/internal/pipeline"
	"github.com/pfrederiksen/kaa-events/internal/storage"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains the run summary to be output
type OutputResult struct {
	ScrapedAt    string          `json:"scraped_at"`
	SourceURL    string          `json:"source_url"`
	SnapshotPath string          `json:"snapshot_path"`
	Stats        *pipeline.Stats `json:"stats"`
	ByCategory   map[string]int  `json:"by_category"`
}

// NewOutputResult builds the run summary from the saved snapshot and stats
func NewOutputResult(snapshot *storage.Snapshot, stats *pipeline.Stats, path string) *OutputResult {
	byCategory := make(map[string]int)
	for _, rec := range snapshot.Events {
		byCategory[rec.Category]++
	}

	return &OutputResult{
		ScrapedAt:    snapshot.ScrapedAt,
		SourceURL:    snapshot.SourceURL,
		SnapshotPath: path,
		Stats:        stats,
		ByCategory:   byCategory,
	}
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs the summary as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs the summary as human-readable text
func writeText(w io.Writer, result *OutputResult) error {
	fmt.Fprintf(w, "Saved %d events to %s\n", result.Stats.RecordCount, result.SnapshotPath)
	fmt.Fprintf(w, "Pages fetched: %d, new records: %d, detail fetches: %d",
		result.Stats.PagesFetched, result.Stats.NewRecords, result.Stats.DetailFetches)
	if result.Stats.DetailFailures > 0 {
		fmt.Fprintf(w, " (%d failed)", result.Stats.DetailFailures)
	}
	fmt.Fprintln(w)

	if len(result.ByCategory) > 0 {
		categories := make([]string, 0, len(result.ByCategory))
		for category := range result.ByCategory {
			categories = append(categories, category)
		}
		sort.Strings(categories)

		fmt.Fprint(w, "Categories:")
		for _, category := range categories {
			fmt.Fprintf(w, " %s=%d", category, result.ByCategory[category])
		}
		fmt.Fprintln(w)
	}

	return nil
}
