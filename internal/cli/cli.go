package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/kaa-events/internal/fetcher"
	"github.com/pfrederiksen/kaa-events/internal/logger"
	"github.com/pfrederiksen/kaa-events/internal/pipeline"
	"github.com/pfrederiksen/kaa-events/internal/storage"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// Environment overrides matching the original deployment. They apply only
// when the corresponding flag is left at its default.
const (
	envWorkers = "DETAIL_CONCURRENCY"
	envDelay   = "DETAIL_DELAY"
)

var (
	flagPages   int
	flagWorkers int
	flagDelay   time.Duration
	flagDataDir string
	flagFormat  string
	flagVerbose bool
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kaa-events",
		Short: "Aggregate KAA announcements into a JSON snapshot",
		Long: `Scrapes the KAA announcement list, enriches records from their detail
pages, classifies them, and refreshes the local JSON snapshot. Detail pages
already covered by the previous snapshot are not refetched.`,
		RunE: runScrape,
	}

	cmd.Flags().IntVar(&flagPages, "pages", pipeline.DefaultPages, "Number of list pages to fetch")
	cmd.Flags().IntVar(&flagWorkers, "workers", pipeline.DefaultWorkers, "Concurrent detail-page fetches")
	cmd.Flags().DurationVar(&flagDelay, "delay", 0, "Pause after each detail fetch (e.g. 500ms)")
	cmd.Flags().StringVar(&flagDataDir, "data-dir", "data", "Data directory for the snapshot")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	workers := flagWorkers
	if !cmd.Flags().Changed("workers") {
		if v, err := strconv.Atoi(os.Getenv(envWorkers)); err == nil && v > 0 {
			workers = v
		}
	}

	delay := flagDelay
	if !cmd.Flags().Changed("delay") {
		if v, err := strconv.ParseFloat(os.Getenv(envDelay), 64); err == nil && v > 0 {
			delay = time.Duration(v * float64(time.Second))
		}
	}

	level := logger.LevelWarn
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)

	store, err := storage.New(flagDataDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	prior := store.LoadSnapshot()
	log.Debug("loaded prior snapshot", logger.Fields{"events": len(prior.Events)})

	p := pipeline.New(pipeline.Config{
		ListURL: fetcher.ListURL,
		BaseURL: fetcher.BaseURL,
		Pages:   flagPages,
		Workers: workers,
		Delay:   delay,
	}, fetcher.New(), log)

	events, stats, err := p.Run(prior)
	if err != nil {
		return fmt.Errorf("aggregating announcements: %w", err)
	}

	snapshot := &storage.Snapshot{
		SourceURL: fetcher.ListURL,
		Events:    events,
	}
	if err := store.SaveSnapshot(snapshot); err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}

	result := NewOutputResult(snapshot, stats, store.SnapshotPath())
	if err := WriteOutput(os.Stdout, result, format); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
