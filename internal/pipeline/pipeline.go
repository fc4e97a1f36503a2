package pipeline

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pfrederiksen/kaa-events/internal/classify"
	"github.com/pfrederiksen/kaa-events/internal/detail"
	"github.com/pfrederiksen/kaa-events/internal/fetcher"
	"github.com/pfrederiksen/kaa-events/internal/listpage"
	"github.com/pfrederiksen/kaa-events/internal/logger"
	"github.com/pfrederiksen/kaa-events/internal/record"
	"github.com/pfrederiksen/kaa-events/internal/storage"
)

const (
	DefaultPages   = 5
	DefaultWorkers = 4
)

// Config holds the aggregation run parameters
type Config struct {
	ListURL   string        // paginated announcement list, page 1
	BaseURL   string        // base for resolving relative links
	Pages     int           // number of list pages to fetch
	Workers   int           // detail-fetch worker bound
	Delay     time.Duration // optional pause after each detail fetch
	CacheSize int           // detail cache capacity, 0 for the default
}

// Fetcher retrieves a page as decoded text. Satisfied by fetcher.Fetcher.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// Stats summarizes what one run did
type Stats struct {
	PagesFetched   int `json:"pages_fetched"`
	RecordCount    int `json:"record_count"`
	NewRecords     int `json:"new_records"`
	DetailFetches  int `json:"detail_fetches"`
	DetailFailures int `json:"detail_failures"`
}

// Pipeline aggregates list pages into a merged, enriched, classified record
// list. List pages are fetched sequentially so first-occurrence dedup follows
// page order; detail pages are fetched on a bounded worker pool.
type Pipeline struct {
	cfg      Config
	fetcher  Fetcher
	enricher *detail.Enricher
	log      *logger.Logger
}

// New creates a Pipeline. Zero-valued page and worker counts fall back to the
// defaults; a nil logger discards everything below ERROR to stderr.
func New(cfg Config, f Fetcher, log *logger.Logger) *Pipeline {
	if cfg.Pages <= 0 {
		cfg.Pages = DefaultPages
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if log == nil {
		log = logger.New(logger.LevelError, nil)
	}
	return &Pipeline{
		cfg:      cfg,
		fetcher:  f,
		enricher: detail.NewEnricher(f, cfg.BaseURL, detail.NewCache(cfg.CacheSize)),
		log:      log,
	}
}

// Run executes one aggregation pass against the prior snapshot and returns
// the final ordered record list. A list-page failure aborts the run; detail
// failures are logged per item and the affected records keep whatever the
// merge step produced.
func (p *Pipeline) Run(prior *storage.Snapshot) ([]*record.Record, *Stats, error) {
	stats := &Stats{}

	records, err := p.collect(stats)
	if err != nil {
		return nil, nil, err
	}

	targets := p.merge(records, prior, stats)
	p.enrich(records, targets, stats)

	for _, rec := range records {
		rec.Category = classify.Title(rec.Title)
	}

	stats.RecordCount = len(records)
	return records, stats, nil
}

// collect fetches the list pages in order and dedupes records by key,
// keeping the first occurrence.
func (p *Pipeline) collect(stats *Stats) ([]*record.Record, error) {
	seen := make(map[string]bool)
	records := make([]*record.Record, 0)

	for page := 1; page <= p.cfg.Pages; page++ {
		url := fetcher.ListPageURL(p.cfg.ListURL, page)
		p.log.Debug("fetching list page", logger.Fields{"page": page, "url": url})

		html, err := p.fetcher.Fetch(url)
		if err != nil {
			return nil, fmt.Errorf("fetching list page %d: %w", page, err)
		}

		parsed, err := listpage.Parse(html, p.cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing list page %d: %w", page, err)
		}

		for _, rec := range parsed {
			key := record.Key(rec)
			if key == "" || seen[key] {
				continue
			}
			seen[key] = true
			records = append(records, rec)
		}
		stats.PagesFetched++
	}

	return records, nil
}

// target marks a record slot whose detail page must be fetched
type target struct {
	index int
	url   string
}

// merge folds each fresh record into its prior counterpart in place and
// returns the enrichment targets. Re-fetch decisions look at the prior
// record, not the merged one, so a fully enriched prior always skips.
func (p *Pipeline) merge(records []*record.Record, prior *storage.Snapshot, stats *Stats) []target {
	var priorEvents []*record.Record
	if prior != nil {
		priorEvents = prior.Events
	}
	index := record.Index(priorEvents)

	var targets []target
	for i, rec := range records {
		existing := index[record.Key(rec)]
		if existing == nil {
			stats.NewRecords++
		}
		records[i] = record.Merge(existing, rec)

		if rec.DetailURL != "" && record.NeedsDetail(existing) {
			targets = append(targets, target{index: i, url: rec.DetailURL})
		}
	}
	return targets
}

// enrich fetches the queued detail pages on a bounded worker pool and folds
// the results into the corresponding records. Each worker writes only its own
// record slot; stats updates share a mutex. The method returns only after
// every dispatched task has completed or failed.
func (p *Pipeline) enrich(records []*record.Record, targets []target, stats *Stats) {
	if len(targets) == 0 {
		return
	}

	var mu sync.Mutex
	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)

	for _, t := range targets {
		t := t
		g.Go(func() error {
			result, err := p.enricher.Enrich(t.url)
			if err != nil {
				p.log.Warn("unable to load detail page", logger.Fields{"url": t.url, "error": err.Error()})
				mu.Lock()
				stats.DetailFailures++
				mu.Unlock()
				return nil
			}

			applyDetail(records[t.index], result)

			mu.Lock()
			stats.DetailFetches++
			mu.Unlock()

			if p.cfg.Delay > 0 {
				time.Sleep(p.cfg.Delay)
			}
			return nil
		})
	}

	// Workers never return errors; failures are per-item warnings.
	_ = g.Wait()
}

// applyDetail folds a detail result into a merged record
func applyDetail(rec *record.Record, result *detail.Result) {
	if remarks := result.Remarks(); remarks != "" {
		rec.Remarks = remarks
	}

	if result.Register != nil {
		if result.Register.Label != "" {
			rec.Register = result.Register.Label
		}
		if result.Register.URL != "" {
			rec.RegisterURL = result.Register.URL
		}
	}

	var downloads []record.Link
	for _, d := range result.Downloads {
		if d.URL != "" {
			downloads = append(downloads, d)
		}
	}
	if len(downloads) > 0 {
		rec.Downloads = downloads
	}
}
