package detail

// Fetcher retrieves a page as decoded text. Satisfied by fetcher.Fetcher.
type Fetcher interface {
	Fetch(url string) (string, error)
}

// Enricher fetches and parses detail pages, memoizing results per URL so a
// URL reached from multiple list rows is fetched at most once per run.
type Enricher struct {
	fetcher Fetcher
	baseURL string
	cache   *Cache
}

// NewEnricher creates an Enricher resolving links against baseURL. A nil
// cache gets a fresh one with the default capacity.
func NewEnricher(f Fetcher, baseURL string, cache *Cache) *Enricher {
	if cache == nil {
		cache = NewCache(DefaultCacheSize)
	}
	return &Enricher{
		fetcher: f,
		baseURL: baseURL,
		cache:   cache,
	}
}

// Enrich returns the detail result for url, fetching and parsing the page on
// a cache miss. Transport errors propagate to the caller, which treats them
// as per-item failures.
func (e *Enricher) Enrich(url string) (*Result, error) {
	if result, ok := e.cache.Get(url); ok {
		return result, nil
	}

	htmlText, err := e.fetcher.Fetch(url)
	if err != nil {
		return nil, err
	}

	result, err := Parse(htmlText, e.baseURL)
	if err != nil {
		return nil, err
	}

	e.cache.Set(url, result)
	return result, nil
}
