package detail

import (
	"errors"
	"sync"
	"testing"
)

// countingFetcher serves a canned page and counts fetches per URL
type countingFetcher struct {
	mu    sync.Mutex
	pages map[string]string
	calls map[string]int
}

func newCountingFetcher(pages map[string]string) *countingFetcher {
	return &countingFetcher{pages: pages, calls: make(map[string]int)}
}

func (f *countingFetcher) Fetch(url string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[url]++
	page, ok := f.pages[url]
	if !ok {
		return "", errors.New("no such page")
	}
	return page, nil
}

func (f *countingFetcher) callCount(url string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[url]
}

func TestEnrichMemoizes(t *testing.T) {
	const url = "https://www.kaa.org.tw/news_detail.php?id=1"
	fake := newCountingFetcher(map[string]string{
		url: `<div class="addtable"><table><tr><th>備註</th><td>請攜帶證件</td></tr></table></div>`,
	})
	enricher := NewEnricher(fake, baseURL, nil)

	first, err := enricher.Enrich(url)
	if err != nil {
		t.Fatalf("Enrich failed: %v", err)
	}
	if first.Remarks() != "請攜帶證件" {
		t.Errorf("Remarks() = %q", first.Remarks())
	}

	second, err := enricher.Enrich(url)
	if err != nil {
		t.Fatalf("second Enrich failed: %v", err)
	}
	if second != first {
		t.Error("expected the memoized result on the second call")
	}
	if fake.callCount(url) != 1 {
		t.Errorf("fetch count = %d, expected 1", fake.callCount(url))
	}
}

func TestEnrichPropagatesFetchError(t *testing.T) {
	fake := newCountingFetcher(nil)
	enricher := NewEnricher(fake, baseURL, NewCache(8))

	if _, err := enricher.Enrich("https://www.kaa.org.tw/missing"); err == nil {
		t.Fatal("expected the fetch error to propagate")
	}

	// Failures are not cached; a later call retries the fetch.
	enricher.Enrich("https://www.kaa.org.tw/missing")
	if got := fake.callCount("https://www.kaa.org.tw/missing"); got != 2 {
		t.Errorf("fetch count = %d, expected 2", got)
	}
}
