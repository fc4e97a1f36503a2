package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/traditionalchinese"
)

const (
	BaseURL   = "https://www.kaa.org.tw"
	ListURL   = BaseURL + "/news_list.php?t1=1"
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/129.0.0.0 Safari/537.36"
	Referer   = BaseURL + "/"
	Timeout   = 30 * time.Second
)

// Error reports a transport failure: a connection error or a non-2xx status.
type Error struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.StatusCode)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Fetcher retrieves pages from the announcement site
type Fetcher struct {
	client *http.Client
}

// New creates a new Fetcher instance
func New() *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: Timeout,
		},
	}
}

// Fetch retrieves a page and decodes it to text. The body is decoded as UTF-8
// when valid; otherwise it is re-decoded as Big5 with undecodable bytes
// replaced, so decoding itself never fails.
func (f *Fetcher) Fetch(url string) (string, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Referer", Referer)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &Error{URL: url, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &Error{URL: url, Err: err}
	}

	return decode(raw), nil
}

// decode converts response bytes to text, preferring UTF-8 with a Big5
// fallback for the site's legacy pages.
func decode(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}

	decoded, err := traditionalchinese.Big5.NewDecoder().Bytes(raw)
	if err != nil {
		// The Big5 decoder substitutes invalid bytes rather than failing;
		// keep the raw bytes as a last resort.
		return string(raw)
	}
	return string(decoded)
}

// ListPageURL builds the URL for a given 1-based list page. Page 1 is the
// list URL itself; later pages append the site's page-offset parameter.
func ListPageURL(listURL string, page int) string {
	if page <= 1 {
		return listURL
	}
	return fmt.Sprintf("%s&b=%d", listURL, page)
}
