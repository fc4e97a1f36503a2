package listpage

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/kaa-events/internal/record"
)

// listTableSelector locates the announcement table on a list page.
const listTableSelector = ".mtable table"

// registerPathMarker identifies the site's registration page in list-row links.
const registerPathMarker = "news_apply"

// defaultRegisterLabel is used when a registration link has no visible text.
const defaultRegisterLabel = "線上報名"

// ErrNoListTable indicates the expected announcement table was absent from a
// list page. List pages are few and required, so callers treat this as fatal.
var ErrNoListTable = errors.New("list table not found")

// Parse extracts candidate records from one list page. Rows without visible
// title text (headers, separators) are skipped. Links are resolved against
// baseURL.
func Parse(htmlText, baseURL string) ([]*record.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parsing list page: %w", err)
	}

	table := doc.Find(listTableSelector).First()
	if table.Length() == 0 {
		return nil, ErrNoListTable
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	records := make([]*record.Record, 0)

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			return
		}

		title := cleanText(cells.Eq(0).Text())
		if title == "" {
			return
		}

		rec := &record.Record{
			Title:    title,
			Dates:    []string{},
			TimeInfo: []string{},
			Extras:   []record.Link{},
		}

		if link := cells.Eq(0).Find("a").First(); link.Length() > 0 {
			if href, ok := link.Attr("href"); ok && href != "" {
				rec.DetailURL = resolveURL(base, href)
			}
		}

		if cells.Length() > 1 {
			rec.Location = strings.Join(textFragments(cells.Eq(1)), " ")
		}
		if cells.Length() > 2 {
			rec.Dates = textFragments(cells.Eq(2))
		}
		if cells.Length() > 3 {
			rec.TimeInfo = textFragments(cells.Eq(3))
		}

		if cells.Length() > 4 {
			if link := cells.Eq(4).Find("a").First(); link.Length() > 0 {
				rec.Note = cleanText(link.Text())
				if href, ok := link.Attr("href"); ok && href != "" {
					rec.NoteURL = resolveURL(base, href)
				}
			}
		}

		// Columns beyond the fixed set may carry a registration link.
		for c := 5; c < cells.Length(); c++ {
			link := cells.Eq(c).Find("a").First()
			if link.Length() == 0 {
				continue
			}
			href, _ := link.Attr("href")
			if !strings.Contains(href, registerPathMarker) {
				continue
			}
			rec.RegisterURL = resolveURL(base, href)
			rec.Register = cleanText(link.Text())
			if rec.Register == "" {
				rec.Register = defaultRegisterLabel
			}
			break
		}

		records = append(records, rec)
	})

	return records, nil
}

// cleanText strips carriage returns and surrounding whitespace
func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r", ""))
}

// textFragments collects every non-empty text node under sel, cleaned, in
// document order. Cells on this site stack multiple dates or time ranges as
// separate text nodes split by <br>, and their display order is significant.
func textFragments(sel *goquery.Selection) []string {
	fragments := []string{}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if text := cleanText(n.Data); text != "" {
				fragments = append(fragments, text)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	for _, n := range sel.Nodes {
		walk(n)
	}

	return fragments
}

// resolveURL resolves href against the site base, keeping absolute URLs as-is
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
