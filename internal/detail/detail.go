package detail

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/kaa-events/internal/record"
)

// detailRowSelector locates labeled rows on a detail page, with a bare-table
// fallback for pages missing the wrapper class.
const detailRowSelector = ".addtable table tr"

const (
	defaultDownloadLabel = "檔案下載"
	defaultRegisterLabel = "報名資訊"
)

// Label variants used to recognize semantic rows on a detail page. Matching
// is substring containment on the normalized header label.
var (
	downloadLabels = []string{"檔案下載", "相關檔案", "相關文件"}
	registerLabels = []string{"報名"}
	remarkLabels   = []string{"備註", "備考", "注意事項"}
)

// Field is one labeled row of a detail page. Value is empty when the row had
// a header but no non-empty data cells.
type Field struct {
	Label string
	Value string
}

// Result holds everything extracted from one detail page.
type Result struct {
	Fields    []Field
	Downloads []record.Link
	Register  *record.Link
}

// Remarks returns the first remark-labeled field with a non-empty value, in
// document order, or "" when the page has none.
func (r *Result) Remarks() string {
	for _, f := range r.Fields {
		if f.Value == "" {
			continue
		}
		for _, label := range remarkLabels {
			if strings.Contains(f.Label, label) {
				return f.Value
			}
		}
	}
	return ""
}

// Parse extracts the field rows, download links, and registration info from a
// detail page. Rows without a header cell or with an empty normalized label
// are skipped rather than treated as errors.
func Parse(htmlText, baseURL string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parsing detail page: %w", err)
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}

	rows := doc.Find(detailRowSelector)
	if rows.Length() == 0 {
		rows = doc.Find("tr")
	}

	result := &Result{
		Fields:    []Field{},
		Downloads: []record.Link{},
	}

	rows.Each(func(i int, row *goquery.Selection) {
		header := row.Find("th").First()
		if header.Length() == 0 {
			return
		}
		label := normalizeLabel(header.Text())
		if label == "" {
			return
		}

		var cellTexts []string
		row.Find("td").Each(func(j int, cell *goquery.Selection) {
			if text := cellText(cell); text != "" {
				cellTexts = append(cellTexts, text)
			}
		})
		value := strings.TrimSpace(strings.Join(cellTexts, "\n"))
		result.Fields = append(result.Fields, Field{Label: label, Value: value})

		if matchesAny(label, downloadLabels) {
			row.Find("a[href]").Each(func(j int, link *goquery.Selection) {
				href, _ := link.Attr("href")
				linkLabel := cleanText(link.Text())
				if linkLabel == "" {
					linkLabel = defaultDownloadLabel
				}
				result.Downloads = append(result.Downloads, record.Link{
					Label: linkLabel,
					URL:   resolveURL(base, href),
				})
			})
		}

		if matchesAny(label, registerLabels) {
			if link := row.Find("a[href]").First(); link.Length() > 0 {
				href, _ := link.Attr("href")
				linkLabel := cleanText(link.Text())
				if linkLabel == "" {
					linkLabel = value
				}
				if linkLabel == "" {
					linkLabel = defaultRegisterLabel
				}
				result.Register = &record.Link{
					Label: linkLabel,
					URL:   resolveURL(base, href),
				}
			} else if value != "" {
				result.Register = &record.Link{Label: value}
			}
		}
	})

	return result, nil
}

// normalizeLabel strips colon variants and whitespace from a header label
func normalizeLabel(s string) string {
	s = cleanText(s)
	s = strings.ReplaceAll(s, "：", "")
	s = strings.ReplaceAll(s, ":", "")
	return strings.TrimSpace(s)
}

func matchesAny(label string, names []string) bool {
	for _, name := range names {
		if strings.Contains(label, name) {
			return true
		}
	}
	return false
}

// cellText joins a data cell's non-empty text nodes with newlines, in
// document order, preserving the visual line structure of multi-line values.
func cellText(cell *goquery.Selection) string {
	var fragments []string

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

	for _, n := range cell.Nodes {
		walk(n)
	}

	return strings.Join(fragments, "\n")
}

// cleanText strips carriage returns and surrounding whitespace
func cleanText(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r", ""))
}

// resolveURL resolves href against the site base, keeping absolute URLs as-is
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
