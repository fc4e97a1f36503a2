package record

// Category values assigned by the classifier.
const (
	CategoryMeeting  = "meeting"
	CategoryOuting   = "outing"
	CategoryMovie    = "movie"
	CategoryWorkshop = "workshop"
	CategoryOther    = "other"
)

// Link is a labeled URL, used for downloads and extra list-row links
type Link struct {
	Label string `json:"label"`
	URL   string `json:"url,omitempty"`
}

// Record represents one announcement aggregated from the list and,
// optionally, its detail page
type Record struct {
	Title       string   `json:"title"`
	DetailURL   string   `json:"detailUrl,omitempty"`
	Location    string   `json:"location,omitempty"`
	Dates       []string `json:"dates"`
	TimeInfo    []string `json:"timeInfo"`
	Note        string   `json:"note,omitempty"`
	NoteURL     string   `json:"noteUrl,omitempty"`
	Register    string   `json:"register,omitempty"`
	RegisterURL string   `json:"registerUrl,omitempty"`
	Extras      []Link   `json:"extras"`
	Category    string   `json:"category"`
	Remarks     string   `json:"remarks,omitempty"`
	Downloads   []Link   `json:"downloads,omitempty"`
}

// Key returns the identity used for dedup and merge: the detail URL when
// present, otherwise the title.
func Key(r *Record) string {
	if r.DetailURL != "" {
		return r.DetailURL
	}
	return r.Title
}

// Index builds a key → record lookup from a prior run's record list.
// Records with an empty key are skipped.
func Index(records []*Record) map[string]*Record {
	index := make(map[string]*Record, len(records))
	for _, r := range records {
		if key := Key(r); key != "" {
			index[key] = r
		}
	}
	return index
}
