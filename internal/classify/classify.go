// Package classify assigns a category to an announcement title using ordered
// keyword matching.
//
// Categories are tested in a fixed priority order (movie, workshop, meeting,
// outing); the first category with a keyword contained in the title wins.
// Titles matching no keyword set are checked against a narrower outing marker
// before falling back to "other". Matching is plain substring containment on
// the trimmed title.
package classify

import (
	"strings"

	"github.com/pfrederiksen/kaa-events/internal/record"
)

// rule pairs a category with its keyword set. Rules are evaluated in order,
// first match wins, so the slice order encodes the category priority.
type rule struct {
	category string
	keywords []string
}

var rules = []rule{
	{record.CategoryMovie, []string{"電影", "影展", "影唱", "電影活動", "改版播放"}},
	{record.CategoryWorkshop, []string{"講習", "課程", "研習", "培訓", "講座", "講堂", "工作坊", "訓練"}},
	{record.CategoryMeeting, []string{"會議", "理事", "理監事", "委員", "會員", "座談", "大會", "議"}},
	{record.CategoryOuting, []string{"出遊", "旅遊", "旅行", "參訪", "觀摩", "遊程", "團遊"}},
}

// outingMarkers are single characters strongly suggestive of an outing,
// checked only after every keyword set has missed.
var outingMarkers = []string{"遊"}

// Title classifies an announcement title. An empty or whitespace-only title
// classifies as "other".
func Title(title string) string {
	normalized := strings.TrimSpace(title)
	if normalized == "" {
		return record.CategoryOther
	}

	for _, r := range rules {
		for _, keyword := range r.keywords {
			if strings.Contains(normalized, keyword) {
				return r.category
			}
		}
	}

	for _, marker := range outingMarkers {
		if strings.Contains(normalized, marker) {
			return record.CategoryOuting
		}
	}

	return record.CategoryOther
}
