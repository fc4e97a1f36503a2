package record

import (
	"testing"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name     string
		record   *Record
		expected string
	}{
		{
			name:     "detail URL preferred",
			record:   &Record{Title: "會員大會", DetailURL: "https://www.kaa.org.tw/news_detail.php?id=1"},
			expected: "https://www.kaa.org.tw/news_detail.php?id=1",
		},
		{
			name:     "title fallback",
			record:   &Record{Title: "會員大會"},
			expected: "會員大會",
		},
		{
			name:     "empty record",
			record:   &Record{},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Key(tt.record); got != tt.expected {
				t.Errorf("Key() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func TestIndex(t *testing.T) {
	withURL := &Record{Title: "A", DetailURL: "https://example.com/a"}
	titleOnly := &Record{Title: "B"}
	empty := &Record{}

	index := Index([]*Record{withURL, titleOnly, empty})

	if len(index) != 2 {
		t.Fatalf("Index() has %d entries, expected 2", len(index))
	}
	if index["https://example.com/a"] != withURL {
		t.Error("expected record to be indexed by detail URL")
	}
	if index["B"] != titleOnly {
		t.Error("expected record to be indexed by title")
	}
}
