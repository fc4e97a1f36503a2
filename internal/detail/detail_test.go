package detail

import (
	"os"
	"testing"
)

const baseURL = "https://www.kaa.org.tw"

func loadFixture(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/detail_page.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return string(data)
}

func TestParseFields(t *testing.T) {
	result, err := Parse(loadFixture(t), baseURL)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	// Blank-header and headerless rows are dropped.
	if len(result.Fields) != 6 {
		t.Fatalf("Parse returned %d fields, expected 6", len(result.Fields))
	}

	tests := []struct {
		label string
		value string
	}{
		{"活動名稱", "會員大會"},       // fullwidth colon stripped
		{"地點", "高雄市文化中心"},      // ASCII colon stripped
		{"備註", "請攜帶證件\n並提前入場"}, // <br>-split lines joined with newline
		{"費用", ""},             // header with no data keeps an empty value
	}
	for i, tt := range tests {
		if result.Fields[i].Label != tt.label {
			t.Errorf("Fields[%d].Label = %q, expected %q", i, result.Fields[i].Label, tt.label)
		}
		if result.Fields[i].Value != tt.value {
			t.Errorf("Fields[%d].Value = %q, expected %q", i, result.Fields[i].Value, tt.value)
		}
	}
}

func TestParseDownloads(t *testing.T) {
	result, err := Parse(loadFixture(t), baseURL)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(result.Downloads) != 2 {
		t.Fatalf("Parse returned %d downloads, expected 2", len(result.Downloads))
	}
	if result.Downloads[0].Label != "議程表" || result.Downloads[0].URL != baseURL+"/files/agenda.pdf" {
		t.Errorf("Downloads[0] = %+v", result.Downloads[0])
	}
	// A download link without visible text gets the generic label.
	if result.Downloads[1].Label != "檔案下載" || result.Downloads[1].URL != baseURL+"/files/map.pdf" {
		t.Errorf("Downloads[1] = %+v", result.Downloads[1])
	}
}

func TestParseRegister(t *testing.T) {
	result, err := Parse(loadFixture(t), baseURL)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if result.Register == nil {
		t.Fatal("expected registration info")
	}
	if result.Register.Label != "線上報名" {
		t.Errorf("Register.Label = %q", result.Register.Label)
	}
	if result.Register.URL != baseURL+"/news_apply.php?id=101" {
		t.Errorf("Register.URL = %q", result.Register.URL)
	}
}

func TestParseRegisterWithoutLink(t *testing.T) {
	html := `<div class="addtable"><table>
		<tr><th>報名方式</th><td>電話報名 07-1234567</td></tr>
	</table></div>`

	result, err := Parse(html, baseURL)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if result.Register == nil {
		t.Fatal("expected registration info from the field value")
	}
	if result.Register.Label != "電話報名 07-1234567" {
		t.Errorf("Register.Label = %q", result.Register.Label)
	}
	if result.Register.URL != "" {
		t.Errorf("Register.URL = %q, expected empty", result.Register.URL)
	}
}

func TestParseBareTableFallback(t *testing.T) {
	// Detail pages occasionally miss the wrapper class; all rows are scanned.
	html := `<table><tr><th>備註：</th><td>自由入場</td></tr></table>`

	result, err := Parse(html, baseURL)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(result.Fields) != 1 || result.Fields[0].Label != "備註" {
		t.Fatalf("Fields = %+v", result.Fields)
	}
	if result.Remarks() != "自由入場" {
		t.Errorf("Remarks() = %q", result.Remarks())
	}
}

func TestRemarks(t *testing.T) {
	tests := []struct {
		name     string
		fields   []Field
		expected string
	}{
		{
			name:     "remark label variant",
			fields:   []Field{{Label: "注意事項", Value: "需事先報名"}},
			expected: "需事先報名",
		},
		{
			name: "first matching value in document order",
			fields: []Field{
				{Label: "備考", Value: ""},
				{Label: "備註", Value: "請攜帶證件"},
				{Label: "注意事項", Value: "後面的備註"},
			},
			expected: "請攜帶證件",
		},
		{
			name:     "no remark field",
			fields:   []Field{{Label: "地點", Value: "會館"}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := &Result{Fields: tt.fields}
			if got := result.Remarks(); got != tt.expected {
				t.Errorf("Remarks() = %q, expected %q", got, tt.expected)
			}
		})
	}
}
