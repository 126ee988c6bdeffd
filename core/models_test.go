package core

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantSame bool
	}{
		{
			name:     "same content produces same ID",
			content:  "test content",
			wantSame: true,
		},
		{
			name:     "empty string",
			content:  "",
			wantSame: true,
		},
		{
			name:     "multibyte content",
			content:  "田中太郎は人工知能の研究者です",
			wantSame: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if tt.wantSame && id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("content1")
	id2 := IDFromContent("content2")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestContentKey_ModelScoped(t *testing.T) {
	a := ContentKey("text-embedding-3-large", "same text")
	b := ContentKey("text-embedding-3-small", "same text")
	if a == b {
		t.Errorf("ContentKey() should differ across models")
	}
	if a != ContentKey("text-embedding-3-large", "same text") {
		t.Errorf("ContentKey() should be deterministic")
	}
}

func TestDocumentID(t *testing.T) {
	tests := []struct {
		row  int
		want string
	}{
		{1, "1"},
		{2, "2"},
		{1000, "1000"},
	}
	for _, tt := range tests {
		if got := DocumentID(tt.row); got != tt.want {
			t.Errorf("DocumentID(%d) = %q, want %q", tt.row, got, tt.want)
		}
	}
}

func TestRecord_JSON(t *testing.T) {
	record := &Record{
		Row:           1,
		Name:          "田中太郎",
		BirthDate:     "1980-01-01",
		Education:     "東京大学 <博士>",
		ResearchField: "AI",
		Achievements:  "論文 & 特許",
		Awards:        "",
		SelfIntro:     "よろしくお願いします",
		Appeal:        "\"熱意\"",
	}

	got := record.JSON()

	// json.dumps(row, ensure_ascii=False) of the same row.
	want := `{"氏名": "田中太郎", "生年月日": "1980-01-01", "学歴": "東京大学 <博士>", "研究分野": "AI", ` +
		`"研究実績": "論文 & 特許", "表彰実績": "", "自己紹介": "よろしくお願いします", "アピール": "\"熱意\""}`
	if got != want {
		t.Errorf("JSON() =\n%s\nwant\n%s", got, want)
	}

	var decoded map[string]string
	if err := json.Unmarshal([]byte(got), &decoded); err != nil {
		t.Fatalf("JSON() produced invalid JSON: %v", err)
	}
	if decoded["研究分野"] != "AI" {
		t.Errorf("decoded 研究分野 = %q, want %q", decoded["研究分野"], "AI")
	}
}

func TestRecord_JSONSparse(t *testing.T) {
	record := &Record{Row: 1, Name: "田中太郎", ResearchField: "AI"}

	want := `{"氏名": "田中太郎", "生年月日": "", "学歴": "", "研究分野": "AI", ` +
		`"研究実績": "", "表彰実績": "", "自己紹介": "", "アピール": ""}`
	if got := record.JSON(); got != want {
		t.Errorf("JSON() =\n%s\nwant\n%s", got, want)
	}
}

func TestRecord_JSONEscapes(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"backslash", `a\b`, `"a\\b"`},
		{"newline", "line1\nline2", `"line1\nline2"`},
		{"crlf and tab", "a\r\n\tb", `"a\r\n\tb"`},
		{"backspace and formfeed", "a\b\fb", `"a\b\fb"`},
		{"other control", "a\x01b\x1f", `"a\u0001b\u001f"`},
		{"html stays literal", "<a href='x'>&</a>", `"<a href='x'>&</a>"`},
		{"line separator stays literal", "a\u2028b", "\"a\u2028b\""},
		{"delete stays literal", "a\x7fb", "\"a\x7fb\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := (&Record{Row: 1, Name: tt.in}).JSON()
			prefix := `{"氏名": ` + tt.want + `, "生年月日": ""`
			if !strings.HasPrefix(got, prefix) {
				t.Errorf("JSON() = %s, want prefix %s", got, prefix)
			}

			var decoded map[string]string
			if err := json.Unmarshal([]byte(got), &decoded); err != nil {
				t.Fatalf("JSON() produced invalid JSON: %v", err)
			}
			if decoded["氏名"] != tt.in {
				t.Errorf("round trip = %q, want %q", decoded["氏名"], tt.in)
			}
		})
	}
}

func TestRecord_JSONKeyOrder(t *testing.T) {
	record := &Record{Row: 1, Name: "a", Appeal: "b"}
	got := record.JSON()

	keys := []string{"氏名", "生年月日", "学歴", "研究分野", "研究実績", "表彰実績", "自己紹介", "アピール"}
	last := -1
	for _, k := range keys {
		idx := strings.Index(got, `"`+k+`"`)
		if idx <= last {
			t.Fatalf("key %q out of order in %s", k, got)
		}
		last = idx
	}
}
