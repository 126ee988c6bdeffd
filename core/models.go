package core

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// DefaultDimensions is the vector size produced by text-embedding-3-large.
const DefaultDimensions = 3072

// ID is a unique identifier derived from content hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ContentKey returns a stable cache key for an embedding of text produced by model.
func ContentKey(model, text string) ID {
	return IDFromContent(model + "\x00" + text)
}

// DocumentID returns the index key for the record at the given 1-based row position.
func DocumentID(row int) string {
	return strconv.Itoa(row)
}

// Record is a single researcher profile read from the input CSV.
// Field values are kept exactly as they appeared in the file.
type Record struct {
	Row           int // 1-based position in the dataset, excluding the header
	Name          string
	BirthDate     string
	Education     string
	ResearchField string
	Achievements  string
	Awards        string
	SelfIntro     string
	Appeal        string
}

// Column names of the source dataset, in the order they are serialized.
var recordKeys = [...]string{"氏名", "生年月日", "学歴", "研究分野", "研究実績", "表彰実績", "自己紹介", "アピール"}

func (r *Record) values() [len(recordKeys)]string {
	return [...]string{r.Name, r.BirthDate, r.Education, r.ResearchField, r.Achievements, r.Awards, r.SelfIntro, r.Appeal}
}

// JSON serializes the record as a JSON object keyed by the dataset's column names.
// The output uses ", " and ": " separators and leaves non-ASCII text unescaped,
// so it is byte-identical to Python's json.dumps(row, ensure_ascii=False).
func (r *Record) JSON() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range r.values() {
		if i > 0 {
			b.WriteString(", ")
		}
		writeJSONString(&b, recordKeys[i])
		b.WriteString(": ")
		writeJSONString(&b, v)
	}
	b.WriteByte('}')
	return b.String()
}

// writeJSONString quotes s, escaping only quotes, backslashes and control characters.
func writeJSONString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if c < 0x20 {
				fmt.Fprintf(b, `\u%04x`, c)
				continue
			}
			b.WriteRune(c)
		}
	}
	b.WriteByte('"')
}

// Document is the unit uploaded to the vector index.
// Field names on the wire are "id", "json_data" and "vector".
type Document struct {
	ID       string    `json:"id"`
	JSONData string    `json:"json_data"`
	Vector   []float32 `json:"vector"`
}

// SearchHit is a single result of a vector query against the index.
type SearchHit struct {
	ID       string
	Score    float64
	JSONData string
}
