package tagger

import (
	"strings"
	"unicode/utf8"
)

// Run một đoạn nhãn liên tiếp giống nhau
type Run struct {
	Tag    Tag `json:"tag"`
	Length int `json:"length"`
}

// MergeSpans run-length encode chuỗi nhãn, giữ nguyên thứ tự
func MergeSpans(tags []Tag) []Run {
	var runs []Run
	for _, tag := range tags {
		if n := len(runs); n > 0 && runs[n-1].Tag == tag {
			runs[n-1].Length++
			continue
		}
		runs = append(runs, Run{Tag: tag, Length: 1})
	}
	return runs
}

// Expand phát lại các Run thành chuỗi nhãn ban đầu
func Expand(runs []Run) []Tag {
	var tags []Tag
	for _, r := range runs {
		for i := 0; i < r.Length; i++ {
			tags = append(tags, r.Tag)
		}
	}
	return tags
}

// Span một đoạn token cùng nhãn. Start/End là chỉ số token [Start, End),
// StartChar/EndChar là offset theo rune trong văn bản đã chuẩn hoá.
type Span struct {
	Tag       Tag    `json:"tag"`
	Text      string `json:"text"`
	Start     int    `json:"start"`
	End       int    `json:"end"`
	StartChar int    `json:"start_char"`
	EndChar   int    `json:"end_char"`
}

// Spans ghép token theo kết quả MergeSpans. tokens và tags phải cùng độ dài.
func Spans(tokens []string, tags []Tag) []Span {
	spans := make([]Span, 0)
	pos, char := 0, 0
	for _, r := range MergeSpans(tags) {
		text := strings.Join(tokens[pos:pos+r.Length], "")
		width := utf8.RuneCountInString(text)
		spans = append(spans, Span{
			Tag:       r.Tag,
			Text:      text,
			Start:     pos,
			End:       pos + r.Length,
			StartChar: char,
			EndChar:   char + width,
		})
		pos += r.Length
		char += width
	}
	return spans
}

// Entity span để hiển thị (highlight), bỏ qua OTHER
type Entity struct {
	Start int    `json:"start"`
	End   int    `json:"end"`
	Label Tag    `json:"label"`
	Color string `json:"color"`
}

// Entities danh sách entity cho phần hiển thị
func Entities(tokens []string, tags []Tag) []Entity {
	entities := make([]Entity, 0)
	for _, s := range Spans(tokens, tags) {
		if s.Tag == TagOther {
			continue
		}
		entities = append(entities, Entity{
			Start: s.StartChar,
			End:   s.EndChar,
			Label: s.Tag,
			Color: Colors[s.Tag],
		})
	}
	return entities
}
