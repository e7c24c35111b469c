// Package training chuẩn bị corpus gán nhãn, train và đánh giá model CRF
// cho bộ gán nhãn địa chỉ.
package training

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/thai-address-parser/internal/tagger"
)

// ErrInvalidSpan span sai định dạng [start, stop, "label"]
var ErrInvalidSpan = errors.New("span không hợp lệ")

// LabelsMap tên nhãn của công cụ gán nhãn sang Tag
var LabelsMap = map[string]tagger.Tag{
	"ชื่อ":              tagger.TagName,
	"ที่อยู่ย่อย":       tagger.TagAddr,
	"ที่อยู่ - พื้นที่": tagger.TagLoc,
	"รหัสไปรษณีย์":      tagger.TagPost,
	"เบอร์โทร":          tagger.TagPhone,
	"อีเมล์":            tagger.TagEmail,
}

// MapLabel nhãn không có trong LabelsMap thành OTHER
func MapLabel(name string) tagger.Tag {
	if tag, ok := LabelsMap[name]; ok {
		return tag
	}
	return tagger.TagOther
}

// Span đoạn [Start, Stop) theo rune trong Text, kèm tên nhãn gốc
type Span struct {
	Start int
	Stop  int
	Label string
}

// UnmarshalJSON đọc dạng mảng [start, stop, "label"]
func (s *Span) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSpan, err)
	}
	if len(raw) != 3 {
		return fmt.Errorf("%w: cần 3 phần tử, có %d", ErrInvalidSpan, len(raw))
	}
	if err := json.Unmarshal(raw[0], &s.Start); err != nil {
		return fmt.Errorf("%w: start: %w", ErrInvalidSpan, err)
	}
	if err := json.Unmarshal(raw[1], &s.Stop); err != nil {
		return fmt.Errorf("%w: stop: %w", ErrInvalidSpan, err)
	}
	if err := json.Unmarshal(raw[2], &s.Label); err != nil {
		return fmt.Errorf("%w: label: %w", ErrInvalidSpan, err)
	}
	return nil
}

// MarshalJSON ghi dạng mảng [start, stop, "label"]
func (s Span) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{s.Start, s.Stop, s.Label})
}

// Example một địa chỉ đã gán nhãn
type Example struct {
	Text   string `json:"text"`
	Labels []Span `json:"labels"`
}

// Labeled có ít nhất một span
func (e Example) Labeled() bool {
	return len(e.Labels) > 0
}

// ReadCorpusFile đọc file JSON lines
func ReadCorpusFile(path string) ([]Example, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mở corpus: %w", err)
	}
	defer f.Close()
	return ReadCorpus(f)
}

// ReadCorpus mỗi dòng không rỗng là một Example
func ReadCorpus(r io.Reader) ([]Example, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var examples []Example
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		var ex Example
		if err := json.Unmarshal([]byte(text), &ex); err != nil {
			return nil, fmt.Errorf("dòng %d: %w", line, err)
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("đọc corpus: %w", err)
	}
	return examples, nil
}
