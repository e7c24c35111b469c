// Package features tính feature cho từng token để đưa vào sequence labeler.
package features

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Attribute keys. Giữ nguyên tên để model đã train vẫn dùng được.
const (
	KeyBias          = "bias"
	KeyWord          = "word.word"
	KeyPrefix3       = "word[:3]"
	KeyIsSpace       = "word.isspace()"
	KeyIsStopword    = "word.is_stopword()"
	KeyIsDigit       = "word.isdigit()"
	KeyIsLen5        = "word.islen5"
	KeyPrevWord      = "-1.word.prevword"
	KeyPrevSpace     = "-1.word.isspace()"
	KeyPrevStopword  = "-1.word.is_stopword()"
	KeyPrevDigit     = "-1.word.isdigit()"
	KeyBOS           = "BOS"
	KeyNextWord      = "+1.word.nextword"
	KeyNextSpace     = "+1.word.isspace()"
	KeyNextStopword  = "+1.word.is_stopword()"
	KeyNextDigit     = "+1.word.isdigit()"
	KeyEOS           = "EOS"
	attributeJoinSep = "="
)

// StopwordLexicon kiểm tra stopword
type StopwordLexicon interface {
	IsStopword(word string) bool
}

// Neighbor feature của token liền trước hoặc liền sau
type Neighbor struct {
	Word       string `json:"word"`
	IsSpace    bool   `json:"is_space"`
	IsStopword bool   `json:"is_stopword"`
	IsDigit    bool   `json:"is_digit"`
}

// Record feature của một token trong ngữ cảnh.
// Prev == nil nghĩa là đầu chuỗi (BOS), Next == nil nghĩa là cuối chuỗi (EOS).
type Record struct {
	Word       string    `json:"word"`
	Prefix3    string    `json:"prefix3"`
	IsSpace    bool      `json:"is_space"`
	IsStopword bool      `json:"is_stopword"`
	IsDigit    bool      `json:"is_digit"`
	IsLen5     bool      `json:"is_len5"`
	Prev       *Neighbor `json:"prev,omitempty"`
	Next       *Neighbor `json:"next,omitempty"`
}

// BOS token đầu chuỗi
func (r Record) BOS() bool { return r.Prev == nil }

// EOS token cuối chuỗi
func (r Record) EOS() bool { return r.Next == nil }

// Attributes trải phẳng Record thành map attribute -> weight cho CRF.
// Feature chuỗi thành "key=value" với weight 1, boolean false bị bỏ qua.
func (r Record) Attributes() map[string]float64 {
	attrs := make(map[string]float64, 12)
	attrs[KeyBias] = 1.0
	attrs[KeyWord+attributeJoinSep+r.Word] = 1.0
	attrs[KeyPrefix3+attributeJoinSep+r.Prefix3] = 1.0
	setFlag(attrs, KeyIsSpace, r.IsSpace)
	setFlag(attrs, KeyIsStopword, r.IsStopword)
	setFlag(attrs, KeyIsDigit, r.IsDigit)
	setFlag(attrs, KeyIsLen5, r.IsLen5)

	if r.Prev != nil {
		attrs[KeyPrevWord+attributeJoinSep+r.Prev.Word] = 1.0
		setFlag(attrs, KeyPrevSpace, r.Prev.IsSpace)
		setFlag(attrs, KeyPrevStopword, r.Prev.IsStopword)
		setFlag(attrs, KeyPrevDigit, r.Prev.IsDigit)
	} else {
		attrs[KeyBOS] = 1.0
	}

	if r.Next != nil {
		attrs[KeyNextWord+attributeJoinSep+r.Next.Word] = 1.0
		setFlag(attrs, KeyNextSpace, r.Next.IsSpace)
		setFlag(attrs, KeyNextStopword, r.Next.IsStopword)
		setFlag(attrs, KeyNextDigit, r.Next.IsDigit)
	} else {
		attrs[KeyEOS] = 1.0
	}
	return attrs
}

func setFlag(attrs map[string]float64, key string, on bool) {
	if on {
		attrs[key] = 1.0
	}
}

// Extractor tính feature, chỉ phụ thuộc vào lexicon
type Extractor struct {
	lexicon StopwordLexicon
}

// NewExtractor tạo mới Extractor
func NewExtractor(lexicon StopwordLexicon) *Extractor {
	return &Extractor{lexicon: lexicon}
}

// Extract feature của token i. i phải nằm trong [0, len(tokens)).
func (e *Extractor) Extract(tokens []string, i int) Record {
	word := tokens[i]
	trimmed := strings.TrimSpace(word)
	rec := Record{
		Word:       word,
		Prefix3:    prefix(word, 3),
		IsSpace:    isSpace(word),
		IsStopword: e.lexicon.IsStopword(word),
		IsDigit:    isDigit(word),
		IsLen5:     isDigit(trimmed) && utf8.RuneCountInString(trimmed) == 5,
	}
	if i > 0 {
		rec.Prev = e.neighbor(tokens[i-1])
	}
	if i < len(tokens)-1 {
		rec.Next = e.neighbor(tokens[i+1])
	}
	return rec
}

// Sequence feature cho toàn bộ chuỗi token
func (e *Extractor) Sequence(tokens []string) []Record {
	out := make([]Record, len(tokens))
	for i := range tokens {
		out[i] = e.Extract(tokens, i)
	}
	return out
}

// Attributes feature dạng map cho toàn bộ chuỗi
func Attributes(records []Record) []map[string]float64 {
	out := make([]map[string]float64, len(records))
	for i, r := range records {
		out[i] = r.Attributes()
	}
	return out
}

func (e *Extractor) neighbor(word string) *Neighbor {
	return &Neighbor{
		Word:       word,
		IsSpace:    isSpace(word),
		IsStopword: e.lexicon.IsStopword(word),
		IsDigit:    isDigit(word),
	}
}

func prefix(s string, n int) string {
	for i := range s {
		if n == 0 {
			return s[:i]
		}
		n--
	}
	return s
}

// isSpace giống str.isspace: chuỗi rỗng là false
func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// isDigit giống str.isdigit: chuỗi rỗng là false, chấp nhận chữ số Thái
func isDigit(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
