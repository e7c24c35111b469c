package tokenizer

import (
	"strings"
	"unicode/utf8"
)

// Longest engine longest-matching theo từ điển cho chữ Thái.
// Ngoài chữ Thái thì tách theo lớp ký tự như CharClass.
type Longest struct {
	dict   map[string]struct{}
	maxLen int
}

// NewLongest tạo mới Longest từ danh sách từ
func NewLongest(words []string) *Longest {
	l := &Longest{dict: make(map[string]struct{}, len(words))}
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		l.dict[w] = struct{}{}
		if n := utf8.RuneCountInString(w); n > l.maxLen {
			l.maxLen = n
		}
	}
	return l
}

// Tokenize tách text, đoạn chữ Thái không có trong từ điển được gom thành một token
func (l *Longest) Tokenize(text string) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); {
		c := classify(runes[i])
		if c != classThai {
			j := runEnd(runes, i, c)
			out = append(out, string(runes[i:j]))
			i = j
			continue
		}

		if n := l.match(runes, i); n > 0 {
			out = append(out, string(runes[i:i+n]))
			i += n
			continue
		}

		// Gom chữ không rõ cho đến khi gặp một từ trong từ điển
		j := i + 1
		for j < len(runes) && classify(runes[j]) == classThai {
			if !isDependent(runes[j]) && l.match(runes, j) > 0 {
				break
			}
			j++
		}
		out = append(out, string(runes[i:j]))
		i = j
	}
	return out
}

// match độ dài (rune) của từ dài nhất bắt đầu tại i, 0 nếu không có
func (l *Longest) match(runes []rune, i int) int {
	n := l.maxLen
	if rest := len(runes) - i; rest < n {
		n = rest
	}
	for ; n > 0; n-- {
		if _, ok := l.dict[string(runes[i:i+n])]; !ok {
			continue
		}
		if end := i + n; end == len(runes) || !isDependent(runes[end]) {
			return n
		}
	}
	return 0
}
