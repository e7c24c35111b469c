// Package fuzzy chấm điểm độ giống nhau giữa hai chuỗi (0..100) và chọn
// các ứng viên gần nhất trong một danh sách.
package fuzzy

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

var (
	// ErrEmptyQuery query rỗng sau khi xử lý
	ErrEmptyQuery = errors.New("query rỗng")
	// ErrEmptyPool không có ứng viên
	ErrEmptyPool = errors.New("danh sách ứng viên rỗng")
	// ErrNoMatch mọi ứng viên đều 0 điểm
	ErrNoMatch = errors.New("không có ứng viên phù hợp")
	// ErrUnknownScorer tên scorer không hỗ trợ
	ErrUnknownScorer = errors.New("scorer không hỗ trợ")
)

// Tên scorer
const (
	ScorerWRatio      = "wratio"
	ScorerJaroWinkler = "jaro_winkler"
)

// Scorer trả về điểm 0..100 cho hai chuỗi đã qua Process
type Scorer func(a, b string) int

// Match một ứng viên và điểm của nó
type Match struct {
	Choice string `json:"choice"`
	Score  int    `json:"score"`
	Index  int    `json:"index"`
}

// Get trả về scorer theo tên, rỗng là wratio
func Get(name string) (Scorer, error) {
	switch name {
	case "", ScorerWRatio:
		return WRatio, nil
	case ScorerJaroWinkler:
		return JaroWinkler, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScorer, name)
	}
}

// Process giữ chữ, dấu kết hợp và số; các ký tự khác thành khoảng trắng,
// chữ thường, bỏ khoảng trắng hai đầu
func Process(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsDigit(r) {
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteByte(' ')
	}
	return strings.TrimSpace(b.String())
}

// Extract chấm điểm query với từng ứng viên và trả về tối đa limit kết
// quả, điểm giảm dần, cùng điểm giữ thứ tự trong choices.
func Extract(query string, choices []string, limit int, scorer Scorer) ([]Match, error) {
	if len(choices) == 0 {
		return nil, ErrEmptyPool
	}
	q := Process(query)
	if q == "" {
		return nil, ErrEmptyQuery
	}
	if scorer == nil {
		scorer = WRatio
	}

	matches := make([]Match, 0, len(choices))
	best := 0
	for i, c := range choices {
		score := scorer(q, Process(c))
		if score > best {
			best = score
		}
		matches = append(matches, Match{Choice: c, Score: score, Index: i})
	}
	if best == 0 {
		return nil, ErrNoMatch
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}
