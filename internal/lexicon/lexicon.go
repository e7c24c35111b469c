// Package lexicon cung cấp danh sách stopword và từ vựng địa chỉ tiếng Thái.
package lexicon

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var lexiconYAML []byte

type lexiconFile struct {
	Stopwords  []string `yaml:"stopwords"`
	Vocabulary []string `yaml:"vocabulary"`
}

// Lexicon tập stopword và từ vựng, chỉ đọc sau khi tạo
type Lexicon struct {
	stopwords map[string]struct{}
	words     []string
}

// New tạo Lexicon từ danh sách stopword và từ vựng
func New(stopwords, vocabulary []string) *Lexicon {
	l := &Lexicon{stopwords: make(map[string]struct{}, len(stopwords))}
	seen := make(map[string]struct{})
	add := func(w string) {
		if _, ok := seen[w]; ok {
			return
		}
		seen[w] = struct{}{}
		l.words = append(l.words, w)
	}
	for _, w := range stopwords {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		l.stopwords[w] = struct{}{}
		add(w)
	}
	for _, w := range vocabulary {
		w = strings.TrimSpace(w)
		if w != "" {
			add(w)
		}
	}
	return l
}

// Load đọc lexicon nhúng sẵn, cộng thêm stopword từ config
func Load(extraStopwords []string) (*Lexicon, error) {
	var f lexiconFile
	if err := yaml.Unmarshal(lexiconYAML, &f); err != nil {
		return nil, fmt.Errorf("lỗi đọc lexicon.yaml: %w", err)
	}
	return New(append(f.Stopwords, extraStopwords...), f.Vocabulary), nil
}

// IsStopword kiểm tra word có phải stopword không
func (l *Lexicon) IsStopword(word string) bool {
	_, ok := l.stopwords[word]
	return ok
}

// Words trả về stopword và từ vựng, theo thứ tự xuất hiện
func (l *Lexicon) Words() []string {
	return append([]string(nil), l.words...)
}
