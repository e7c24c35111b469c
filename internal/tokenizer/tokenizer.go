// Package tokenizer tách văn bản tiếng Thái đã chuẩn hoá thành token.
//
// Mọi engine phải trả về các đoạn nối lại đúng bằng input, không hở,
// không chồng lấn.
package tokenizer

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Engine names
const (
	EngineLongest   = "longest"
	EngineCharClass = "charclass"
	DefaultEngine   = EngineLongest
)

var (
	// ErrUnknownEngine engine không được đăng ký
	ErrUnknownEngine = errors.New("tokenizer engine không tồn tại")
	// ErrNonConformant các đoạn không nối lại được thành input
	ErrNonConformant = errors.New("token không khớp với văn bản gốc")
)

// Tokenizer tách text thành các đoạn liên tiếp
type Tokenizer interface {
	Tokenize(text string) []string
}

// Token một đoạn của văn bản đã chuẩn hoá, Offset tính theo rune
type Token struct {
	Text   string `json:"text"`
	Offset int    `json:"offset"`
}

// Split gắn offset cho các đoạn và kiểm tra chúng phủ đúng text
func Split(text string, pieces []string) ([]Token, error) {
	tokens := make([]Token, 0, len(pieces))
	rest := text
	offset := 0
	for i, p := range pieces {
		if p == "" || !strings.HasPrefix(rest, p) {
			return nil, fmt.Errorf("%w: đoạn %d %q", ErrNonConformant, i, p)
		}
		tokens = append(tokens, Token{Text: p, Offset: offset})
		rest = rest[len(p):]
		offset += utf8.RuneCountInString(p)
	}
	if rest != "" {
		return nil, fmt.Errorf("%w: còn dư %q", ErrNonConformant, rest)
	}
	return tokens, nil
}

// Texts lấy phần text của các token
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

// Registry chọn engine theo tên
type Registry struct {
	engines       map[string]Tokenizer
	defaultEngine string
}

// NewRegistry tạo mới Registry, defaultEngine phải có trong engines
func NewRegistry(defaultEngine string, engines map[string]Tokenizer) (*Registry, error) {
	if _, ok := engines[defaultEngine]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, defaultEngine)
	}
	return &Registry{engines: engines, defaultEngine: defaultEngine}, nil
}

// Get lấy engine theo tên, tên rỗng dùng engine mặc định
func (r *Registry) Get(name string) (Tokenizer, error) {
	if name == "" {
		name = r.defaultEngine
	}
	t, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	return t, nil
}

// Default tên engine mặc định
func (r *Registry) Default() string {
	return r.defaultEngine
}

// Names danh sách engine đã đăng ký
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for n := range r.engines {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
