package tokenizer

import "unicode"

type charClass int

const (
	classSpace charClass = iota
	classDigit
	classThai
	classLatin
	classOther
)

func classify(r rune) charClass {
	switch {
	case unicode.IsSpace(r):
		return classSpace
	case unicode.IsDigit(r):
		return classDigit
	case r >= 0x0E00 && r <= 0x0E7F:
		return classThai
	case unicode.IsLetter(r):
		return classLatin
	default:
		return classOther
	}
}

// isDependent rune không thể đứng đầu một từ (dấu, nguyên âm phụ thuộc phía sau)
func isDependent(r rune) bool {
	if unicode.Is(unicode.Mn, r) {
		return true
	}
	switch r {
	case 'ะ', 'า', 'ำ', 'ๅ':
		return true
	}
	return false
}

// runEnd vị trí kết thúc của đoạn cùng lớp ký tự bắt đầu tại i.
// Dấu câu luôn đứng riêng một token.
func runEnd(runes []rune, i int, c charClass) int {
	if c == classOther {
		return i + 1
	}
	j := i + 1
	for j < len(runes) && classify(runes[j]) == c {
		j++
	}
	return j
}

// CharClass engine chỉ tách theo lớp ký tự (khoảng trắng, số, chữ Thái, chữ Latin, dấu câu)
type CharClass struct{}

// NewCharClass tạo mới CharClass
func NewCharClass() *CharClass {
	return &CharClass{}
}

// Tokenize tách text theo lớp ký tự
func (CharClass) Tokenize(text string) []string {
	runes := []rune(text)
	var out []string
	for i := 0; i < len(runes); {
		j := runEnd(runes, i, classify(runes[i]))
		out = append(out, string(runes[i:j]))
		i = j
	}
	return out
}
