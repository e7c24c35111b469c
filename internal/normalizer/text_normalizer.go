package normalizer

import (
	"strings"
)

// maxPasses giới hạn số vòng lặp đến điểm bất động
const maxPasses = 8

// Normalizer chuẩn hoá văn bản địa chỉ thô trước khi tách từ
type Normalizer struct {
	boilerplate      []string
	locationKeywords []string
	bangkokAliases   []string
	bangkokFormal    string
}

// NewNormalizer tạo mới Normalizer từ rules
func NewNormalizer(rules *RulesConfig) *Normalizer {
	return &Normalizer{
		boilerplate:      nonEmpty(rules.Boilerplate),
		locationKeywords: nonEmpty(rules.LocationKeywords),
		bangkokAliases:   nonEmpty(rules.BangkokAliases),
		bangkokFormal:    rules.BangkokFormal,
	}
}

// NewDefaultNormalizer tạo Normalizer với rules nhúng sẵn
func NewDefaultNormalizer() (*Normalizer, error) {
	rules, err := LoadRulesConfig()
	if err != nil {
		return nil, err
	}
	return NewNormalizer(rules), nil
}

// Normalize chuẩn hoá văn bản thô. Hàm toàn phần (kể cả với UTF-8 lỗi), output không có newline
// và không có chuỗi nhiều dấu cách liên tiếp.
//
// Các bước được lặp lại cho đến khi chuỗi không đổi, vì xoá một cụm
// boilerplate có thể làm lộ ra một cụm khác.
func (n *Normalizer) Normalize(raw string) string {
	// byte UTF-8 lỗi bị bỏ, tokenizer làm việc trên []rune
	text := strings.ToValidUTF8(raw, "")
	for i := 0; i < maxPasses; i++ {
		next := n.normalizeOnce(text)
		if next == text {
			return next
		}
		text = next
	}
	return text
}

func (n *Normalizer) normalizeOnce(text string) string {
	// 1. Trim (sau khi đưa về NFC)
	text = ToNFC(text)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSpace(text)

	// 2. Xoá boilerplate của đơn vị vận chuyển
	for _, phrase := range n.boilerplate {
		text = strings.ReplaceAll(text, phrase, "")
	}

	// 3. Newline thành dấu cách
	text = strings.ReplaceAll(text, "\n-", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	// 4. ": " thành dấu cách
	text = strings.ReplaceAll(text, ": ", " ")

	// 5. Gộp dấu cách
	parts := strings.Split(text, " ")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

// CleanLocation xoá từ khoá hành chính còn sót và chuẩn hoá viết tắt Bangkok
func (n *Normalizer) CleanLocation(text string) string {
	for _, alias := range n.bangkokAliases {
		text = strings.ReplaceAll(text, alias, n.bangkokFormal)
	}
	for _, kw := range n.locationKeywords {
		text = strings.ReplaceAll(text, kw, "")
	}
	return strings.Join(strings.Fields(text), " ")
}

func nonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
