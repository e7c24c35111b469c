package normalizer

import (
	"strings"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/unicode/norm"
)

// ToNFC đưa chuỗi về dạng NFC, vowel và tone mark tiếng Thái giữ nguyên thứ tự gõ
func ToNFC(s string) string {
	return norm.NFC.String(s)
}

// Romanize phiên âm sang ASCII lowercase, dùng cho normalized_name trong search index
func Romanize(s string) string {
	out := strings.ToLower(unidecode.Unidecode(s))
	return strings.Join(strings.Fields(out), " ")
}
