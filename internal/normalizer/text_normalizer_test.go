package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNormalizer(t *testing.T) *Normalizer {
	t.Helper()
	n, err := NewDefaultNormalizer()
	require.NoError(t, err)
	return n
}

func TestNormalize_Steps(t *testing.T) {
	n := newTestNormalizer(t)

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Trim",
			input:    "   สมชาย ใจดี   ",
			expected: "สมชาย ใจดี",
		},
		{
			name:     "Boilerplate",
			input:    "จัดส่ง ผู้รับ สมชาย ใจดี",
			expected: "สมชาย ใจดี",
		},
		{
			name:     "Name marker needs trailing space",
			input:    "ชื่อ สมชาย",
			expected: "สมชาย",
		},
		{
			name:     "Newline dash",
			input:    "สมชาย\n-123 ถนนสีลม\nบางรัก",
			expected: "สมชาย 123 ถนนสีลม บางรัก",
		},
		{
			name:     "Colon space",
			input:    "โทร: 0812345678",
			expected: "โทร 0812345678",
		},
		{
			name:     "Address label",
			input:    "ที่อยู่: 99/1 ซอย 5",
			expected: "99/1 ซอย 5",
		},
		{
			name:     "Collapse spaces",
			input:    "a    b  c",
			expected: "a b c",
		},
		{
			name:     "Windows newline",
			input:    "a\r\nb",
			expected: "a b",
		},
		{
			name:     "Whitespace only",
			input:    " \n  \n ",
			expected: "",
		},
		{
			name:     "Trim before dash newline",
			input:    " \n  \n- ",
			expected: "-",
		},
		{
			name:     "Invalid UTF-8",
			input:    "นายสมชาย \xff 10330\xfe",
			expected: "นายสมชาย 10330",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, n.Normalize(tc.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n := newTestNormalizer(t)

	inputs := []string{
		"",
		"จัดจัดส่งส่ง",
		"ชื่อ\nสมชาย",
		"ชื่อ  สมชาย",
		"a :  b",
		"x:\n y",
		"  \n-\n ",
		"นาย สมชาย ใจดี\n-99/1 หมู่ 2 ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่ 50200\nโทร 081-234-5678",
		"ผู้ผู้รับรับ: สมหญิง",
		"\xff\xfe bad",
	}

	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "input %q", in)
		assert.NotContains(t, once, "\n")
		assert.NotContains(t, once, "  ")
	}
}

func TestNormalize_RevealedBoilerplate(t *testing.T) {
	n := newTestNormalizer(t)

	assert.Equal(t, "", n.Normalize("จัดจัดส่งส่ง"))
	assert.Equal(t, "สมชาย", n.Normalize("ชื่อ\nสมชาย"))
}

func TestCleanLocation(t *testing.T) {
	n := newTestNormalizer(t)

	testCases := []struct {
		input    string
		expected string
	}{
		{"แขวงลุมพินี", "ลุมพินี"},
		{"เขตปทุมวัน กทม.", "ปทุมวัน กรุงเทพมหานคร"},
		{"กทม", "กรุงเทพมหานคร"},
		{"ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่", "ศรีภูมิ เมือง เชียงใหม่"},
		{"ตำบล  หายยา ", "หายยา"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, n.CleanLocation(tc.input))
		})
	}
}

func TestRomanize(t *testing.T) {
	out := Romanize("Bang  Rak")
	assert.Equal(t, "bang rak", out)

	thai := Romanize("บางรัก")
	assert.NotEmpty(t, thai)
	assert.Equal(t, strings.ToLower(thai), thai)
}
