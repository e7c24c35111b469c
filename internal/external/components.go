// Package external bọc các thư viện phân tích địa chỉ bên ngoài thành
// Classifier cho bộ gán nhãn.
package external

import (
	"strings"
	"unicode"

	"github.com/thai-address-parser/internal/tagger"
)

// Component một thành phần libpostal trả về
type Component struct {
	Label string
	Value string
}

// componentTags nhãn libpostal sang Tag
var componentTags = map[string]tagger.Tag{
	"house":          tagger.TagName,
	"house_number":   tagger.TagAddr,
	"road":           tagger.TagAddr,
	"unit":           tagger.TagAddr,
	"level":          tagger.TagAddr,
	"staircase":      tagger.TagAddr,
	"entrance":       tagger.TagAddr,
	"po_box":         tagger.TagAddr,
	"near":           tagger.TagAddr,
	"category":       tagger.TagAddr,
	"suburb":         tagger.TagLoc,
	"city_district":  tagger.TagLoc,
	"city":           tagger.TagLoc,
	"island":         tagger.TagLoc,
	"state_district": tagger.TagLoc,
	"state":          tagger.TagLoc,
	"country_region": tagger.TagLoc,
	"country":        tagger.TagLoc,
	"postcode":       tagger.TagPost,
}

// LabelTokens gán nhãn cho từng token theo component chứa nó. Token không
// thuộc component nào: chuỗi số dài là PHONE, có @ là EMAIL, còn lại OTHER.
func LabelTokens(words []string, comps []Component) []string {
	labels := make([]string, len(words))
	for i, w := range words {
		labels[i] = string(tokenTag(w, comps))
	}
	return labels
}

func tokenTag(word string, comps []Component) tagger.Tag {
	w := strings.ToLower(strings.TrimSpace(word))
	if w == "" {
		return tagger.TagOther
	}
	for _, c := range comps {
		tag, ok := componentTags[c.Label]
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(c.Value), w) {
			return tag
		}
	}
	switch {
	case strings.Contains(w, "@"):
		return tagger.TagEmail
	case countDigits(w) >= 9:
		return tagger.TagPhone
	}
	return tagger.TagOther
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			n++
		}
	}
	return n
}
