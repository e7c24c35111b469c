package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/internal/resolver"
	"github.com/thai-address-parser/internal/tagger"
)

// emailPattern chỉ dùng khi không có token EMAIL
var emailPattern = regexp.MustCompile(`\b[\w.-]+?@\w+?\.\w+?\b`)

const (
	bangkokShort  = "กรุงเทพ"
	bangkokFormal = "กรุงเทพมหานคร"
)

// Assemble dựng ParsedAddress từ token và nhãn. text là văn bản đã chuẩn
// hoá, tokens và tags cùng độ dài.
func (ap *AddressParser) Assemble(text string, tokens []string, tags []tagger.Tag) models.ParsedAddress {
	byTag := make(map[tagger.Tag][]string)
	for i, tok := range tokens {
		byTag[tags[i]] = append(byTag[tags[i]], tok)
	}

	out := models.ParsedAddress{
		Text:     text,
		Name:     strings.TrimSpace(strings.Join(byTag[tagger.TagName], "")),
		Address:  strings.TrimSpace(strings.Join(byTag[tagger.TagAddr], "")),
		Location: strings.TrimSpace(strings.Join(byTag[tagger.TagLoc], "")),
	}

	out.PostalCode = postalCode(tokens, tags)
	out.PhoneNumber = phoneNumber(byTag[tagger.TagPhone])

	if out.Location != "" {
		province := ap.resolver.Resolve(out.Location, resolver.OptionProvince, "", "")
		if province == bangkokShort {
			province = bangkokFormal
		}
		out.Province = province
		out.District = ap.resolver.Resolve(out.Location, resolver.OptionDistrict, province, out.PostalCode)
		out.Subdistrict = ap.resolver.Resolve(out.Location, resolver.OptionSubdistrict, province, out.PostalCode)
	}

	out.Email = strings.TrimSpace(strings.Join(byTag[tagger.TagEmail], ""))
	if out.Email == "" {
		out.Email = emailPattern.FindString(text)
	}
	return out
}

// postalCode mỗi đoạn POST liên tiếp là một mã, các mã cách nhau "; "
func postalCode(tokens []string, tags []tagger.Tag) string {
	var codes []string
	for _, span := range tagger.Spans(tokens, tags) {
		if span.Tag == tagger.TagPost {
			codes = append(codes, span.Text)
		}
	}
	return keepDigitsAndSemicolons(strings.Join(codes, "; "))
}

func phoneNumber(tokens []string) string {
	parts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		parts = append(parts, digitsOnly(strings.ReplaceAll(tok, "-", "")))
	}
	return keepDigitsAndSemicolons(strings.Join(parts, " "))
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, s)
}

func keepDigitsAndSemicolons(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == ';' {
			return r
		}
		return -1
	}, s)
}
