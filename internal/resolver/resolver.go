// Package resolver ánh xạ đoạn văn bản địa danh đã gán nhãn LOC về tên
// tỉnh, huyện, xã chuẩn trong gazetteer bằng fuzzy matching.
package resolver

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/thai-address-parser/internal/fuzzy"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/normalizer"
)

// Option cấp hành chính cần tìm
type Option string

const (
	OptionProvince    Option = "province"
	OptionDistrict    Option = "district"
	OptionSubdistrict Option = "subdistrict"
)

var (
	// ErrResolutionMiss không tìm được địa danh
	ErrResolutionMiss = errors.New("không xác định được địa danh")
	// ErrInvalidOption option không hợp lệ
	ErrInvalidOption = errors.New("option không hợp lệ")
)

// số ứng viên lấy từ fuzzy match
const topCandidates = 3

// bangkokColloquial tên gọi ngắn của Bangkok, luôn có trong danh sách tỉnh
const bangkokColloquial = "กรุงเทพ"

// urbanSentinel "เมือง" quá chung chung để tin khi đứng một mình
const urbanSentinel = "เมือง"

// unstrippedDistricts huyện không bỏ tên tỉnh khi lọc theo tỉnh
var unstrippedDistricts = map[string]bool{
	"พระนครศรีอยุธยา": true,
}

// ParseOption kiểm tra tên option
func ParseOption(s string) (Option, error) {
	switch o := Option(strings.ToLower(strings.TrimSpace(s))); o {
	case OptionProvince, OptionDistrict, OptionSubdistrict:
		return o, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOption, s)
}

// Resolver tra cứu địa danh trên một Index cố định
type Resolver struct {
	index      *gazetteer.Index
	normalizer *normalizer.Normalizer
	scorer     fuzzy.Scorer
	provinces  []string
}

// New tạo mới Resolver. scorer nil dùng wratio.
func New(index *gazetteer.Index, norm *normalizer.Normalizer, scorer fuzzy.Scorer) *Resolver {
	if scorer == nil {
		scorer = fuzzy.WRatio
	}
	provinces := make([]string, 0, len(index.Provinces())+1)
	provinces = append(provinces, index.Provinces()...)
	provinces = append(provinces, bangkokColloquial)

	return &Resolver{
		index:      index,
		normalizer: norm,
		scorer:     scorer,
		provinces:  provinces,
	}
}

// Resolve như Lookup nhưng trả về "" khi không tìm được
func (r *Resolver) Resolve(text string, opt Option, province, postalCode string) string {
	loc, err := r.Lookup(text, opt, province, postalCode)
	if err != nil {
		return ""
	}
	return loc
}

// Lookup tìm địa danh cấp opt trong text. province và postalCode rỗng là
// không biết. Mọi lỗi đều bọc ErrResolutionMiss.
func (r *Resolver) Lookup(text string, opt Option, province, postalCode string) (string, error) {
	if _, err := ParseOption(string(opt)); err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolutionMiss, err)
	}

	cleaned := r.normalizer.CleanLocation(scope(text, opt))
	pool := r.pool(opt, province, postalCode)

	matches, err := fuzzy.Extract(cleaned, pool, topCandidates, r.scorer)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrResolutionMiss, err)
	}

	candidates := make([]string, len(matches))
	for i, m := range matches {
		candidates[i] = m.Choice
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return utf8.RuneCountInString(candidates[i]) < utf8.RuneCountInString(candidates[j])
	})

	location := foldLeft(candidates, "", func(best, c string) string {
		if strings.Contains(cleaned, c) {
			return c
		}
		return best
	})
	if location == "" || location == urbanSentinel {
		location = matches[0].Choice
	}
	return location, nil
}

// pool danh sách ứng viên theo option và ngữ cảnh
func (r *Resolver) pool(opt Option, province, postalCode string) []string {
	if opt == OptionProvince {
		return r.provinces
	}

	if postalCode != "" {
		if _, ok := r.index.SubdistrictsByPostal(postalCode); ok {
			return r.postalPool(opt, postalCode)
		}
	}

	if province != "" {
		if opt == OptionDistrict {
			if districts, ok := r.index.DistrictsOfProvince(province); ok {
				return stripProvince(districts, province)
			}
			return r.index.Districts()
		}
		if subs, ok := r.index.SubdistrictsOfProvince(province); ok {
			return subs
		}
		return r.index.Subdistricts()
	}

	if opt == OptionDistrict {
		return r.index.Districts()
	}
	return r.index.Subdistricts()
}

func (r *Resolver) postalPool(opt Option, postalCode string) []string {
	if opt == OptionDistrict {
		if districts, ok := r.index.DistrictsByPostal(postalCode); ok {
			return districts
		}
		return r.index.Districts()
	}
	subs, _ := r.index.SubdistrictsByPostal(postalCode)
	return subs
}

// stripProvince bỏ tên tỉnh khỏi tên huyện (เมืองเชียงใหม่ -> เมือง),
// trừ các huyện trong unstrippedDistricts
func stripProvince(districts []string, province string) []string {
	seen := make(map[string]bool, len(districts))
	out := make([]string, 0, len(districts))
	for _, d := range districts {
		if !unstrippedDistricts[d] {
			d = strings.TrimSpace(strings.ReplaceAll(d, province, ""))
		}
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}
	return out
}

// scope cắt text về phần chứa cấp hành chính cần tìm
func scope(text string, opt Option) string {
	text = strings.ReplaceAll(text, "\n-", " ")
	text = strings.ReplaceAll(text, "\n", " ")

	switch opt {
	case OptionProvince:
		text = afterLast(text, "จ.")
		text = afterLast(text, "จังหวัด")
	case OptionDistrict:
		text = afterLast(text, "อ.")
		text = afterLast(text, "อำเภอ")
		text = afterLast(text, " เขต")
	case OptionSubdistrict:
		text = afterLast(text, "ต.")
		text = beforeFirst(text, "อ.")
		text = beforeFirst(text, "อำเภอ")
		text = afterLast(text, " แขวง")
		text = beforeFirst(text, " เขต")
	}
	return text
}

func afterLast(s, sep string) string {
	if i := strings.LastIndex(s, sep); i >= 0 {
		return s[i+len(sep):]
	}
	return s
}

func beforeFirst(s, sep string) string {
	if i := strings.Index(s, sep); i >= 0 {
		return s[:i]
	}
	return s
}

func foldLeft[T, A any](items []T, init A, f func(A, T) A) A {
	acc := init
	for _, item := range items {
		acc = f(acc, item)
	}
	return acc
}
