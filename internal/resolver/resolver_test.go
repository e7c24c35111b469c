package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thai-address-parser/internal/fuzzy"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/normalizer"
)

func newTestResolver(t *testing.T, records []gazetteer.Record) *Resolver {
	t.Helper()
	var (
		idx *gazetteer.Index
		err error
	)
	if records == nil {
		idx, err = gazetteer.Load(context.Background(), gazetteer.EmbeddedSource{})
	} else {
		idx, err = gazetteer.NewIndex(records)
	}
	require.NoError(t, err)

	norm, err := normalizer.NewDefaultNormalizer()
	require.NoError(t, err)
	return New(idx, norm, fuzzy.WRatio)
}

func TestResolve_Bangkok(t *testing.T) {
	r := newTestResolver(t, nil)
	text := "แขวงลุมพินี เขตปทุมวัน กรุงเทพมหานคร"

	assert.Equal(t, "กรุงเทพมหานคร", r.Resolve(text, OptionProvince, "", ""))
	assert.Equal(t, "ปทุมวัน", r.Resolve(text, OptionDistrict, "กรุงเทพมหานคร", "10330"))
	assert.Equal(t, "ลุมพินี", r.Resolve(text, OptionSubdistrict, "กรุงเทพมหานคร", "10330"))
}

func TestResolve_ProvinceMarkers(t *testing.T) {
	r := newTestResolver(t, nil)
	text := "ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่"

	assert.Equal(t, "เชียงใหม่", r.Resolve(text, OptionProvince, "", ""))
	assert.Equal(t, "เมืองเชียงใหม่", r.Resolve(text, OptionDistrict, "เชียงใหม่", "50200"))
	assert.Equal(t, "ศรีภูมิ", r.Resolve(text, OptionSubdistrict, "เชียงใหม่", "50200"))
}

func TestResolve_BangkokAbbreviation(t *testing.T) {
	r := newTestResolver(t, nil)
	assert.Equal(t, "กรุงเทพมหานคร", r.Resolve("กทม", OptionProvince, "", ""))
	assert.Equal(t, "กรุงเทพมหานคร", r.Resolve("จ.กทม.", OptionProvince, "", ""))
}

func TestResolve_ContainmentPrefersLongestContained(t *testing.T) {
	r := newTestResolver(t, []gazetteer.Record{
		{Province: "กรุงเทพมหานคร", District: "บางรัก", Subdistrict: "สีลม", PostalCode: "10500"},
		{Province: "กรุงเทพมหานคร", District: "บางรัก", Subdistrict: "สีลมเหนือ", PostalCode: "10500"},
		{Province: "กรุงเทพมหานคร", District: "ปทุมวัน", Subdistrict: "ลุมพินี", PostalCode: "10330"},
	})

	assert.Equal(t, "สีลม", r.Resolve("สีลม", OptionSubdistrict, "", ""))
	assert.Equal(t, "สีลมเหนือ", r.Resolve("สีลมเหนือ", OptionSubdistrict, "", ""))
}

func TestResolve_IrregularDistrictKeepsProvinceName(t *testing.T) {
	r := newTestResolver(t, nil)
	got := r.Resolve("อ.พระนครศรีอยุธยา", OptionDistrict, "พระนครศรีอยุธยา", "")
	assert.Equal(t, "พระนครศรีอยุธยา", got)
}

func TestLookup_Miss(t *testing.T) {
	r := newTestResolver(t, nil)

	testCases := []struct {
		name string
		text string
		opt  Option
	}{
		{"empty province", "", OptionProvince},
		{"empty subdistrict", "", OptionSubdistrict},
		{"keywords only", "จังหวัด", OptionProvince},
		{"punctuation", "---", OptionDistrict},
		{"no shared characters", "Chiang Mai", OptionProvince},
		{"bad option", "เชียงใหม่", Option("village")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Lookup(tc.text, tc.opt, "", "")
			assert.ErrorIs(t, err, ErrResolutionMiss)
			assert.Equal(t, "", r.Resolve(tc.text, tc.opt, "", ""))
		})
	}
}

func TestPool(t *testing.T) {
	r := newTestResolver(t, nil)

	provinces := r.pool(OptionProvince, "เชียงใหม่", "50200")
	assert.Contains(t, provinces, "กรุงเทพ")
	assert.Len(t, provinces, len(r.index.Provinces())+1)

	assert.Equal(t, []string{"ลุมพินี", "รองเมือง", "วังใหม่", "ปทุมวัน"}, r.pool(OptionSubdistrict, "", "10330"))
	assert.Equal(t, []string{"ปทุมวัน"}, r.pool(OptionDistrict, "เชียงใหม่", "10330"))

	assert.Equal(t, []string{"เมือง", "สันทราย", "หางดง"}, r.pool(OptionDistrict, "เชียงใหม่", ""))
	assert.Equal(t, []string{"พระนครศรีอยุธยา", "บางปะอิน"}, r.pool(OptionDistrict, "พระนครศรีอยุธยา", "99999"))

	assert.Equal(t, r.index.Subdistricts(), r.pool(OptionSubdistrict, "ไม่มีจังหวัดนี้", ""))
	assert.Equal(t, r.index.Districts(), r.pool(OptionDistrict, "", ""))
}

func TestScope(t *testing.T) {
	testCases := []struct {
		text     string
		opt      Option
		expected string
	}{
		{"ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่", OptionProvince, "เชียงใหม่"},
		{"ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่", OptionDistrict, "เมือง จ.เชียงใหม่"},
		{"ต.ศรีภูมิ อ.เมือง จ.เชียงใหม่", OptionSubdistrict, "ศรีภูมิ "},
		{"ถนนพระราม แขวงลุมพินี เขตปทุมวัน", OptionSubdistrict, "ลุมพินี"},
		{"ถนนพระราม แขวงลุมพินี เขตปทุมวัน", OptionDistrict, "ปทุมวัน"},
		{"ลุมพินี\n-ปทุมวัน", OptionProvince, "ลุมพินี ปทุมวัน"},
		{"ไม่มี marker", OptionDistrict, "ไม่มี marker"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.opt)+"/"+tc.text, func(t *testing.T) {
			assert.Equal(t, tc.expected, scope(tc.text, tc.opt))
		})
	}
}

func TestParseOption(t *testing.T) {
	opt, err := ParseOption(" District ")
	require.NoError(t, err)
	assert.Equal(t, OptionDistrict, opt)

	_, err = ParseOption("village")
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestFoldLeft(t *testing.T) {
	sum := foldLeft([]int{1, 2, 3}, 10, func(acc, x int) int { return acc + x })
	assert.Equal(t, 16, sum)
}
