// Package gazetteer nạp bảng đơn vị hành chính Thái Lan (tỉnh, huyện, xã,
// mã bưu chính) và dựng các index tra cứu chỉ đọc.
package gazetteer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmpty không có dòng dữ liệu hợp lệ
	ErrEmpty = errors.New("gazetteer rỗng")
	// ErrMissingColumn thiếu cột bắt buộc
	ErrMissingColumn = errors.New("gazetteer thiếu cột")
)

// Record một dòng của gazetteer
type Record struct {
	Province    string `json:"province"`
	District    string `json:"district"`
	Subdistrict string `json:"subdistrict"`
	PostalCode  string `json:"postal_code"`
}

// Source nguồn dữ liệu gazetteer
type Source interface {
	Records(ctx context.Context) ([]Record, error)
}

// Index các bảng tra cứu dựng một lần từ gazetteer, chỉ đọc sau khi tạo.
// Slice trả về từ các method dùng chung với Index, caller không được sửa.
type Index struct {
	records      []Record
	provinces    []string
	districts    []string
	subdistricts []string

	districtsByProvince    map[string][]string
	subdistrictsByProvince map[string][]string
	districtsByPostal      map[string][]string
	subdistrictsByPostal   map[string][]string

	version string
}

// NewIndex dựng Index. Danh sách giữ thứ tự xuất hiện đầu tiên, không trùng.
func NewIndex(records []Record) (*Index, error) {
	idx := &Index{
		districtsByProvince:    make(map[string][]string),
		subdistrictsByProvince: make(map[string][]string),
		districtsByPostal:      make(map[string][]string),
		subdistrictsByPostal:   make(map[string][]string),
	}

	provinces := newOrderedSet()
	districts := newOrderedSet()
	subdistricts := newOrderedSet()
	grouped := map[string]map[string]*orderedSet{
		"dp": {}, "sp": {}, "dz": {}, "sz": {},
	}
	add := func(group, key, value string) {
		if key == "" || value == "" {
			return
		}
		set, ok := grouped[group][key]
		if !ok {
			set = newOrderedSet()
			grouped[group][key] = set
		}
		set.add(value)
	}

	hash := sha256.New()
	for _, raw := range records {
		r := Record{
			Province:    strings.TrimSpace(raw.Province),
			District:    strings.TrimSpace(raw.District),
			Subdistrict: strings.TrimSpace(raw.Subdistrict),
			PostalCode:  strings.TrimSpace(raw.PostalCode),
		}
		if r.Province == "" {
			continue
		}
		idx.records = append(idx.records, r)
		fmt.Fprintf(hash, "%s|%s|%s|%s\n", r.Province, r.District, r.Subdistrict, r.PostalCode)

		provinces.add(r.Province)
		districts.add(r.District)
		subdistricts.add(r.Subdistrict)
		add("dp", r.Province, r.District)
		add("sp", r.Province, r.Subdistrict)
		add("dz", r.PostalCode, r.District)
		add("sz", r.PostalCode, r.Subdistrict)
	}
	if len(idx.records) == 0 {
		return nil, ErrEmpty
	}

	idx.provinces = provinces.items
	idx.districts = districts.items
	idx.subdistricts = subdistricts.items
	for key, set := range grouped["dp"] {
		idx.districtsByProvince[key] = set.items
	}
	for key, set := range grouped["sp"] {
		idx.subdistrictsByProvince[key] = set.items
	}
	for key, set := range grouped["dz"] {
		idx.districtsByPostal[key] = set.items
	}
	for key, set := range grouped["sz"] {
		idx.subdistrictsByPostal[key] = set.items
	}
	idx.version = fmt.Sprintf("sha256:%x", hash.Sum(nil)[:8])
	return idx, nil
}

// Load đọc Source và dựng Index
func Load(ctx context.Context, src Source) (*Index, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, err
	}
	return NewIndex(records)
}

// Provinces danh sách tỉnh
func (idx *Index) Provinces() []string { return idx.provinces }

// Districts danh sách huyện
func (idx *Index) Districts() []string { return idx.districts }

// Subdistricts danh sách xã
func (idx *Index) Subdistricts() []string { return idx.subdistricts }

// DistrictsOfProvince huyện thuộc tỉnh
func (idx *Index) DistrictsOfProvince(province string) ([]string, bool) {
	v, ok := idx.districtsByProvince[province]
	return v, ok
}

// SubdistrictsOfProvince xã thuộc tỉnh
func (idx *Index) SubdistrictsOfProvince(province string) ([]string, bool) {
	v, ok := idx.subdistrictsByProvince[province]
	return v, ok
}

// DistrictsByPostal huyện có mã bưu chính
func (idx *Index) DistrictsByPostal(code string) ([]string, bool) {
	v, ok := idx.districtsByPostal[code]
	return v, ok
}

// SubdistrictsByPostal xã có mã bưu chính
func (idx *Index) SubdistrictsByPostal(code string) ([]string, bool) {
	v, ok := idx.subdistrictsByPostal[code]
	return v, ok
}

// Records các dòng đã chuẩn hoá
func (idx *Index) Records() []Record { return idx.records }

// Version fingerprint của dữ liệu
func (idx *Index) Version() string { return idx.version }

// Names mọi tên tỉnh, huyện, xã (dùng làm từ điển tokenizer)
func (idx *Index) Names() []string {
	out := make([]string, 0, len(idx.provinces)+len(idx.districts)+len(idx.subdistricts))
	out = append(out, idx.provinces...)
	out = append(out, idx.districts...)
	return append(out, idx.subdistricts...)
}

type orderedSet struct {
	seen  map[string]struct{}
	items []string
}

func newOrderedSet() *orderedSet {
	return &orderedSet{seen: make(map[string]struct{})}
}

func (s *orderedSet) add(v string) {
	if v == "" {
		return
	}
	if _, ok := s.seen[v]; ok {
		return
	}
	s.seen[v] = struct{}{}
	s.items = append(s.items, v)
}
