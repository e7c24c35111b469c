package services

import (
	"errors"
	"strings"

	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/search"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

var (
	// ErrProvinceNotFound tỉnh không có trong gazetteer
	ErrProvinceNotFound = errors.New("tỉnh không tồn tại")
	// ErrPostalNotFound mã bưu chính không có trong gazetteer
	ErrPostalNotFound = errors.New("mã bưu chính không tồn tại")
	// ErrSearchUnavailable chưa cấu hình Meilisearch
	ErrSearchUnavailable = errors.New("chưa cấu hình Meilisearch")
)

// Searcher index tìm kiếm đơn vị hành chính
type Searcher interface {
	Search(query string, level int, province string, limit int) ([]search.Document, error)
	BuildIndexes() error
	SeedDocuments(docs []search.Document) (int, error)
}

// GazetteerService tra cứu dữ liệu hành chính
type GazetteerService struct {
	index     *gazetteer.Index
	searcher  Searcher // nil là không có tìm kiếm
	provinces []string
}

// NewGazetteerService tạo mới GazetteerService
func NewGazetteerService(index *gazetteer.Index, searcher Searcher) *GazetteerService {
	return &GazetteerService{
		index:     index,
		searcher:  searcher,
		provinces: sortThai(index.Provinces()),
	}
}

// sortThai sắp xếp theo thứ tự từ điển tiếng Thái, không đổi slice gốc
func sortThai(names []string) []string {
	out := append([]string(nil), names...)
	collate.New(language.Thai).SortStrings(out)
	return out
}

// Version phiên bản gazetteer
func (gs *GazetteerService) Version() string {
	return gs.index.Version()
}

// Provinces danh sách tỉnh đã sắp xếp
func (gs *GazetteerService) Provinces() []string {
	return gs.provinces
}

// Districts danh sách huyện của một tỉnh
func (gs *GazetteerService) Districts(province string) ([]string, error) {
	districts, ok := gs.index.DistrictsOfProvince(strings.TrimSpace(province))
	if !ok {
		return nil, ErrProvinceNotFound
	}
	return sortThai(districts), nil
}

// Postal huyện và xã dùng một mã bưu chính
func (gs *GazetteerService) Postal(code string) ([]string, []string, error) {
	code = strings.TrimSpace(code)
	subdistricts, ok := gs.index.SubdistrictsByPostal(code)
	if !ok {
		return nil, nil, ErrPostalNotFound
	}
	districts, _ := gs.index.DistrictsByPostal(code)
	return sortThai(districts), sortThai(subdistricts), nil
}

// Search tìm trên Meilisearch
func (gs *GazetteerService) Search(query, level, province string, limit int) ([]search.Document, error) {
	if gs.searcher == nil {
		return nil, ErrSearchUnavailable
	}
	lv, err := search.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return gs.searcher.Search(query, lv, province, limit)
}
