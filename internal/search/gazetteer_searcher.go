// Package search đồng bộ gazetteer lên Meilisearch và tìm đơn vị hành
// chính theo tên (có typo tolerance, tìm được cả tên phiên âm Latin).
package search

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/normalizer"
	"go.uber.org/zap"
)

// DefaultIndexName index mặc định
const DefaultIndexName = "thai_admin_units"

// số document mỗi lần AddDocuments
const seedBatchSize = 1000

var (
	// ErrEmptyQuery query rỗng
	ErrEmptyQuery = errors.New("query không được để trống")
	// ErrInvalidLevel tên cấp hành chính không hợp lệ
	ErrInvalidLevel = errors.New("level không hợp lệ")
)

// Document một đơn vị hành chính trong index
type Document struct {
	ID             string   `json:"id"`
	Level          int      `json:"level"`
	Name           string   `json:"name"`
	NormalizedName string   `json:"normalized_name"`
	Province       string   `json:"province"`
	District       string   `json:"district,omitempty"`
	PostalCodes    []string `json:"postal_codes"`
}

// SearchConfig cấu hình cho Meilisearch
type SearchConfig struct {
	Host      string
	APIKey    string
	IndexName string
	Timeout   time.Duration
}

// GazetteerSearcher searcher tìm kiếm trong gazetteer sử dụng Meilisearch
type GazetteerSearcher struct {
	client    meilisearch.ServiceManager
	logger    *zap.Logger
	indexName string
}

// NewGazetteerSearcher tạo mới GazetteerSearcher, kiểm tra kết nối ngay
func NewGazetteerSearcher(config SearchConfig, logger *zap.Logger) (*GazetteerSearcher, error) {
	opts := []meilisearch.Option{meilisearch.WithAPIKey(config.APIKey)}
	if config.Timeout > 0 {
		opts = append(opts, meilisearch.WithCustomClient(&http.Client{Timeout: config.Timeout}))
	}
	client := meilisearch.New(config.Host, opts...)

	health, err := client.Health()
	if err != nil {
		return nil, fmt.Errorf("không thể kết nối Meilisearch: %w", err)
	}

	indexName := config.IndexName
	if indexName == "" {
		indexName = DefaultIndexName
	}
	logger.Info("Đã kết nối Meilisearch",
		zap.String("host", config.Host),
		zap.String("index", indexName),
		zap.String("status", health.Status))

	return &GazetteerSearcher{client: client, logger: logger, indexName: indexName}, nil
}

// ParseLevel "province" / "district" / "subdistrict" sang cấp, rỗng là 0 (mọi cấp)
func ParseLevel(s string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return 0, nil
	case "province":
		return gazetteer.LevelProvince, nil
	case "district":
		return gazetteer.LevelDistrict, nil
	case "subdistrict":
		return gazetteer.LevelSubdistrict, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
}

// BuildFilter filter Meilisearch theo cấp và tỉnh, level 0 là mọi cấp
func BuildFilter(level int, province string) string {
	var parts []string
	if level > 0 {
		parts = append(parts, fmt.Sprintf("level = %d", level))
	}
	if province != "" {
		parts = append(parts, fmt.Sprintf("province = %q", province))
	}
	return strings.Join(parts, " AND ")
}

// BuildDocuments chuyển danh sách đơn vị sang document, kèm tên phiên âm
func BuildDocuments(units []gazetteer.Unit) []Document {
	docs := make([]Document, len(units))
	for i, u := range units {
		docs[i] = Document{
			ID:             u.ID,
			Level:          u.Level,
			Name:           u.Name,
			NormalizedName: normalizer.Romanize(u.Name),
			Province:       u.Province,
			District:       u.District,
			PostalCodes:    u.PostalCodes,
		}
	}
	return docs
}

// Search tìm đơn vị hành chính theo tên
func (gs *GazetteerSearcher) Search(query string, level int, province string, limit int) ([]Document, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}
	if limit <= 0 {
		limit = 10
	}

	req := &meilisearch.SearchRequest{Limit: int64(limit)}
	if filter := BuildFilter(level, province); filter != "" {
		req.Filter = filter
	}

	result, err := gs.client.Index(gs.indexName).Search(query, req)
	if err != nil {
		return nil, fmt.Errorf("lỗi tìm kiếm Meilisearch: %w", err)
	}
	return parseHits(result.Hits), nil
}

// parseHits parse kết quả từ Meilisearch thành Document
func parseHits(hits []interface{}) []Document {
	docs := make([]Document, 0, len(hits))
	for _, hit := range hits {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}

		var doc Document
		doc.ID, _ = hitMap["id"].(string)
		doc.Name, _ = hitMap["name"].(string)
		doc.NormalizedName, _ = hitMap["normalized_name"].(string)
		doc.Province, _ = hitMap["province"].(string)
		doc.District, _ = hitMap["district"].(string)
		if level, ok := hitMap["level"].(float64); ok {
			doc.Level = int(level)
		}
		doc.PostalCodes = []string{}
		if codes, ok := hitMap["postal_codes"].([]interface{}); ok {
			for _, c := range codes {
				if s, ok := c.(string); ok {
					doc.PostalCodes = append(doc.PostalCodes, s)
				}
			}
		}
		docs = append(docs, doc)
	}
	return docs
}

// BuildIndexes cấu hình thuộc tính tìm kiếm, filter và typo tolerance cho index
func (gs *GazetteerSearcher) BuildIndexes() error {
	index := gs.client.Index(gs.indexName)

	task, err := index.UpdateSettings(&meilisearch.Settings{
		SearchableAttributes: []string{"name", "normalized_name", "district", "province", "postal_codes"},
		FilterableAttributes: []string{"level", "province", "district", "postal_codes"},
		SortableAttributes:   []string{"level"},
		RankingRules:         []string{"words", "typo", "proximity", "attribute", "sort", "exactness"},
		Synonyms: map[string][]string{
			"กทม":    {"กรุงเทพมหานคร"},
			"กรุงเทพ": {"กรุงเทพมหานคร"},
		},
		TypoTolerance: &meilisearch.TypoTolerance{
			Enabled: true,
			MinWordSizeForTypos: meilisearch.MinWordSizeForTypos{
				OneTypo:  3,
				TwoTypos: 7,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("lỗi cấu hình index: %w", err)
	}

	gs.logger.Info("Đã cấu hình index Meilisearch", zap.String("index", gs.indexName), zap.Int64("task_uid", task.TaskUID))
	return nil
}

// SeedDocuments xoá document cũ rồi nạp lại theo batch, trả về số batch
func (gs *GazetteerSearcher) SeedDocuments(docs []Document) (int, error) {
	if len(docs) == 0 {
		return 0, errors.New("không có dữ liệu để seed")
	}
	index := gs.client.Index(gs.indexName)

	if task, err := index.DeleteAllDocuments(); err != nil {
		gs.logger.Warn("Không xoá được document cũ", zap.Error(err))
	} else {
		gs.logger.Debug("Đã gửi lệnh xoá document cũ", zap.Int64("task_uid", task.TaskUID))
	}

	batches := 0
	for i := 0; i < len(docs); i += seedBatchSize {
		end := min(i+seedBatchSize, len(docs))

		task, err := index.AddDocuments(docs[i:end], "id")
		if err != nil {
			return batches, fmt.Errorf("lỗi thêm documents batch %d-%d: %w", i, end, err)
		}
		batches++

		gs.logger.Info("Đã thêm batch documents",
			zap.Int("from", i),
			zap.Int("to", end),
			zap.Int64("task_uid", task.TaskUID))
	}

	gs.logger.Info("Đã seed data thành công", zap.Int("total_documents", len(docs)))
	return batches, nil
}
