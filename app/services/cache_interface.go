package services

import (
	"context"
	"crypto/sha256"
	"fmt"

	"github.com/thai-address-parser/app/models"
)

// CacheStats thống kê cache
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// ICacheService interface định nghĩa các method cần thiết cho cache
type ICacheService interface {
	// Get lấy kết quả parse từ cache
	Get(ctx context.Context, key string) (*models.AddressResult, bool, error)

	// Set lưu kết quả parse vào cache
	Set(ctx context.Context, key string, result *models.AddressResult) error

	// Delete xóa một key khỏi cache
	Delete(ctx context.Context, key string) error

	// Clear xóa tất cả cache
	Clear(ctx context.Context) error

	// InvalidateOtherVersions xoá entry có gazetteer version khác keepVersion
	InvalidateOtherVersions(ctx context.Context, keepVersion string) (int64, error)

	// GetStats lấy thống kê cache
	GetStats(ctx context.Context) (*CacheStats, error)

	// Close đóng kết nối (nếu cần)
	Close() error
}

// CacheKey key cache của một địa chỉ: cùng văn bản chuẩn hoá, cùng
// tokenizer và cùng model thì cùng kết quả
func CacheKey(normalized, engine, modelVersion string) string {
	sum := sha256.Sum256([]byte(normalized + "|" + engine + "|" + modelVersion))
	return fmt.Sprintf("%x", sum)
}

func hitRate(hits, misses int64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
