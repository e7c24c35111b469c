package services

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/thai-address-parser/app/models"
)

// CacheService service quản lý cache in-memory (LRU có TTL)
type CacheService struct {
	cache *expirable.LRU[string, *models.AddressResult]
	ttl   time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCacheService tạo mới CacheService
func NewCacheService(size int, ttl time.Duration) *CacheService {
	if size <= 0 {
		size = 10000
	}
	return &CacheService{
		cache: expirable.NewLRU[string, *models.AddressResult](size, nil, ttl),
		ttl:   ttl,
	}
}

// Get lấy kết quả từ cache
func (cs *CacheService) Get(ctx context.Context, key string) (*models.AddressResult, bool, error) {
	if result, ok := cs.cache.Get(key); ok {
		cs.hits.Add(1)
		return result, true, nil
	}
	cs.misses.Add(1)
	return nil, false, nil
}

// Set lưu kết quả vào cache
func (cs *CacheService) Set(ctx context.Context, key string, result *models.AddressResult) error {
	cs.cache.Add(key, result)
	return nil
}

// Delete xóa item khỏi cache
func (cs *CacheService) Delete(ctx context.Context, key string) error {
	cs.cache.Remove(key)
	return nil
}

// Clear xóa toàn bộ cache
func (cs *CacheService) Clear(ctx context.Context) error {
	cs.cache.Purge()
	cs.hits.Store(0)
	cs.misses.Store(0)
	return nil
}

// InvalidateOtherVersions xoá entry có gazetteer version khác keepVersion
func (cs *CacheService) InvalidateOtherVersions(ctx context.Context, keepVersion string) (int64, error) {
	var removed int64
	for _, key := range cs.cache.Keys() {
		result, ok := cs.cache.Peek(key)
		if !ok || result.GazetteerVersion == keepVersion {
			continue
		}
		if cs.cache.Remove(key) {
			removed++
		}
	}
	return removed, nil
}

// Size lấy kích thước cache
func (cs *CacheService) Size() int {
	return cs.cache.Len()
}

// GetStats lấy thống kê cache
func (cs *CacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	hits, misses := cs.hits.Load(), cs.misses.Load()
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: int64(cs.cache.Len()),
	}, nil
}

// Close đóng kết nối (không cần thiết cho in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
