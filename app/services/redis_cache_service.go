package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thai-address-parser/app/models"
	"go.uber.org/zap"
)

// số key mỗi lần SCAN
const redisScanCount = 500

// RedisCacheService cache service sử dụng Redis
type RedisCacheService struct {
	client *redis.Client
	logger *zap.Logger
	prefix string
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

// NewRedisCacheService tạo mới Redis cache service
func NewRedisCacheService(redisURL string, ttl time.Duration, logger *zap.Logger) (*RedisCacheService, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("lỗi parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("không thể kết nối Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisCacheService{
		client: client,
		logger: logger,
		prefix: "thai_addr:",
		ttl:    ttl,
	}, nil
}

// Get lấy kết quả parse từ cache
func (rcs *RedisCacheService) Get(ctx context.Context, key string) (*models.AddressResult, bool, error) {
	cacheKey := rcs.prefix + key

	val, err := rcs.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		rcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		rcs.logger.Error("Lỗi get từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return nil, false, err
	}

	var result models.AddressResult
	if err := json.Unmarshal(val, &result); err != nil {
		rcs.logger.Error("Lỗi unmarshal cache data", zap.Error(err))
		return nil, false, err
	}

	rcs.hits.Add(1)
	rcs.logger.Debug("Redis cache hit", zap.String("key", key))
	return &result, true, nil
}

// Set lưu kết quả parse vào cache
func (rcs *RedisCacheService) Set(ctx context.Context, key string, result *models.AddressResult) error {
	cacheKey := rcs.prefix + key

	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("lỗi marshal cache data: %w", err)
	}

	if err := rcs.client.Set(ctx, cacheKey, data, rcs.ttl).Err(); err != nil {
		rcs.logger.Error("Lỗi set vào Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}

	rcs.logger.Debug("Đã lưu vào Redis cache", zap.String("key", key))
	return nil
}

// Delete xóa key khỏi cache
func (rcs *RedisCacheService) Delete(ctx context.Context, key string) error {
	cacheKey := rcs.prefix + key

	if err := rcs.client.Del(ctx, cacheKey).Err(); err != nil {
		rcs.logger.Error("Lỗi delete từ Redis", zap.Error(err), zap.String("key", cacheKey))
		return err
	}
	return nil
}

// Clear xóa toàn bộ key có prefix của service
func (rcs *RedisCacheService) Clear(ctx context.Context) error {
	deleted := 0
	err := rcs.scan(ctx, func(keys []string) error {
		deleted += len(keys)
		return rcs.client.Del(ctx, keys...).Err()
	})
	if err != nil {
		return fmt.Errorf("lỗi clear Redis cache: %w", err)
	}

	rcs.logger.Info("Đã clear Redis cache", zap.Int("keys_deleted", deleted))
	return nil
}

// InvalidateOtherVersions đọc gazetteer version của từng entry, xoá entry
// thuộc phiên bản khác
func (rcs *RedisCacheService) InvalidateOtherVersions(ctx context.Context, keepVersion string) (int64, error) {
	var removed int64
	err := rcs.scan(ctx, func(keys []string) error {
		values, err := rcs.client.MGet(ctx, keys...).Result()
		if err != nil {
			return err
		}
		var stale []string
		for i, v := range values {
			s, ok := v.(string)
			if !ok {
				continue
			}
			var entry struct {
				GazetteerVersion string `json:"gazetteer_version"`
			}
			if err := json.Unmarshal([]byte(s), &entry); err != nil || entry.GazetteerVersion != keepVersion {
				stale = append(stale, keys[i])
			}
		}
		if len(stale) == 0 {
			return nil
		}
		n, err := rcs.client.Del(ctx, stale...).Result()
		removed += n
		return err
	})
	if err != nil {
		return removed, fmt.Errorf("lỗi invalidate Redis cache: %w", err)
	}

	rcs.logger.Info("Đã invalidate Redis cache",
		zap.String("keep_version", keepVersion),
		zap.Int64("deleted_count", removed))
	return removed, nil
}

// scan duyệt key có prefix theo từng trang
func (rcs *RedisCacheService) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := rcs.client.Scan(ctx, cursor, rcs.prefix+"*", redisScanCount).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}

// GetStats lấy thống kê cache
func (rcs *RedisCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	var total int64
	err := rcs.scan(ctx, func(keys []string) error {
		total += int64(len(keys))
		return nil
	})
	if err != nil {
		rcs.logger.Warn("Không đếm được key Redis", zap.Error(err))
	}

	hits, misses := rcs.hits.Load(), rcs.misses.Load()
	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: total,
	}, nil
}

// Close đóng kết nối Redis
func (rcs *RedisCacheService) Close() error {
	return rcs.client.Close()
}
