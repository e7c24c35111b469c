package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/thai-address-parser/app/models"
	"go.uber.org/zap"
)

// HybridCacheService cache hai tầng: L1 nhanh (Redis), L2 persistent (MongoDB)
type HybridCacheService struct {
	l1     ICacheService
	l2     ICacheService
	logger *zap.Logger
}

// NewHybridCacheService tạo mới hybrid cache service
func NewHybridCacheService(l1, l2 ICacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{l1: l1, l2: l2, logger: logger}
}

// Get lấy kết quả từ L1 trước, L2 sau. Hit ở L2 được đồng bộ lên L1.
func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.AddressResult, bool, error) {
	result, found, err := hcs.l1.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("Lỗi L1 cache, fallback L2", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.l2.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.l1.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("Lỗi sync L2->L1", zap.Error(err), zap.String("key", key))
		}
	}()

	hcs.logger.Debug("L2 cache hit", zap.String("key", key))
	return result, true, nil
}

// Set lưu kết quả vào cả hai tầng song song
func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.AddressResult) error {
	return hcs.both("set", func(c ICacheService) error { return c.Set(ctx, key, result) })
}

// Delete xóa key khỏi cả hai tầng
func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	return hcs.both("delete", func(c ICacheService) error { return c.Delete(ctx, key) })
}

// Clear xóa toàn bộ cache cả hai tầng
func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	if err := hcs.both("clear", func(c ICacheService) error { return c.Clear(ctx) }); err != nil {
		return err
	}
	hcs.logger.Info("Cleared hybrid cache")
	return nil
}

// InvalidateOtherVersions xoá entry của phiên bản khác ở cả hai tầng
func (hcs *HybridCacheService) InvalidateOtherVersions(ctx context.Context, keepVersion string) (int64, error) {
	type outcome struct {
		n   int64
		err error
	}
	ch := make(chan outcome, 2)
	for _, c := range []ICacheService{hcs.l1, hcs.l2} {
		go func(c ICacheService) {
			n, err := c.InvalidateOtherVersions(ctx, keepVersion)
			ch <- outcome{n, err}
		}(c)
	}

	var removed int64
	var errs []error
	for i := 0; i < 2; i++ {
		o := <-ch
		removed += o.n
		if o.err != nil {
			errs = append(errs, o.err)
		}
	}
	if len(errs) > 0 {
		return removed, fmt.Errorf("invalidate errors: %w", errors.Join(errs...))
	}

	hcs.logger.Info("Invalidated hybrid cache",
		zap.String("keep_version", keepVersion),
		zap.Int64("deleted_count", removed))
	return removed, nil
}

// GetStats cộng thống kê của hai tầng, một tầng lỗi thì dùng tầng còn lại
func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	l1Stats, l1Err := hcs.l1.GetStats(ctx)
	l2Stats, l2Err := hcs.l2.GetStats(ctx)

	switch {
	case l1Err != nil && l2Err != nil:
		return nil, fmt.Errorf("cả hai tầng cache đều lỗi: %w", errors.Join(l1Err, l2Err))
	case l1Err != nil:
		return l2Stats, nil
	case l2Err != nil:
		return l1Stats, nil
	}

	// miss ở L1 là lượt truy vấn L2, chỉ miss ở L2 mới là miss thật
	hits := l1Stats.TotalHits + l2Stats.TotalHits
	return &CacheStats{
		HitRate:    hitRate(hits, l2Stats.TotalMiss),
		TotalHits:  hits,
		TotalMiss:  l2Stats.TotalMiss,
		TotalItems: l2Stats.TotalItems,
	}, nil
}

// Close đóng kết nối cả hai tầng
func (hcs *HybridCacheService) Close() error {
	return hcs.both("close", func(c ICacheService) error { return c.Close() })
}

// both chạy fn trên hai tầng song song và gom lỗi
func (hcs *HybridCacheService) both(op string, fn func(ICacheService) error) error {
	errCh := make(chan error, 2)
	for _, c := range []ICacheService{hcs.l1, hcs.l2} {
		go func(c ICacheService) {
			err := fn(c)
			if err != nil {
				hcs.logger.Warn("Lỗi cache", zap.String("op", op), zap.Error(err))
			}
			errCh <- err
		}(c)
	}

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s errors: %w", op, errors.Join(errs...))
	}
	return nil
}
