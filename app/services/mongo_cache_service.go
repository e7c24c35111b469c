package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/thai-address-parser/app/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AddressCacheCollection collection lưu cache kết quả parse
const AddressCacheCollection = "address_cache"

// MongoCacheService persistent cache service sử dụng MongoDB + LRU in-memory
type MongoCacheService struct {
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.AddressResult]
	logger     *zap.Logger

	l1Hits    atomic.Int64
	mongoHits atomic.Int64
	misses    atomic.Int64
}

// NewMongoCacheService tạo mới MongoCacheService
func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.AddressResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("không thể tạo LRU cache: %w", err)
	}

	collection := db.Collection(AddressCacheCollection)

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "gazetteer_version", Value: 1}}},
		{Keys: bson.D{{Key: "last_accessed", Value: 1}}},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("Không thể tạo indexes cho address_cache", zap.Error(err))
	}

	return &MongoCacheService{
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

// Get lấy kết quả từ cache (L1 → MongoDB)
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.AddressResult, bool, error) {
	if result, found := mcs.l1Cache.Get(key); found {
		mcs.l1Hits.Add(1)
		return result, true, nil
	}

	var entry models.AddressCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": key}).Decode(&entry)
	if errors.Is(err, mongo.ErrNoDocuments) {
		mcs.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("lỗi query MongoDB cache: %w", err)
	}

	mcs.mongoHits.Add(1)
	go mcs.updateAccessStats(entry.ID)

	mcs.l1Cache.Add(key, &entry.Result)
	mcs.logger.Debug("MongoDB cache hit", zap.String("key", key))
	return &entry.Result, true, nil
}

// Set lưu kết quả vào cache (L1 + MongoDB)
func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.AddressResult) error {
	mcs.l1Cache.Add(key, result)

	entry := models.NewAddressCache(key, *result)
	opts := options.Replace().SetUpsert(true)
	if _, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": key}, entry, opts); err != nil {
		mcs.logger.Error("Lỗi lưu vào MongoDB cache", zap.Error(err), zap.String("fingerprint", key))
		return fmt.Errorf("lỗi lưu vào MongoDB cache: %w", err)
	}
	return nil
}

// Delete xóa kết quả khỏi cache
func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)
	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": key}); err != nil {
		return fmt.Errorf("lỗi xóa khỏi MongoDB cache: %w", err)
	}
	return nil
}

// Clear xóa tất cả cache
func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()
	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("lỗi clear MongoDB cache: %w", err)
	}
	mcs.l1Hits.Store(0)
	mcs.mongoHits.Store(0)
	mcs.misses.Store(0)
	return nil
}

// InvalidateOtherVersions xoá record có gazetteer_version khác keepVersion
func (mcs *MongoCacheService) InvalidateOtherVersions(ctx context.Context, keepVersion string) (int64, error) {
	mcs.l1Cache.Purge()

	result, err := mcs.collection.DeleteMany(ctx, bson.M{"gazetteer_version": bson.M{"$ne": keepVersion}})
	if err != nil {
		return 0, fmt.Errorf("lỗi invalidate cache theo gazetteer version: %w", err)
	}

	mcs.logger.Info("Đã invalidate cache",
		zap.String("keep_version", keepVersion),
		zap.Int64("deleted_count", result.DeletedCount))
	return result.DeletedCount, nil
}

// GetStats lấy thống kê cache
func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	count, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("lỗi đếm documents trong MongoDB cache: %w", err)
	}

	hits := mcs.l1Hits.Load() + mcs.mongoHits.Load()
	misses := mcs.misses.Load()
	mcs.logger.Debug("Cache stats",
		zap.Int64("l1_hits", mcs.l1Hits.Load()),
		zap.Int64("mongo_hits", mcs.mongoHits.Load()),
		zap.Int("l1_size", mcs.l1Cache.Len()),
		zap.Int64("mongo_count", count))

	return &CacheStats{
		HitRate:    hitRate(hits, misses),
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: count,
	}, nil
}

// Close MongoDB connection được quản lý bởi caller
func (mcs *MongoCacheService) Close() error {
	return nil
}

// updateAccessStats cập nhật thống kê truy cập (async)
func (mcs *MongoCacheService) updateAccessStats(id primitive.ObjectID) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}
	if _, err := mcs.collection.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		mcs.logger.Warn("Lỗi update access stats", zap.Error(err))
	}
}

// WarmUp nạp các entry được truy cập nhiều nhất của phiên bản hiện tại vào L1
func (mcs *MongoCacheService) WarmUp(ctx context.Context, gazetteerVersion string, limit int) (int, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{"gazetteer_version": gazetteerVersion}, opts)
	if err != nil {
		return 0, fmt.Errorf("lỗi warm up cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var entry models.AddressCache
		if err := cursor.Decode(&entry); err != nil {
			mcs.logger.Warn("Lỗi decode cache entry trong warm up", zap.Error(err))
			continue
		}
		result := entry.Result
		mcs.l1Cache.Add(entry.Fingerprint, &result)
		count++
	}

	mcs.logger.Info("Cache warm up hoàn thành",
		zap.Int("loaded_items", count),
		zap.Int("l1_size", mcs.l1Cache.Len()))
	return count, cursor.Err()
}
