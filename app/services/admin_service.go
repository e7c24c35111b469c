package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"runtime"
	"time"

	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/internal/gazetteer"
	"github.com/thai-address-parser/internal/normalizer"
	"github.com/thai-address-parser/internal/search"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// ErrNothingToSeed không có MongoDB lẫn Meilisearch để seed
var ErrNothingToSeed = errors.New("chưa cấu hình MongoDB hoặc Meilisearch")

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// AdminService service quản lý admin functions
type AdminService struct {
	db       *mongo.Database // nil là không có MongoDB
	index    *gazetteer.Index
	searcher Searcher
	cache    ICacheService
	logger   *zap.Logger
}

// GazetteerValidation kết quả validation gazetteer
type GazetteerValidation struct {
	Passed   bool     `json:"passed"`
	Warnings []string `json:"warnings"`
	Units    int      `json:"units"`
}

// SeedResult kết quả seed gazetteer
type SeedResult struct {
	UnitsProcessed   int   `json:"units_processed"`
	IndexesBuilt     int   `json:"indexes_built"`
	ProcessingTimeMs int64 `json:"processing_time_ms"`
}

// SystemStats thống kê hệ thống
type SystemStats struct {
	TotalProcessed   int64                  `json:"total_processed"`
	CacheHitRate     float64                `json:"cache_hit_rate"`
	CachedItems      int64                  `json:"cached_items"`
	Uptime           string                 `json:"uptime"`
	MemoryUsage      map[string]interface{} `json:"memory_usage"`
	GazetteerVersion string                 `json:"gazetteer_version"`
	Provinces        int                    `json:"provinces"`
	Districts        int                    `json:"districts"`
	Subdistricts     int                    `json:"subdistricts"`
	AdminUnits       int64                  `json:"admin_units"`
}

// NewAdminService tạo mới AdminService
func NewAdminService(db *mongo.Database, index *gazetteer.Index, searcher Searcher, cache ICacheService, logger *zap.Logger) *AdminService {
	return &AdminService{
		db:       db,
		index:    index,
		searcher: searcher,
		cache:    cache,
		logger:   logger,
	}
}

// ValidateGazetteerData kiểm tra mã bưu chính và ID của các đơn vị
func (as *AdminService) ValidateGazetteerData(units []gazetteer.Unit) *GazetteerValidation {
	warnings := make([]string, 0)
	if len(units) == 0 {
		return &GazetteerValidation{Warnings: []string{"Không có dữ liệu để validate"}}
	}

	seenIDs := make(map[string]bool)
	for _, u := range units {
		if seenIDs[u.ID] {
			warnings = append(warnings, fmt.Sprintf("Duplicate AdminID: %s (%s)", u.ID, u.Name))
		}
		seenIDs[u.ID] = true

		for _, code := range u.PostalCodes {
			if !postalCodePattern.MatchString(code) {
				warnings = append(warnings, fmt.Sprintf("Mã bưu chính không hợp lệ %q tại %s", code, u.Name))
			}
		}
		if u.Level == gazetteer.LevelSubdistrict && len(u.PostalCodes) == 0 {
			warnings = append(warnings, fmt.Sprintf("Thiếu mã bưu chính tại %s > %s", u.District, u.Name))
		}
	}

	return &GazetteerValidation{
		Passed:   len(warnings) == 0,
		Warnings: warnings,
		Units:    len(units),
	}
}

// Validate validate gazetteer đang load
func (as *AdminService) Validate() *GazetteerValidation {
	return as.ValidateGazetteerData(as.index.Units())
}

// SeedGazetteer ghi gazetteer đang load vào MongoDB admin_units và nạp lại index Meilisearch
func (as *AdminService) SeedGazetteer(ctx context.Context, rebuildIndexes bool) (*SeedResult, error) {
	startTime := time.Now()
	if as.db == nil && (as.searcher == nil || !rebuildIndexes) {
		return nil, ErrNothingToSeed
	}

	units := as.index.Units()
	validation := as.ValidateGazetteerData(units)
	if !validation.Passed {
		return nil, fmt.Errorf("dữ liệu không hợp lệ: %v", validation.Warnings)
	}
	version := as.index.Version()

	if as.db != nil {
		if err := as.seedMongo(ctx, units, version); err != nil {
			return nil, err
		}
	}

	indexesBuilt := 0
	if rebuildIndexes && as.searcher != nil {
		if err := as.searcher.BuildIndexes(); err != nil {
			return nil, fmt.Errorf("lỗi build Meilisearch indexes: %w", err)
		}
		batches, err := as.searcher.SeedDocuments(search.BuildDocuments(units))
		if err != nil {
			return nil, fmt.Errorf("lỗi seed data vào Meilisearch: %w", err)
		}
		indexesBuilt = batches
	}

	processingTime := time.Since(startTime)
	as.logger.Info("Gazetteer seed completed",
		zap.String("gazetteer_version", version),
		zap.Int("units_processed", len(units)),
		zap.Int("indexes_built", indexesBuilt),
		zap.Duration("processing_time", processingTime))

	return &SeedResult{
		UnitsProcessed:   len(units),
		IndexesBuilt:     indexesBuilt,
		ProcessingTimeMs: processingTime.Milliseconds(),
	}, nil
}

// seedMongo xoá bản cũ cùng version rồi insert lại
func (as *AdminService) seedMongo(ctx context.Context, units []gazetteer.Unit, version string) error {
	collection := as.db.Collection(gazetteer.AdminUnitsCollection)

	deleteResult, err := collection.DeleteMany(ctx, bson.M{"gazetteer_version": version})
	if err != nil {
		return fmt.Errorf("lỗi xóa dữ liệu cũ: %w", err)
	}
	as.logger.Info("Deleted old admin units",
		zap.String("gazetteer_version", version),
		zap.Int64("deleted_count", deleteResult.DeletedCount))

	now := time.Now()
	documents := make([]interface{}, len(units))
	for i, u := range units {
		documents[i] = models.NewAdminUnit(u, normalizer.Romanize(u.Name), version, now)
	}
	if _, err := collection.InsertMany(ctx, documents); err != nil {
		return fmt.Errorf("lỗi insert dữ liệu mới: %w", err)
	}
	return nil
}

// InvalidateCache xoá entry cache của phiên bản gazetteer khác keepVersion,
// rỗng là phiên bản đang load
func (as *AdminService) InvalidateCache(ctx context.Context, keepVersion string) (string, int64, error) {
	if keepVersion == "" {
		keepVersion = as.index.Version()
	}
	if as.cache == nil {
		return keepVersion, 0, nil
	}
	removed, err := as.cache.InvalidateOtherVersions(ctx, keepVersion)
	return keepVersion, removed, err
}

// GetSystemStats lấy thống kê hệ thống
func (as *AdminService) GetSystemStats(ctx context.Context, addressService *AddressService) (*SystemStats, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	stats := &SystemStats{
		TotalProcessed: addressService.TotalProcessed(),
		Uptime:         time.Since(addressService.GetStartTime()).Round(time.Second).String(),
		MemoryUsage: map[string]interface{}{
			"alloc_mb":       bToMb(m.Alloc),
			"total_alloc_mb": bToMb(m.TotalAlloc),
			"sys_mb":         bToMb(m.Sys),
			"num_gc":         m.NumGC,
		},
		GazetteerVersion: as.index.Version(),
		Provinces:        len(as.index.Provinces()),
		Districts:        len(as.index.Districts()),
		Subdistricts:     len(as.index.Subdistricts()),
	}

	if as.cache != nil {
		cacheStats, err := as.cache.GetStats(ctx)
		if err != nil {
			as.logger.Warn("Không lấy được cache stats", zap.Error(err))
		} else {
			stats.CacheHitRate = cacheStats.HitRate
			stats.CachedItems = cacheStats.TotalItems
		}
	}

	if as.db != nil {
		count, err := as.db.Collection(gazetteer.AdminUnitsCollection).CountDocuments(ctx, bson.M{})
		if err != nil {
			return nil, fmt.Errorf("lỗi lấy database stats: %w", err)
		}
		stats.AdminUnits = count
	}

	return stats, nil
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}
