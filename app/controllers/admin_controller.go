package controllers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thai-address-parser/app/requests"
	"github.com/thai-address-parser/app/responses"
	"github.com/thai-address-parser/app/services"
	"go.uber.org/zap"
)

// AdminController controller xử lý các request admin
type AdminController struct {
	adminService   *services.AdminService
	addressService *services.AddressService
	environment    string
	logger         *zap.Logger
}

// NewAdminController tạo mới AdminController
func NewAdminController(adminService *services.AdminService, addressService *services.AddressService, environment string, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService:   adminService,
		addressService: addressService,
		environment:    environment,
		logger:         logger,
	}
}

// bindOptionalJSON bind body JSON, body rỗng giữ giá trị mặc định
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// SeedGazetteer seed dữ liệu gazetteer, dry_run=true chỉ validate
func (ac *AdminController) SeedGazetteer(c *gin.Context) {
	var req requests.SeedGazetteerRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("INVALID_REQUEST", "Request không hợp lệ: "+err.Error()))
		return
	}

	version := ac.addressService.Components().GazetteerVersion()

	if c.Query("dry_run") == "true" {
		validation := ac.adminService.Validate()
		c.JSON(http.StatusOK, responses.SeedGazetteerResponse{
			ValidationPassed: validation.Passed,
			Warnings:         validation.Warnings,
			GazetteerVersion: version,
			UnitsProcessed:   validation.Units,
			DryRun:           true,
			Message:          "Validation hoàn thành",
		})
		return
	}

	result, err := ac.adminService.SeedGazetteer(c.Request.Context(), req.RebuildIndexes)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.SeedGazetteerResponse{
		ValidationPassed: true,
		GazetteerVersion: version,
		UnitsProcessed:   result.UnitsProcessed,
		IndexesBuilt:     result.IndexesBuilt,
		ProcessingTimeMs: result.ProcessingTimeMs,
		Message:          "Seed gazetteer thành công",
	})
}

// InvalidateCache xoá cache của các phiên bản gazetteer khác
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	var req requests.InvalidateCacheRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("INVALID_REQUEST", "Request không hợp lệ: "+err.Error()))
		return
	}

	startTime := time.Now()
	keepVersion, removed, err := ac.adminService.InvalidateCache(c.Request.Context(), req.KeepVersion)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	ac.logger.Info("Invalidate cache thành công",
		zap.String("keep_version", keepVersion),
		zap.Int64("removed", removed),
		zap.Duration("duration", time.Since(startTime)))

	c.JSON(http.StatusOK, responses.InvalidateCacheResponse{
		KeepVersion: keepVersion,
		Removed:     removed,
	})
}

// GetStats lấy thống kê hệ thống
func (ac *AdminController) GetStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context(), ac.addressService)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.SystemStatsResponse{
		CacheHitRate:     stats.CacheHitRate,
		TotalProcessed:   stats.TotalProcessed,
		GazetteerVersion: stats.GazetteerVersion,
		ModelVersion:     ac.addressService.Components().ModelVersion,
		SystemInfo: responses.SystemInfo{
			Version:     Version,
			Environment: ac.environment,
			Uptime:      stats.Uptime,
			MemoryUsage: stats.MemoryUsage,
		},
		DatabaseStats: responses.DatabaseStats{
			Provinces:    stats.Provinces,
			Districts:    stats.Districts,
			Subdistricts: stats.Subdistricts,
			AdminUnits:   stats.AdminUnits,
			AddressCache: stats.CachedItems,
		},
	})
}
