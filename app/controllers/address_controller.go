package controllers

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thai-address-parser/app/config"
	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/app/requests"
	"github.com/thai-address-parser/app/responses"
	"github.com/thai-address-parser/app/services"
	"github.com/thai-address-parser/internal/resolver"
	"github.com/thai-address-parser/internal/search"
	"github.com/thai-address-parser/internal/tagger"
	"github.com/thai-address-parser/internal/tokenizer"
	"go.uber.org/zap"
)

// Version phiên bản service trả về ở health check
const Version = "1.0.0"

// AddressController controller xử lý các request liên quan đến địa chỉ
type AddressController struct {
	addressService *services.AddressService
	logger         *zap.Logger
	parseTimeout   time.Duration
}

// NewAddressController tạo mới AddressController
func NewAddressController(addressService *services.AddressService, logger *zap.Logger) *AddressController {
	return &AddressController{
		addressService: addressService,
		logger:         logger,
		parseTimeout:   config.RequestTimeout(),
	}
}

// ParseAddress parse địa chỉ đơn lẻ
func (ac *AddressController) ParseAddress(c *gin.Context) {
	var req requests.ParseAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("INVALID_REQUEST", "Request không hợp lệ: "+err.Error()))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), ac.parseTimeout)
	defer cancel()

	startTime := time.Now()
	result, cacheHit, err := ac.addressService.ParseAddress(ctx, req.Address, req.Options)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.ParseAddressResponse{
		Result:           result,
		GazetteerVersion: result.GazetteerVersion,
		ProcessingTimeMs: time.Since(startTime).Milliseconds(),
		CacheHit:         cacheHit,
	})
}

// BatchParse tạo job parse hàng loạt địa chỉ
func (ac *AddressController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("INVALID_REQUEST", "Request không hợp lệ: "+err.Error()))
		return
	}

	jobID, err := ac.addressService.StartJob(c.Request.Context(), req.Addresses, req.Options)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusAccepted, responses.BatchParseResponse{
		JobID:            jobID,
		EstimatedSeconds: ac.addressService.EstimateBatchProcessingTime(len(req.Addresses)),
		TotalAddresses:   len(req.Addresses),
		Message:          "Job đã được tạo và đang xử lý",
	})
}

// GetJobStatus lấy trạng thái job
func (ac *AddressController) GetJobStatus(c *gin.Context) {
	status, err := ac.addressService.GetJobStatus(c.Param("jobID"))
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:              status.JobID,
		Status:             status.Status,
		Progress:           status.Progress,
		Processed:          status.Processed,
		Total:              status.Total,
		EstimatedRemaining: status.EstimatedRemaining,
		Message:            status.Message,
	})
}

// GetJobResults lấy kết quả job, format=ndjson để stream, gzip=1 để nén
func (ac *AddressController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")

	if c.Query("format") == "ndjson" {
		ac.streamNDJSONResults(c, jobID, c.Query("gzip") == "1")
		return
	}

	results, err := ac.addressService.GetJobResults(jobID)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"job_id":  jobID,
		"total":   len(results),
		"results": resultsOrEmpty(results),
	})
}

// ResolveLocation chuẩn hoá một địa danh đơn lẻ
func (ac *AddressController) ResolveLocation(c *gin.Context) {
	var req requests.ResolveLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("INVALID_REQUEST", "Request không hợp lệ: "+err.Error()))
		return
	}

	name, found, err := ac.addressService.ResolveLocation(req.Text, req.Option, req.Province, req.PostalCode)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.ResolveLocationResponse{
		Text:   req.Text,
		Option: req.Option,
		Name:   name,
		Found:  found,
	})
}

// HealthCheck kiểm tra sức khỏe service
func (ac *AddressController) HealthCheck(c *gin.Context) {
	uptime := time.Since(ac.addressService.GetStartTime()).Round(time.Second)

	servicesStatus := map[string]string{
		"address_parser": "healthy",
		"cache":          "disabled",
	}
	if cache := ac.addressService.Cache(); cache != nil {
		servicesStatus["cache"] = "healthy"
		if _, err := cache.GetStats(c.Request.Context()); err != nil {
			servicesStatus["cache"] = "unhealthy"
		}
	}

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   Version,
		Services:  servicesStatus,
	})
}

// streamNDJSONResults stream kết quả theo format NDJSON với hỗ trợ gzip
func (ac *AddressController) streamNDJSONResults(c *gin.Context, jobID string, gzipEnabled bool) {
	resultChannel, err := ac.addressService.GetJobResultsStream(c.Request.Context(), jobID)
	if err != nil {
		writeError(c, ac.logger, err)
		return
	}

	c.Header("Content-Type", "application/x-ndjson")
	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		c.Header("Content-Encoding", "gzip")
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzWriter:       gzWriter,
		}
	}
	c.Status(http.StatusOK)

	encoder := json.NewEncoder(writer)
	for result := range resultChannel {
		if err := encoder.Encode(result); err != nil {
			ac.logger.Error("Lỗi encode NDJSON", zap.String("job_id", jobID), zap.Error(err))
			return
		}
		writer.Flush()
	}
}

// writeError ánh xạ lỗi service sang HTTP status
func writeError(c *gin.Context, logger *zap.Logger, err error) {
	status, code := errorStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request lỗi",
			zap.String("path", c.Request.URL.Path),
			zap.String("code", code),
			zap.Error(err))
	}
	c.JSON(status, responses.NewErrorResponse(code, err.Error()))
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "PARSE_TIMEOUT"
	case errors.Is(err, tagger.ErrClassifierUnavailable):
		return http.StatusServiceUnavailable, "CLASSIFIER_UNAVAILABLE"
	case errors.Is(err, tokenizer.ErrUnknownEngine):
		return http.StatusBadRequest, "INVALID_ENGINE"
	case errors.Is(err, resolver.ErrInvalidOption):
		return http.StatusBadRequest, "INVALID_OPTION"
	case errors.Is(err, services.ErrEmptyAddress):
		return http.StatusBadRequest, "EMPTY_ADDRESS"
	case errors.Is(err, services.ErrJobNotFound):
		return http.StatusNotFound, "JOB_NOT_FOUND"
	case errors.Is(err, services.ErrJobNotReady):
		return http.StatusConflict, "JOB_NOT_READY"
	case errors.Is(err, services.ErrProvinceNotFound):
		return http.StatusNotFound, "PROVINCE_NOT_FOUND"
	case errors.Is(err, services.ErrPostalNotFound):
		return http.StatusNotFound, "POSTAL_NOT_FOUND"
	case errors.Is(err, services.ErrSearchUnavailable):
		return http.StatusServiceUnavailable, "SEARCH_UNAVAILABLE"
	case errors.Is(err, services.ErrNothingToSeed):
		return http.StatusServiceUnavailable, "NOTHING_TO_SEED"
	case errors.Is(err, search.ErrInvalidLevel):
		return http.StatusBadRequest, "INVALID_LEVEL"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}

// gzipResponseWriter wrapper cho gzip writer
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) WriteString(s string) (int, error) {
	return w.gzWriter.Write([]byte(s))
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	w.ResponseWriter.Flush()
}

// resultsOrEmpty tránh trả về null khi job không có kết quả
func resultsOrEmpty(results []*models.AddressResult) []*models.AddressResult {
	if results == nil {
		return []*models.AddressResult{}
	}
	return results
}
