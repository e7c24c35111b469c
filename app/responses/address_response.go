package responses

import (
	"time"

	"github.com/thai-address-parser/app/models"
	"github.com/thai-address-parser/internal/search"
)

// ParseAddressResponse response parse địa chỉ đơn lẻ
type ParseAddressResponse struct {
	Result           *models.AddressResult `json:"result"`             // Kết quả parse
	GazetteerVersion string                `json:"gazetteer_version"`  // Phiên bản gazetteer
	ProcessingTimeMs int64                 `json:"processing_time_ms"` // Thời gian xử lý (ms)
	CacheHit         bool                  `json:"cache_hit"`          // Có hit cache không
}

// BatchParseResponse response parse hàng loạt địa chỉ
type BatchParseResponse struct {
	JobID            string `json:"job_id"`            // ID của job
	EstimatedSeconds int    `json:"estimated_seconds"` // Thời gian ước tính (giây)
	TotalAddresses   int    `json:"total_addresses"`   // Tổng số địa chỉ
	Message          string `json:"message"`           // Thông báo
}

// JobStatusResponse response trạng thái job
type JobStatusResponse struct {
	JobID              string  `json:"job_id"`              // ID của job
	Status             string  `json:"status"`              // Trạng thái job
	Progress           float64 `json:"progress"`            // Tiến độ (0.0 - 1.0)
	Processed          int     `json:"processed"`           // Số địa chỉ đã xử lý
	Total              int     `json:"total"`               // Tổng số địa chỉ
	EstimatedRemaining int     `json:"estimated_remaining"` // Thời gian còn lại ước tính (giây)
	Message            string  `json:"message"`             // Thông báo
}

// ResolveLocationResponse response chuẩn hoá địa danh
type ResolveLocationResponse struct {
	Text   string `json:"text"`
	Option string `json:"option"`
	Name   string `json:"name"`  // Tên chuẩn, rỗng là không tìm thấy
	Found  bool   `json:"found"` // Có khớp với gazetteer không
}

// NameListResponse danh sách tên đơn vị hành chính
type NameListResponse struct {
	Names            []string `json:"names"`
	Total            int      `json:"total"`
	GazetteerVersion string   `json:"gazetteer_version"`
}

// PostalLookupResponse đơn vị hành chính theo mã bưu chính
type PostalLookupResponse struct {
	PostalCode   string   `json:"postal_code"`
	Districts    []string `json:"districts"`
	Subdistricts []string `json:"subdistricts"`
}

// SearchResponse kết quả tìm kiếm gazetteer
type SearchResponse struct {
	Query   string            `json:"query"`
	Results []search.Document `json:"results"`
	Total   int               `json:"total"`
}

// SeedGazetteerResponse response seed gazetteer
type SeedGazetteerResponse struct {
	ValidationPassed bool     `json:"validation_passed"`            // Validation có pass không
	Warnings         []string `json:"warnings,omitempty"`           // Cảnh báo
	GazetteerVersion string   `json:"gazetteer_version"`            // Phiên bản gazetteer
	UnitsProcessed   int      `json:"units_processed,omitempty"`    // Số units đã xử lý
	IndexesBuilt     int      `json:"indexes_built,omitempty"`      // Số batch đã nạp lên Meilisearch
	ProcessingTimeMs int64    `json:"processing_time_ms,omitempty"` // Thời gian xử lý (ms)
	DryRun           bool     `json:"dry_run"`                      // Có phải dry run không
	Message          string   `json:"message"`                      // Thông báo
}

// InvalidateCacheResponse response xoá cache
type InvalidateCacheResponse struct {
	KeepVersion string `json:"keep_version"`
	Removed     int64  `json:"removed"`
}

// ErrorResponse response lỗi
type ErrorResponse struct {
	Error     string `json:"error"`     // Mã lỗi
	Message   string `json:"message"`   // Thông báo lỗi
	Timestamp string `json:"timestamp"` // Thời gian xảy ra lỗi
}

// NewErrorResponse tạo ErrorResponse với thời gian hiện tại
func NewErrorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: code, Message: message, Timestamp: time.Now().Format(time.RFC3339)}
}

// HealthCheckResponse response kiểm tra sức khỏe
type HealthCheckResponse struct {
	Status    string            `json:"status"`    // Trạng thái sức khỏe
	Timestamp string            `json:"timestamp"` // Thời gian kiểm tra
	Uptime    string            `json:"uptime"`    // Thời gian hoạt động
	Version   string            `json:"version"`   // Phiên bản
	Services  map[string]string `json:"services"`  // Trạng thái các service
}

// SystemStatsResponse response thống kê hệ thống
type SystemStatsResponse struct {
	CacheHitRate     float64       `json:"cache_hit_rate"`    // Tỷ lệ hit cache
	TotalProcessed   int64         `json:"total_processed"`   // Tổng số địa chỉ đã xử lý
	GazetteerVersion string        `json:"gazetteer_version"` // Phiên bản gazetteer
	ModelVersion     string        `json:"model_version"`     // Fingerprint model CRF
	SystemInfo       SystemInfo    `json:"system_info"`       // Thông tin hệ thống
	DatabaseStats    DatabaseStats `json:"database_stats"`    // Thống kê database
}

// SystemInfo thông tin hệ thống
type SystemInfo struct {
	Version     string                 `json:"version"`      // Phiên bản
	Environment string                 `json:"environment"`  // Môi trường
	Uptime      string                 `json:"uptime"`       // Thời gian hoạt động
	MemoryUsage map[string]interface{} `json:"memory_usage"` // Sử dụng memory
}

// DatabaseStats thống kê dữ liệu tham chiếu
type DatabaseStats struct {
	Provinces    int   `json:"provinces"`
	Districts    int   `json:"districts"`
	Subdistricts int   `json:"subdistricts"`
	AdminUnits   int64 `json:"admin_units"`   // Số lượng admin units trong MongoDB
	AddressCache int64 `json:"address_cache"` // Số entry trong cache
}
