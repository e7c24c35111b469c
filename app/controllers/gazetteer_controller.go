package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/thai-address-parser/app/responses"
	"github.com/thai-address-parser/app/services"
	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 10
	maxSearchLimit     = 100
)

// GazetteerController tra cứu dữ liệu hành chính
type GazetteerController struct {
	gazetteerService *services.GazetteerService
	logger           *zap.Logger
}

// NewGazetteerController tạo mới GazetteerController
func NewGazetteerController(gazetteerService *services.GazetteerService, logger *zap.Logger) *GazetteerController {
	return &GazetteerController{
		gazetteerService: gazetteerService,
		logger:           logger,
	}
}

// ListProvinces danh sách tỉnh
func (gc *GazetteerController) ListProvinces(c *gin.Context) {
	provinces := gc.gazetteerService.Provinces()
	c.JSON(http.StatusOK, responses.NameListResponse{
		Names:            provinces,
		Total:            len(provinces),
		GazetteerVersion: gc.gazetteerService.Version(),
	})
}

// ListDistricts danh sách huyện của tỉnh
func (gc *GazetteerController) ListDistricts(c *gin.Context) {
	districts, err := gc.gazetteerService.Districts(c.Param("province"))
	if err != nil {
		writeError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.NameListResponse{
		Names:            districts,
		Total:            len(districts),
		GazetteerVersion: gc.gazetteerService.Version(),
	})
}

// LookupPostal huyện và xã theo mã bưu chính
func (gc *GazetteerController) LookupPostal(c *gin.Context) {
	code := c.Param("code")
	districts, subdistricts, err := gc.gazetteerService.Postal(code)
	if err != nil {
		writeError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.PostalLookupResponse{
		PostalCode:   code,
		Districts:    districts,
		Subdistricts: subdistricts,
	})
}

// Search tìm đơn vị hành chính trên Meilisearch
func (gc *GazetteerController) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, responses.NewErrorResponse("MISSING_QUERY", "Thiếu tham số q"))
		return
	}

	limit := defaultSearchLimit
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = min(l, maxSearchLimit)
		}
	}

	docs, err := gc.gazetteerService.Search(query, c.Query("level"), c.Query("province"), limit)
	if err != nil {
		writeError(c, gc.logger, err)
		return
	}
	c.JSON(http.StatusOK, responses.SearchResponse{
		Query:   query,
		Results: docs,
		Total:   len(docs),
	})
}
