package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/middleware"
	"github.com/fleetops/driver-training-api/pkg/response"
)

type analyticsService interface {
	DriverProgress(ctx context.Context, driverID string) (*dto.DriverProgressResponse, bool, error)
	ModulePerformance(ctx context.Context, moduleID string) (*dto.ModulePerformanceResponse, bool, error)
}

// AnalyticsHandler wires analytics aggregates to HTTP endpoints.
type AnalyticsHandler struct {
	service analyticsService
}

// NewAnalyticsHandler constructs the handler.
func NewAnalyticsHandler(service analyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// DriverProgress godoc
// @Summary Per-driver training analytics
// @Tags Analytics
// @Produce json
// @Param driverId path string true "Driver ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/driver-progress/{driverId} [get]
func (h *AnalyticsHandler) DriverProgress(c *gin.Context) {
	start := time.Now()
	resp, cacheHit, err := h.service.DriverProgress(c.Request.Context(), c.Param("driverId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, resp, nil, meta)
}

// ModulePerformance godoc
// @Summary Per-module performance analytics
// @Tags Analytics
// @Produce json
// @Param moduleId path string true "Module ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /analytics/module-performance/{moduleId} [get]
func (h *AnalyticsHandler) ModulePerformance(c *gin.Context) {
	start := time.Now()
	resp, cacheHit, err := h.service.ModulePerformance(c.Request.Context(), c.Param("moduleId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, resp, nil, meta)
}
