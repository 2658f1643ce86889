package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/middleware"
	"github.com/fleetops/driver-training-api/internal/service"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
	"github.com/fleetops/driver-training-api/pkg/response"
)

type reportService interface {
	ComplianceReport(ctx context.Context) ([]dto.ComplianceRow, bool, error)
	RenderCSV(rows []dto.ComplianceRow) ([]byte, error)
	RenderPDF(rows []dto.ComplianceRow) ([]byte, error)
}

// ReportHandler wires compliance reporting to HTTP endpoints.
type ReportHandler struct {
	service reportService
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService) *ReportHandler {
	return &ReportHandler{service: service}
}

// Compliance godoc
// @Summary Per-driver compliance report
// @Tags Reports
// @Produce json
// @Param format query string false "json, csv or pdf" default(json)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /analytics/compliance-report [get]
func (h *ReportHandler) Compliance(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", service.ReportFormatJSON)))
	switch format {
	case service.ReportFormatJSON, service.ReportFormatCSV, service.ReportFormatPDF:
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be json, csv or pdf"))
		return
	}

	start := time.Now()
	rows, cacheHit, err := h.service.ComplianceReport(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	switch format {
	case service.ReportFormatCSV:
		payload, err := h.service.RenderCSV(rows)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", attachmentName("csv"))
		c.Data(http.StatusOK, "text/csv", payload)
	case service.ReportFormatPDF:
		payload, err := h.service.RenderPDF(rows)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", attachmentName("pdf"))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		middleware.SetCacheHit(c, cacheHit)
		meta := middleware.ExtractMeta(c)
		if meta == nil {
			meta = map[string]interface{}{}
		}
		meta["processing_time_ms"] = time.Since(start).Milliseconds()
		response.JSON(c, http.StatusOK, rows, nil, meta)
	}
}

func attachmentName(ext string) string {
	stamp := time.Now().UTC().Format("20060102")
	return fmt.Sprintf("attachment; filename=compliance_report_%s.%s", stamp, ext)
}
