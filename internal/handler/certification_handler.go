package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-training-api/internal/models"
	"github.com/fleetops/driver-training-api/internal/service"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
	"github.com/fleetops/driver-training-api/pkg/response"
)

type certificationService interface {
	List(ctx context.Context, driverID string) ([]models.Certification, error)
	ListExpiring(ctx context.Context) ([]models.ExpiringCertification, error)
	Create(ctx context.Context, req service.CreateCertificationRequest) (*models.Certification, error)
}

// CertificationHandler wires certification service to HTTP endpoints.
type CertificationHandler struct {
	service certificationService
}

// NewCertificationHandler constructs the handler.
func NewCertificationHandler(service certificationService) *CertificationHandler {
	return &CertificationHandler{service: service}
}

// List godoc
// @Summary List certifications
// @Tags Certifications
// @Produce json
// @Param driver_id query string false "Filter by driver"
// @Success 200 {object} response.Envelope
// @Router /certifications [get]
func (h *CertificationHandler) List(c *gin.Context) {
	certs, err := h.service.List(c.Request.Context(), strings.TrimSpace(c.Query("driver_id")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, certs, nil)
}

// ListExpiring godoc
// @Summary List certifications expired or expiring within 30 days
// @Tags Certifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /certifications/expiring [get]
func (h *CertificationHandler) ListExpiring(c *gin.Context) {
	certs, err := h.service.ListExpiring(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, certs, nil)
}

// Create godoc
// @Summary Record a certification for a driver
// @Tags Certifications
// @Accept json
// @Produce json
// @Param payload body service.CreateCertificationRequest true "Certification payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /certifications [post]
func (h *CertificationHandler) Create(c *gin.Context) {
	var req service.CreateCertificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	cert, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cert)
}
