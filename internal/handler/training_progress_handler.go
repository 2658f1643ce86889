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

type trainingProgressService interface {
	List(ctx context.Context, filter models.ProgressFilter) ([]models.TrainingProgress, error)
	Assign(ctx context.Context, req service.AssignTrainingRequest) (*models.TrainingProgress, error)
	Update(ctx context.Context, id string, req service.UpdateProgressRequest) (*models.TrainingProgress, error)
}

// TrainingProgressHandler wires the assignment lifecycle to HTTP endpoints.
type TrainingProgressHandler struct {
	service trainingProgressService
}

// NewTrainingProgressHandler constructs the handler.
func NewTrainingProgressHandler(service trainingProgressService) *TrainingProgressHandler {
	return &TrainingProgressHandler{service: service}
}

// List godoc
// @Summary List training progress records
// @Tags Training Progress
// @Produce json
// @Param driver_id query string false "Filter by driver"
// @Param module_id query string false "Filter by module"
// @Success 200 {object} response.Envelope
// @Router /training-progress [get]
func (h *TrainingProgressHandler) List(c *gin.Context) {
	filter := models.ProgressFilter{
		DriverID: strings.TrimSpace(c.Query("driver_id")),
		ModuleID: strings.TrimSpace(c.Query("module_id")),
	}
	records, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, records, nil)
}

// Assign godoc
// @Summary Assign a training module to a driver
// @Tags Training Progress
// @Accept json
// @Produce json
// @Param payload body service.AssignTrainingRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /training-progress [post]
func (h *TrainingProgressHandler) Assign(c *gin.Context) {
	var req service.AssignTrainingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	progress, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, progress)
}

// Update godoc
// @Summary Advance a training assignment
// @Tags Training Progress
// @Accept json
// @Produce json
// @Param id path string true "Progress ID"
// @Param payload body service.UpdateProgressRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /training-progress/{id} [put]
func (h *TrainingProgressHandler) Update(c *gin.Context) {
	var req service.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	progress, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, progress, nil)
}
