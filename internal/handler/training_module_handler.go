package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/models"
	"github.com/fleetops/driver-training-api/internal/service"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
	"github.com/fleetops/driver-training-api/pkg/response"
)

type trainingModuleService interface {
	List(ctx context.Context) ([]models.TrainingModule, error)
	Get(ctx context.Context, id string) (*models.TrainingModule, error)
	Create(ctx context.Context, req service.CreateTrainingModuleRequest) (*models.TrainingModule, error)
	InitializeDefaults(ctx context.Context) (*dto.SeedResult, error)
}

// TrainingModuleHandler wires training module service to HTTP endpoints.
type TrainingModuleHandler struct {
	service trainingModuleService
}

// NewTrainingModuleHandler constructs the handler.
func NewTrainingModuleHandler(service trainingModuleService) *TrainingModuleHandler {
	return &TrainingModuleHandler{service: service}
}

// List godoc
// @Summary List training modules
// @Tags Training Modules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /training-modules [get]
func (h *TrainingModuleHandler) List(c *gin.Context) {
	modules, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, modules, nil)
}

// Get godoc
// @Summary Get a training module by ID
// @Tags Training Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /training-modules/{id} [get]
func (h *TrainingModuleHandler) Get(c *gin.Context) {
	module, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, module, nil)
}

// Create godoc
// @Summary Define a new training module
// @Tags Training Modules
// @Accept json
// @Produce json
// @Param payload body service.CreateTrainingModuleRequest true "Module payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /training-modules [post]
func (h *TrainingModuleHandler) Create(c *gin.Context) {
	var req service.CreateTrainingModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	module, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, module)
}

// InitializeDefaults godoc
// @Summary Seed the default training module catalogue
// @Tags Training Modules
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /training-modules/initialize-defaults [post]
func (h *TrainingModuleHandler) InitializeDefaults(c *gin.Context) {
	result, err := h.service.InitializeDefaults(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
