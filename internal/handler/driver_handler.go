package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/driver-training-api/internal/models"
	"github.com/fleetops/driver-training-api/internal/service"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
	"github.com/fleetops/driver-training-api/pkg/response"
)

type driverService interface {
	List(ctx context.Context, filter models.DriverFilter) ([]models.Driver, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.Driver, error)
	Create(ctx context.Context, req service.CreateDriverRequest) (*models.Driver, error)
	Update(ctx context.Context, id string, req service.UpdateDriverRequest) (*models.Driver, error)
	Deactivate(ctx context.Context, id string) error
}

// DriverHandler wires driver service to HTTP endpoints.
type DriverHandler struct {
	service driverService
}

// NewDriverHandler constructs the handler.
func NewDriverHandler(service driverService) *DriverHandler {
	return &DriverHandler{service: service}
}

// List godoc
// @Summary List drivers
// @Tags Drivers
// @Produce json
// @Param search query string false "Search by name or employee ID"
// @Param is_active query bool false "Filter by active state"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param sort_by query string false "Sort column"
// @Param sort_order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /drivers [get]
func (h *DriverHandler) List(c *gin.Context) {
	filter := models.DriverFilter{
		Search:    strings.TrimSpace(c.Query("search")),
		SortBy:    strings.TrimSpace(c.Query("sort_by")),
		SortOrder: strings.TrimSpace(c.Query("sort_order")),
	}
	if raw := strings.TrimSpace(c.Query("is_active")); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "is_active must be a boolean"))
			return
		}
		filter.Active = &active
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))

	drivers, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, drivers, pagination)
}

// Get godoc
// @Summary Get a driver by ID
// @Tags Drivers
// @Produce json
// @Param id path string true "Driver ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /drivers/{id} [get]
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, driver, nil)
}

// Create godoc
// @Summary Register a new driver
// @Tags Drivers
// @Accept json
// @Produce json
// @Param payload body service.CreateDriverRequest true "Driver payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /drivers [post]
func (h *DriverHandler) Create(c *gin.Context) {
	var req service.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	driver, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, driver)
}

// Update godoc
// @Summary Update a driver
// @Tags Drivers
// @Accept json
// @Produce json
// @Param id path string true "Driver ID"
// @Param payload body service.UpdateDriverRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /drivers/{id} [put]
func (h *DriverHandler) Update(c *gin.Context) {
	var req service.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request payload"))
		return
	}
	driver, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, driver, nil)
}

// Delete godoc
// @Summary Deactivate a driver
// @Tags Drivers
// @Param id path string true "Driver ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /drivers/{id} [delete]
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
