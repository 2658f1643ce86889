package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/fleetops/driver-training-api/internal/models"
	"github.com/fleetops/driver-training-api/internal/service"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeDriverSrv struct {
	driver     *models.Driver
	err        error
	lastFilter models.DriverFilter
}

func (f *fakeDriverSrv) List(_ context.Context, filter models.DriverFilter) ([]models.Driver, *models.Pagination, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, nil, f.err
	}
	return []models.Driver{*f.driver}, &models.Pagination{Page: 1, PageSize: 20, TotalCount: 1}, nil
}

func (f *fakeDriverSrv) Get(context.Context, string) (*models.Driver, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.driver, nil
}

func (f *fakeDriverSrv) Create(context.Context, service.CreateDriverRequest) (*models.Driver, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.driver, nil
}

func (f *fakeDriverSrv) Update(context.Context, string, service.UpdateDriverRequest) (*models.Driver, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.driver, nil
}

func (f *fakeDriverSrv) Deactivate(context.Context, string) error {
	return f.err
}

func TestDriverHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDriverHandler(&fakeDriverSrv{driver: &models.Driver{ID: "drv-1", EmployeeID: "EMP001"}})

	body := `{"employee_id":"EMP001","first_name":"Jane","last_name":"Driver"}`
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "EMP001", envelope.Data["employee_id"])
}

func TestDriverHandlerCreateBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDriverHandler(&fakeDriverSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestDriverHandlerCreateConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDriverHandler(&fakeDriverSrv{err: appErrors.Clone(appErrors.ErrConflict, "employee ID already exists")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/drivers", strings.NewReader(`{"employee_id":"EMP001"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Create(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDriverHandlerListParsesFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeDriverSrv{driver: &models.Driver{ID: "drv-1"}}
	h := NewDriverHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/drivers?search=jane&is_active=true&page=2&page_size=10", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "jane", srv.lastFilter.Search)
	if assert.NotNil(t, srv.lastFilter.Active) {
		assert.True(t, *srv.lastFilter.Active)
	}
	assert.Equal(t, 2, srv.lastFilter.Page)
	assert.Equal(t, 10, srv.lastFilter.PageSize)
}

func TestDriverHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDriverHandler(&fakeDriverSrv{err: appErrors.Clone(appErrors.ErrNotFound, "driver not found")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/drivers/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDriverHandlerDelete(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewDriverHandler(&fakeDriverSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodDelete, "/drivers/drv-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "drv-1"}}

	h.Delete(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
