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

type fakeProgressSrv struct {
	progress   *models.TrainingProgress
	err        error
	lastFilter models.ProgressFilter
}

func (f *fakeProgressSrv) List(_ context.Context, filter models.ProgressFilter) ([]models.TrainingProgress, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	return []models.TrainingProgress{*f.progress}, nil
}

func (f *fakeProgressSrv) Assign(context.Context, service.AssignTrainingRequest) (*models.TrainingProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.progress, nil
}

func (f *fakeProgressSrv) Update(context.Context, string, service.UpdateProgressRequest) (*models.TrainingProgress, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.progress, nil
}

func TestTrainingProgressHandlerAssignDuplicate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTrainingProgressHandler(&fakeProgressSrv{err: appErrors.ErrDuplicateAssignment})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/training-progress", strings.NewReader(`{"driver_id":"drv-1","module_id":"mod-1"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Assign(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "DUPLICATE_ASSIGNMENT", envelope.Error["code"])
}

func TestTrainingProgressHandlerUpdateInvalidTransition(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTrainingProgressHandler(&fakeProgressSrv{err: appErrors.Clone(appErrors.ErrInvalidTransition, "cannot transition from completed to in_progress")})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/training-progress/prg-1", strings.NewReader(`{"status":"in_progress"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "prg-1"}}

	h.Update(c)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "INVALID_TRANSITION", envelope.Error["code"])
}

func TestTrainingProgressHandlerUpdateBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewTrainingProgressHandler(&fakeProgressSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPut, "/training-progress/prg-1", strings.NewReader("not json"))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "prg-1"}}

	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTrainingProgressHandlerListFilters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeProgressSrv{progress: &models.TrainingProgress{ID: "prg-1"}}
	h := NewTrainingProgressHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/training-progress?driver_id=drv-1&module_id=mod-1", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "drv-1", srv.lastFilter.DriverID)
	assert.Equal(t, "mod-1", srv.lastFilter.ModuleID)
}
