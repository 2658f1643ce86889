package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

type fakeProgressStore struct {
	records map[string]*models.TrainingProgress
	exists  bool
	created *models.TrainingProgress
	updated *models.TrainingProgress
}

func (f *fakeProgressStore) List(context.Context, models.ProgressFilter) ([]models.TrainingProgress, error) {
	out := make([]models.TrainingProgress, 0, len(f.records))
	for _, r := range f.records {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeProgressStore) FindByID(_ context.Context, id string) (*models.TrainingProgress, error) {
	if r, ok := f.records[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeProgressStore) ExistsByDriverAndModule(context.Context, string, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeProgressStore) Create(_ context.Context, progress *models.TrainingProgress) error {
	progress.ID = "prg-new"
	f.created = progress
	return nil
}

func (f *fakeProgressStore) Update(_ context.Context, progress *models.TrainingProgress) error {
	f.updated = progress
	return nil
}

type fakeDriverFinder struct {
	driver *models.Driver
}

func (f *fakeDriverFinder) FindByID(context.Context, string) (*models.Driver, error) {
	if f.driver == nil {
		return nil, sql.ErrNoRows
	}
	return f.driver, nil
}

type fakeModuleFinder struct {
	module *models.TrainingModule
}

func (f *fakeModuleFinder) FindByID(context.Context, string) (*models.TrainingModule, error) {
	if f.module == nil {
		return nil, sql.ErrNoRows
	}
	return f.module, nil
}

func newProgressService(store *fakeProgressStore, driver *models.Driver, module *models.TrainingModule) *TrainingProgressService {
	svc := NewTrainingProgressService(store, &fakeDriverFinder{driver: driver}, &fakeModuleFinder{module: module}, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestTrainingProgressServiceAssign(t *testing.T) {
	store := &fakeProgressStore{}
	svc := newProgressService(store, &models.Driver{ID: "drv-1"}, &models.TrainingModule{ID: "mod-1"})

	progress, err := svc.Assign(context.Background(), AssignTrainingRequest{DriverID: "drv-1", ModuleID: "mod-1"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusNotStarted, progress.Status)
	assert.Zero(t, progress.Attempts)
	assert.Nil(t, progress.StartDate)
}

func TestTrainingProgressServiceAssignDuplicate(t *testing.T) {
	store := &fakeProgressStore{exists: true}
	svc := newProgressService(store, &models.Driver{ID: "drv-1"}, &models.TrainingModule{ID: "mod-1"})

	_, err := svc.Assign(context.Background(), AssignTrainingRequest{DriverID: "drv-1", ModuleID: "mod-1"})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "DUPLICATE_ASSIGNMENT", appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestTrainingProgressServiceAssignUnknownDriver(t *testing.T) {
	svc := newProgressService(&fakeProgressStore{}, nil, &models.TrainingModule{ID: "mod-1"})

	_, err := svc.Assign(context.Background(), AssignTrainingRequest{DriverID: "ghost", ModuleID: "mod-1"})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}

func TestTrainingProgressServiceStartStampsDateAndAttempt(t *testing.T) {
	store := &fakeProgressStore{records: map[string]*models.TrainingProgress{
		"prg-1": {ID: "prg-1", Status: models.StatusNotStarted},
	}}
	svc := newProgressService(store, nil, nil)

	status := models.StatusInProgress
	updated, err := svc.Update(context.Background(), "prg-1", UpdateProgressRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusInProgress, updated.Status)
	assert.Equal(t, 1, updated.Attempts)
	require.NotNil(t, updated.StartDate)
	assert.Equal(t, "2026-08-24", updated.StartDate.String())
}

func TestTrainingProgressServiceCompleteRequiresScore(t *testing.T) {
	store := &fakeProgressStore{records: map[string]*models.TrainingProgress{
		"prg-1": {ID: "prg-1", Status: models.StatusInProgress, Attempts: 1},
	}}
	svc := newProgressService(store, nil, nil)

	status := models.StatusCompleted
	_, err := svc.Update(context.Background(), "prg-1", UpdateProgressRequest{Status: &status})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Nil(t, store.updated)
}

func TestTrainingProgressServiceCompleteStampsDate(t *testing.T) {
	store := &fakeProgressStore{records: map[string]*models.TrainingProgress{
		"prg-1": {ID: "prg-1", Status: models.StatusInProgress, Attempts: 1},
	}}
	svc := newProgressService(store, nil, nil)

	status := models.StatusCompleted
	score := 92
	updated, err := svc.Update(context.Background(), "prg-1", UpdateProgressRequest{Status: &status, Score: &score})
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, updated.Status)
	assert.Equal(t, 2, updated.Attempts)
	require.NotNil(t, updated.Score)
	assert.Equal(t, 92, *updated.Score)
	require.NotNil(t, updated.CompletionDate)
	assert.Equal(t, "2026-08-24", updated.CompletionDate.String())
}

func TestTrainingProgressServiceFailIncrementsAttempts(t *testing.T) {
	store := &fakeProgressStore{records: map[string]*models.TrainingProgress{
		"prg-1": {ID: "prg-1", Status: models.StatusInProgress, Attempts: 1},
	}}
	svc := newProgressService(store, nil, nil)

	status := models.StatusFailed
	updated, err := svc.Update(context.Background(), "prg-1", UpdateProgressRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, updated.Status)
	assert.Equal(t, 2, updated.Attempts)
}

func TestTrainingProgressServiceRejectsInvalidTransitions(t *testing.T) {
	cases := []struct {
		name   string
		from   models.TrainingStatus
		target models.TrainingStatus
	}{
		{"not started to completed", models.StatusNotStarted, models.StatusCompleted},
		{"not started to failed", models.StatusNotStarted, models.StatusFailed},
		{"completed is terminal", models.StatusCompleted, models.StatusInProgress},
		{"failed is terminal", models.StatusFailed, models.StatusInProgress},
		{"completed to failed", models.StatusCompleted, models.StatusFailed},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := &fakeProgressStore{records: map[string]*models.TrainingProgress{
				"prg-1": {ID: "prg-1", Status: tc.from},
			}}
			svc := newProgressService(store, nil, nil)

			target := tc.target
			_, err := svc.Update(context.Background(), "prg-1", UpdateProgressRequest{Status: &target})
			require.Error(t, err)
			appErr := appErrors.FromError(err)
			assert.Equal(t, "INVALID_TRANSITION", appErr.Code)
			assert.Equal(t, 409, appErr.Status)
		})
	}
}

func TestTrainingProgressServiceScoreBounds(t *testing.T) {
	store := &fakeProgressStore{records: map[string]*models.TrainingProgress{
		"prg-1": {ID: "prg-1", Status: models.StatusInProgress},
	}}
	svc := newProgressService(store, nil, nil)

	score := 150
	_, err := svc.Update(context.Background(), "prg-1", UpdateProgressRequest{Score: &score})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)
}
