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

type fakeDriverStore struct {
	drivers map[string]*models.Driver
	exists  bool
	created *models.Driver
	updated *models.Driver
}

func (f *fakeDriverStore) List(context.Context, models.DriverFilter) ([]models.Driver, int, error) {
	out := make([]models.Driver, 0, len(f.drivers))
	for _, d := range f.drivers {
		out = append(out, *d)
	}
	return out, len(out), nil
}

func (f *fakeDriverStore) FindByID(_ context.Context, id string) (*models.Driver, error) {
	if d, ok := f.drivers[id]; ok {
		return d, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeDriverStore) ExistsByEmployeeID(context.Context, string, string) (bool, error) {
	return f.exists, nil
}

func (f *fakeDriverStore) Create(_ context.Context, driver *models.Driver) error {
	driver.ID = "drv-new"
	f.created = driver
	return nil
}

func (f *fakeDriverStore) Update(_ context.Context, driver *models.Driver) error {
	f.updated = driver
	return nil
}

func (f *fakeDriverStore) Deactivate(_ context.Context, id string) error {
	if d, ok := f.drivers[id]; ok {
		d.Active = false
	}
	return nil
}

func validCreateDriverRequest() CreateDriverRequest {
	return CreateDriverRequest{
		EmployeeID:            "EMP100",
		FirstName:             "Pat",
		LastName:              "Wheeler",
		Email:                 "pat@fleet.test",
		Phone:                 "555-0100",
		HireDate:              models.NewDate(2023, time.March, 1),
		LicenseNumber:         "LN-100",
		LicenseClass:          models.LicenseClassCDLA,
		LicenseExpiry:         models.NewDate(2027, time.March, 1),
		DateOfBirth:           models.NewDate(1988, time.July, 4),
		Address:               "1 Fleet Way",
		EmergencyContactName:  "Sam Wheeler",
		EmergencyContactPhone: "555-0101",
	}
}

func TestDriverServiceCreate(t *testing.T) {
	store := &fakeDriverStore{drivers: map[string]*models.Driver{}}
	svc := NewDriverService(store, nil, zap.NewNop())

	driver, err := svc.Create(context.Background(), validCreateDriverRequest())
	require.NoError(t, err)
	assert.Equal(t, "drv-new", driver.ID)
	assert.True(t, driver.Active)
	assert.Equal(t, "EMP100", store.created.EmployeeID)
}

func TestDriverServiceCreateDuplicateEmployeeID(t *testing.T) {
	store := &fakeDriverStore{exists: true}
	svc := NewDriverService(store, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), validCreateDriverRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "CONFLICT", appErr.Code)
	assert.Equal(t, 409, appErr.Status)
}

func TestDriverServiceCreateValidation(t *testing.T) {
	svc := NewDriverService(&fakeDriverStore{}, nil, zap.NewNop())

	req := validCreateDriverRequest()
	req.Email = "not-an-email"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)

	req = validCreateDriverRequest()
	req.LicenseClass = "Class Z"
	_, err = svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", appErrors.FromError(err).Code)
}

func TestDriverServiceGetNotFound(t *testing.T) {
	svc := NewDriverService(&fakeDriverStore{drivers: map[string]*models.Driver{}}, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.Equal(t, 404, appErr.Status)
}

func TestDriverServiceUpdateAppliesFields(t *testing.T) {
	existing := &models.Driver{ID: "drv-1", EmployeeID: "EMP001", FirstName: "Jane", LastName: "Driver", Active: true}
	store := &fakeDriverStore{drivers: map[string]*models.Driver{"drv-1": existing}}
	svc := NewDriverService(store, nil, zap.NewNop())

	phone := "555-0999"
	active := false
	updated, err := svc.Update(context.Background(), "drv-1", UpdateDriverRequest{Phone: &phone, Active: &active})
	require.NoError(t, err)
	assert.Equal(t, "555-0999", updated.Phone)
	assert.False(t, updated.Active)
	assert.Equal(t, "EMP001", updated.EmployeeID)
}

func TestDriverServiceDeactivate(t *testing.T) {
	existing := &models.Driver{ID: "drv-1", Active: true}
	store := &fakeDriverStore{drivers: map[string]*models.Driver{"drv-1": existing}}
	svc := NewDriverService(store, nil, zap.NewNop())

	require.NoError(t, svc.Deactivate(context.Background(), "drv-1"))
	assert.False(t, existing.Active)
}
