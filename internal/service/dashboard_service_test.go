package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/models"
)

type fakeDashboardDrivers struct {
	total  int
	active int
}

func (f *fakeDashboardDrivers) Count(context.Context) (int, error)       { return f.total, nil }
func (f *fakeDashboardDrivers) CountActive(context.Context) (int, error) { return f.active, nil }

type fakeDashboardModules struct {
	total int
}

func (f *fakeDashboardModules) Count(context.Context) (int, error) { return f.total, nil }

type fakeDashboardProgress struct {
	total     int
	completed int
	recent    int
}

func (f *fakeDashboardProgress) CountAll(context.Context) (int, error) { return f.total, nil }
func (f *fakeDashboardProgress) CountByStatus(context.Context, models.TrainingStatus) (int, error) {
	return f.completed, nil
}
func (f *fakeDashboardProgress) CountCompletedSince(context.Context, models.Date) (int, error) {
	return f.recent, nil
}

type fakeDashboardCerts struct {
	certs []models.ExpiringCertification
}

func (f *fakeDashboardCerts) ListExpiringBefore(context.Context, models.Date) ([]models.ExpiringCertification, error) {
	return f.certs, nil
}

func TestDashboardServiceSummary(t *testing.T) {
	now := time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC)
	certs := []models.ExpiringCertification{
		{Certification: models.Certification{DriverID: "drv-1", ExpiryDate: models.NewDate(2026, time.August, 1)}},
		{Certification: models.Certification{DriverID: "drv-2", ExpiryDate: models.NewDate(2026, time.September, 10)}},
		{Certification: models.Certification{DriverID: "drv-2", ExpiryDate: models.NewDate(2026, time.September, 12)}},
	}
	svc := NewDashboardService(
		&fakeDashboardDrivers{total: 10, active: 8},
		&fakeDashboardModules{total: 8},
		&fakeDashboardProgress{total: 40, completed: 25, recent: 6},
		&fakeDashboardCerts{certs: certs},
		nil, time.Minute, zap.NewNop(),
	)
	svc.now = func() time.Time { return now }

	summary, cacheHit, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.Equal(t, 10, summary.TotalDrivers)
	assert.Equal(t, 8, summary.ActiveDrivers)
	assert.Equal(t, 8, summary.TotalTrainingModules)
	assert.Equal(t, 1, summary.DriversWithExpiredCertifications)
	assert.Equal(t, 1, summary.DriversWithExpiringCertifications)
	assert.InDelta(t, 62.5, summary.OverallCompletionRate, 0.001)
	assert.Equal(t, 6, summary.RecentCompletions)
}

func TestDashboardServiceSummaryEmptyFleet(t *testing.T) {
	svc := NewDashboardService(
		&fakeDashboardDrivers{},
		&fakeDashboardModules{},
		&fakeDashboardProgress{},
		&fakeDashboardCerts{},
		nil, time.Minute, zap.NewNop(),
	)

	summary, _, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Zero(t, summary.TotalDrivers)
	assert.Zero(t, summary.OverallCompletionRate)
}
