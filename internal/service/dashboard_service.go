package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

const dashboardSummaryKey = "dashboard:summary"

// DashboardDriverStore provides the driver counts backing the dashboard.
type DashboardDriverStore interface {
	Count(ctx context.Context) (int, error)
	CountActive(ctx context.Context) (int, error)
}

// DashboardModuleStore provides the module counts backing the dashboard.
type DashboardModuleStore interface {
	Count(ctx context.Context) (int, error)
}

// DashboardProgressStore provides the completion counters backing the
// dashboard.
type DashboardProgressStore interface {
	CountAll(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.TrainingStatus) (int, error)
	CountCompletedSince(ctx context.Context, since models.Date) (int, error)
}

// DashboardCertificationStore surfaces certifications near or past expiry.
type DashboardCertificationStore interface {
	ListExpiringBefore(ctx context.Context, cutoff models.Date) ([]models.ExpiringCertification, error)
}

// DashboardService composes the fleet-wide summary.
type DashboardService struct {
	drivers  DashboardDriverStore
	modules  DashboardModuleStore
	progress DashboardProgressStore
	certs    DashboardCertificationStore
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(drivers DashboardDriverStore, modules DashboardModuleStore, progress DashboardProgressStore, certs DashboardCertificationStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		drivers:  drivers,
		modules:  modules,
		progress: progress,
		certs:    certs,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// Summary builds the dashboard metrics, serving from cache when possible.
// The second return value reports whether the payload came from cache.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, bool, error) {
	if s.cache != nil {
		var cached dto.DashboardSummary
		if hit, _ := s.cache.Get(ctx, dashboardSummaryKey, &cached); hit {
			return &cached, true, nil
		}
	}

	summary, err := s.buildSummary(ctx)
	if err != nil {
		return nil, false, err
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, dashboardSummaryKey, summary, s.cacheTTL)
	}
	return summary, false, nil
}

func (s *DashboardService) buildSummary(ctx context.Context) (*dto.DashboardSummary, error) {
	totalDrivers, err := s.drivers.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count drivers")
	}
	activeDrivers, err := s.drivers.CountActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count active drivers")
	}
	totalModules, err := s.modules.Count(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count training modules")
	}

	now := s.now().UTC()
	today := models.DateOf(now)
	cutoff := today.AddDays(models.ExpiryWindowDays)

	certs, err := s.certs.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to inspect certifications")
	}
	expiredDrivers := map[string]struct{}{}
	expiringDrivers := map[string]struct{}{}
	for _, cert := range certs {
		switch models.ExpiryStatusFor(cert.ExpiryDate, now) {
		case models.CertStatusExpired:
			expiredDrivers[cert.DriverID] = struct{}{}
		case models.CertStatusExpiringSoon:
			expiringDrivers[cert.DriverID] = struct{}{}
		}
	}

	totalProgress, err := s.progress.CountAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count training progress")
	}
	completed, err := s.progress.CountByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count completed training")
	}
	recent, err := s.progress.CountCompletedSince(ctx, today.AddDays(-30))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count recent completions")
	}

	var completionRate float64
	if totalProgress > 0 {
		completionRate = roundRate(float64(completed) / float64(totalProgress) * 100)
	}

	return &dto.DashboardSummary{
		TotalDrivers:                      totalDrivers,
		ActiveDrivers:                     activeDrivers,
		TotalTrainingModules:              totalModules,
		DriversWithExpiredCertifications:  len(expiredDrivers),
		DriversWithExpiringCertifications: len(expiringDrivers),
		OverallCompletionRate:             completionRate,
		RecentCompletions:                 recent,
	}, nil
}

// roundRate rounds a percentage to two decimal places.
func roundRate(v float64) float64 {
	return math.Round(v*100) / 100
}
