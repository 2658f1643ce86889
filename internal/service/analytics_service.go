package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

// unknownModuleName is the fallback label when an assignment references a
// module that can no longer be resolved.
const unknownModuleName = "Unknown Module"

// AnalyticsModuleStore resolves modules and their display names.
type AnalyticsModuleStore interface {
	FindByID(ctx context.Context, id string) (*models.TrainingModule, error)
	NamesByIDs(ctx context.Context, ids []string) (map[string]string, error)
}

// AnalyticsCertificationStore lists certifications per driver.
type AnalyticsCertificationStore interface {
	List(ctx context.Context, driverID string) ([]models.Certification, error)
}

// AnalyticsService derives per-driver and per-module training statistics.
type AnalyticsService struct {
	drivers  ProgressDriverStore
	modules  AnalyticsModuleStore
	progress TrainingProgressStore
	certs    AnalyticsCertificationStore
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(drivers ProgressDriverStore, modules AnalyticsModuleStore, progress TrainingProgressStore, certs AnalyticsCertificationStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
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

// DriverProgress assembles the per-driver analytics payload. The second
// return value reports whether the payload came from cache.
func (s *AnalyticsService) DriverProgress(ctx context.Context, driverID string) (*dto.DriverProgressResponse, bool, error) {
	cacheKey := "analytics:driver:" + driverID
	if s.cache != nil {
		var cached dto.DriverProgressResponse
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, true, nil
		}
	}

	driver, err := s.drivers.FindByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "driver not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch driver")
	}

	records, err := s.progress.List(ctx, models.ProgressFilter{DriverID: driverID})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list training progress")
	}

	moduleIDs := make([]string, 0, len(records))
	for _, record := range records {
		moduleIDs = append(moduleIDs, record.ModuleID)
	}
	names, err := s.modules.NamesByIDs(ctx, moduleIDs)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve module names")
	}

	details := make([]dto.ProgressDetail, 0, len(records))
	stats := dto.TrainingStats{TotalAssigned: len(records)}
	var scoreSum, scoreCount int
	for _, record := range records {
		name, ok := names[record.ModuleID]
		if !ok {
			name = unknownModuleName
		}
		details = append(details, dto.ProgressDetail{TrainingProgress: record, ModuleName: name})

		switch record.Status {
		case models.StatusCompleted:
			stats.Completed++
			if record.Score != nil {
				scoreSum += *record.Score
				scoreCount++
			}
		case models.StatusInProgress:
			stats.InProgress++
		case models.StatusFailed:
			stats.Failed++
		default:
			stats.NotStarted++
		}
	}
	if stats.TotalAssigned > 0 {
		stats.CompletionRate = roundRate(float64(stats.Completed) / float64(stats.TotalAssigned) * 100)
	}
	if scoreCount > 0 {
		stats.AverageScore = roundRate(float64(scoreSum) / float64(scoreCount))
	}

	certs, err := s.certs.List(ctx, driverID)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certifications")
	}
	now := s.now().UTC()
	for i := range certs {
		certs[i].Status = models.ExpiryStatusFor(certs[i].ExpiryDate, now)
	}

	resp := &dto.DriverProgressResponse{
		Driver:         driver,
		TrainingStats:  stats,
		ProgressDetail: details,
		Certifications: certs,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, resp, s.cacheTTL)
	}
	return resp, false, nil
}

// ModulePerformance assembles the per-module analytics payload. The second
// return value reports whether the payload came from cache.
func (s *AnalyticsService) ModulePerformance(ctx context.Context, moduleID string) (*dto.ModulePerformanceResponse, bool, error) {
	cacheKey := "analytics:module:" + moduleID
	if s.cache != nil {
		var cached dto.ModulePerformanceResponse
		if hit, _ := s.cache.Get(ctx, cacheKey, &cached); hit {
			return &cached, true, nil
		}
	}

	module, err := s.modules.FindByID(ctx, moduleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "training module not found")
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch training module")
	}

	records, err := s.progress.List(ctx, models.ProgressFilter{ModuleID: moduleID})
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list training progress")
	}

	stats := dto.ModulePerformanceStats{TotalAssigned: len(records)}
	// Score buckets: 0-59, 60-69, 70-79, 80-89, 90-100.
	distribution := make([]int, 5)
	var scoreSum, scoreCount, attemptSum int
	for _, record := range records {
		if record.Status == models.StatusCompleted {
			stats.Completed++
		}
		attemptSum += record.Attempts
		if record.Score != nil {
			scoreSum += *record.Score
			scoreCount++
			distribution[scoreBucket(*record.Score)]++
		}
	}
	if stats.TotalAssigned > 0 {
		stats.CompletionRate = roundRate(float64(stats.Completed) / float64(stats.TotalAssigned) * 100)
		stats.AverageAttempts = roundRate(float64(attemptSum) / float64(stats.TotalAssigned))
	}
	if scoreCount > 0 {
		stats.AverageScore = roundRate(float64(scoreSum) / float64(scoreCount))
	}

	resp := &dto.ModulePerformanceResponse{
		Module:                  module,
		Stats:                   stats,
		PerformanceDistribution: distribution,
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, cacheKey, resp, s.cacheTTL)
	}
	return resp, false, nil
}

func scoreBucket(score int) int {
	switch {
	case score < 60:
		return 0
	case score < 70:
		return 1
	case score < 80:
		return 2
	case score < 90:
		return 3
	default:
		return 4
	}
}
