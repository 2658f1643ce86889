package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

// TrainingProgressStore is the persistence surface the progress service
// depends on.
type TrainingProgressStore interface {
	List(ctx context.Context, filter models.ProgressFilter) ([]models.TrainingProgress, error)
	FindByID(ctx context.Context, id string) (*models.TrainingProgress, error)
	ExistsByDriverAndModule(ctx context.Context, driverID, moduleID string) (bool, error)
	Create(ctx context.Context, progress *models.TrainingProgress) error
	Update(ctx context.Context, progress *models.TrainingProgress) error
}

// ProgressDriverStore resolves drivers referenced by assignments.
type ProgressDriverStore interface {
	FindByID(ctx context.Context, id string) (*models.Driver, error)
}

// ProgressModuleStore resolves modules referenced by assignments.
type ProgressModuleStore interface {
	FindByID(ctx context.Context, id string) (*models.TrainingModule, error)
}

// AssignTrainingRequest carries the payload for assigning a module to a
// driver.
type AssignTrainingRequest struct {
	DriverID  string       `json:"driver_id" validate:"required"`
	ModuleID  string       `json:"module_id" validate:"required"`
	StartDate *models.Date `json:"start_date"`
}

// UpdateProgressRequest carries the payload for advancing an assignment.
type UpdateProgressRequest struct {
	Status          *models.TrainingStatus `json:"status,omitempty" validate:"omitempty,oneof=not_started in_progress completed failed"`
	Score           *int                   `json:"score,omitempty" validate:"omitempty,gte=0,lte=100"`
	StartDate       *models.Date           `json:"start_date,omitempty"`
	CompletionDate  *models.Date           `json:"completion_date,omitempty"`
	InstructorNotes *string                `json:"instructor_notes,omitempty"`
}

// TrainingProgressService enforces the assignment lifecycle. Status moves
// through not_started, in_progress and then either completed or failed;
// completed and failed are terminal.
type TrainingProgressService struct {
	repo     TrainingProgressStore
	drivers  ProgressDriverStore
	modules  ProgressModuleStore
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewTrainingProgressService constructs a TrainingProgressService.
func NewTrainingProgressService(repo TrainingProgressStore, drivers ProgressDriverStore, modules ProgressModuleStore, cache *CacheService, logger *zap.Logger) *TrainingProgressService {
	return &TrainingProgressService{
		repo:     repo,
		drivers:  drivers,
		modules:  modules,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// List returns progress records for the optional driver/module filters.
func (s *TrainingProgressService) List(ctx context.Context, filter models.ProgressFilter) ([]models.TrainingProgress, error) {
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list training progress")
	}
	return records, nil
}

// Assign creates a new training assignment. A driver can hold at most one
// record per module.
func (s *TrainingProgressService) Assign(ctx context.Context, req AssignTrainingRequest) (*models.TrainingProgress, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	if _, err := s.drivers.FindByID(ctx, req.DriverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "driver not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch driver")
	}
	if _, err := s.modules.FindByID(ctx, req.ModuleID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training module not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch training module")
	}

	exists, err := s.repo.ExistsByDriverAndModule(ctx, req.DriverID, req.ModuleID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify assignment")
	}
	if exists {
		return nil, appErrors.ErrDuplicateAssignment
	}

	progress := &models.TrainingProgress{
		DriverID:  req.DriverID,
		ModuleID:  req.ModuleID,
		Status:    models.StatusNotStarted,
		StartDate: req.StartDate,
	}
	if err := s.repo.Create(ctx, progress); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create training progress")
	}

	s.invalidateDerived(ctx)
	s.logger.Info("training assigned",
		zap.String("progress_id", progress.ID),
		zap.String("driver_id", progress.DriverID),
		zap.String("module_id", progress.ModuleID))
	return progress, nil
}

// Update advances an assignment. Status changes must follow the transition
// graph and every accepted change increments the attempt counter; completion
// requires a score, and completing stamps today's date when none is supplied.
func (s *TrainingProgressService) Update(ctx context.Context, id string, req UpdateProgressRequest) (*models.TrainingProgress, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	progress, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training progress not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch training progress")
	}

	if req.Status != nil && *req.Status != progress.Status {
		target := *req.Status
		if !progress.Status.CanTransitionTo(target) {
			return nil, appErrors.Clone(appErrors.ErrInvalidTransition,
				fmt.Sprintf("cannot transition from %s to %s", progress.Status, target))
		}
		switch target {
		case models.StatusInProgress:
			if progress.StartDate == nil {
				today := models.DateOf(s.now().UTC())
				progress.StartDate = &today
			}
		case models.StatusCompleted:
			if req.Score == nil && progress.Score == nil {
				return nil, appErrors.Clone(appErrors.ErrValidation, "score is required to complete training")
			}
			if progress.CompletionDate == nil && req.CompletionDate == nil {
				today := models.DateOf(s.now().UTC())
				progress.CompletionDate = &today
			}
		}
		progress.Attempts++
		progress.Status = target
	}

	if req.Score != nil {
		progress.Score = req.Score
	}
	if req.StartDate != nil {
		progress.StartDate = req.StartDate
	}
	if req.CompletionDate != nil {
		progress.CompletionDate = req.CompletionDate
	}
	if req.InstructorNotes != nil {
		progress.InstructorNotes = req.InstructorNotes
	}

	if err := s.repo.Update(ctx, progress); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update training progress")
	}

	s.invalidateDerived(ctx)
	s.logger.Info("training progress updated",
		zap.String("progress_id", progress.ID),
		zap.String("status", string(progress.Status)))
	return progress, nil
}

func (s *TrainingProgressService) invalidateDerived(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "dashboard:*")
	_ = s.cache.Invalidate(ctx, "analytics:*")
	_ = s.cache.Invalidate(ctx, "report:*")
}
