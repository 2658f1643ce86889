package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

// TrainingModuleStore is the persistence surface the module service depends on.
type TrainingModuleStore interface {
	List(ctx context.Context) ([]models.TrainingModule, error)
	FindByID(ctx context.Context, id string) (*models.TrainingModule, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, module *models.TrainingModule) error
}

// CreateTrainingModuleRequest carries the payload for defining a module.
type CreateTrainingModuleRequest struct {
	Name          string            `json:"name" validate:"required"`
	Description   string            `json:"description" validate:"required"`
	ModuleType    models.ModuleType `json:"module_type" validate:"required,oneof=safety defensive_driving vehicle_inspection hazmat backing_maneuvers cargo_handling hours_of_service fatigue_management"`
	DurationHours float64           `json:"duration_hours" validate:"required,gt=0"`
	RequiredScore int               `json:"required_score" validate:"required,gte=0,lte=100"`
	Mandatory     bool              `json:"is_mandatory"`
	Prerequisites []string          `json:"prerequisites"`
}

// TrainingModuleService owns training module definitions and seeding.
type TrainingModuleService struct {
	repo     TrainingModuleStore
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewTrainingModuleService constructs a TrainingModuleService.
func NewTrainingModuleService(repo TrainingModuleStore, cache *CacheService, logger *zap.Logger) *TrainingModuleService {
	return &TrainingModuleService{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns all training modules.
func (s *TrainingModuleService) List(ctx context.Context) ([]models.TrainingModule, error) {
	modules, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list training modules")
	}
	return modules, nil
}

// Get fetches one training module.
func (s *TrainingModuleService) Get(ctx context.Context, id string) (*models.TrainingModule, error) {
	module, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "training module not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch training module")
	}
	return module, nil
}

// Create defines a new training module. Names must be unique.
func (s *TrainingModuleService) Create(ctx context.Context, req CreateTrainingModuleRequest) (*models.TrainingModule, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify module name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "training module with this name already exists")
	}

	module := &models.TrainingModule{
		Name:          req.Name,
		Description:   req.Description,
		ModuleType:    req.ModuleType,
		DurationHours: req.DurationHours,
		RequiredScore: req.RequiredScore,
		Mandatory:     req.Mandatory,
		Prerequisites: req.Prerequisites,
	}
	if err := s.repo.Create(ctx, module); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create training module")
	}

	s.invalidateDerived(ctx)
	s.logger.Info("training module created", zap.String("module_id", module.ID), zap.String("name", module.Name))
	return module, nil
}

// InitializeDefaults seeds the standard module catalogue. Each default is
// checked by name, so only the missing ones are created.
func (s *TrainingModuleService) InitializeDefaults(ctx context.Context) (*dto.SeedResult, error) {
	defaults := models.DefaultTrainingModules()
	created := make([]models.TrainingModule, 0, len(defaults))
	for i := range defaults {
		module := defaults[i]
		exists, err := s.repo.ExistsByName(ctx, module.Name)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify module name")
		}
		if exists {
			continue
		}
		if err := s.repo.Create(ctx, &module); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed training modules")
		}
		created = append(created, module)
	}

	if len(created) == 0 {
		return &dto.SeedResult{Message: "Training modules already initialized", Modules: []models.TrainingModule{}}, nil
	}

	s.invalidateDerived(ctx)
	s.logger.Info("default training modules created", zap.Int("count", len(created)))
	return &dto.SeedResult{Message: "Default training modules created", Modules: created}, nil
}

func (s *TrainingModuleService) invalidateDerived(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "dashboard:*")
	_ = s.cache.Invalidate(ctx, "analytics:*")
	_ = s.cache.Invalidate(ctx, "report:*")
}
