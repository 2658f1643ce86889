package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

// DriverStore is the persistence surface the driver service depends on.
type DriverStore interface {
	List(ctx context.Context, filter models.DriverFilter) ([]models.Driver, int, error)
	FindByID(ctx context.Context, id string) (*models.Driver, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID string) (bool, error)
	Create(ctx context.Context, driver *models.Driver) error
	Update(ctx context.Context, driver *models.Driver) error
	Deactivate(ctx context.Context, id string) error
}

// CreateDriverRequest carries the payload for registering a driver.
type CreateDriverRequest struct {
	EmployeeID            string              `json:"employee_id" validate:"required"`
	FirstName             string              `json:"first_name" validate:"required"`
	LastName              string              `json:"last_name" validate:"required"`
	Email                 string              `json:"email" validate:"required,email"`
	Phone                 string              `json:"phone" validate:"required"`
	HireDate              models.Date         `json:"hire_date" validate:"required"`
	LicenseNumber         string              `json:"license_number" validate:"required"`
	LicenseClass          models.LicenseClass `json:"license_class" validate:"required,oneof='Class A' 'Class B' 'Class C' 'CDL Class A' 'CDL Class B'"`
	LicenseExpiry         models.Date         `json:"license_expiry" validate:"required"`
	DateOfBirth           models.Date         `json:"date_of_birth" validate:"required"`
	Address               string              `json:"address" validate:"required"`
	EmergencyContactName  string              `json:"emergency_contact_name" validate:"required"`
	EmergencyContactPhone string              `json:"emergency_contact_phone" validate:"required"`
}

// UpdateDriverRequest carries mutable driver fields. Nil fields are untouched.
type UpdateDriverRequest struct {
	EmployeeID            *string              `json:"employee_id,omitempty"`
	FirstName             *string              `json:"first_name,omitempty"`
	LastName              *string              `json:"last_name,omitempty"`
	Email                 *string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone                 *string              `json:"phone,omitempty"`
	LicenseNumber         *string              `json:"license_number,omitempty"`
	LicenseClass          *models.LicenseClass `json:"license_class,omitempty" validate:"omitempty,oneof='Class A' 'Class B' 'Class C' 'CDL Class A' 'CDL Class B'"`
	LicenseExpiry         *models.Date         `json:"license_expiry,omitempty"`
	Address               *string              `json:"address,omitempty"`
	EmergencyContactName  *string              `json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone *string              `json:"emergency_contact_phone,omitempty"`
	Active                *bool                `json:"is_active,omitempty"`
}

// DriverService owns driver lifecycle rules.
type DriverService struct {
	repo     DriverStore
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewDriverService constructs a DriverService.
func NewDriverService(repo DriverStore, cache *CacheService, logger *zap.Logger) *DriverService {
	return &DriverService{
		repo:     repo,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
	}
}

// List returns drivers matching the filter along with pagination metadata.
func (s *DriverService) List(ctx context.Context, filter models.DriverFilter) ([]models.Driver, *models.Pagination, error) {
	drivers, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list drivers")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: total}
	return drivers, pagination, nil
}

// Get fetches one active driver.
func (s *DriverService) Get(ctx context.Context, id string) (*models.Driver, error) {
	driver, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "driver not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch driver")
	}
	return driver, nil
}

// Create registers a new driver. Employee IDs must be unique.
func (s *DriverService) Create(ctx context.Context, req CreateDriverRequest) (*models.Driver, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	exists, err := s.repo.ExistsByEmployeeID(ctx, req.EmployeeID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify employee id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "employee ID already exists")
	}

	driver := &models.Driver{
		EmployeeID:            req.EmployeeID,
		FirstName:             req.FirstName,
		LastName:              req.LastName,
		Email:                 req.Email,
		Phone:                 req.Phone,
		HireDate:              req.HireDate,
		LicenseNumber:         req.LicenseNumber,
		LicenseClass:          req.LicenseClass,
		LicenseExpiry:         req.LicenseExpiry,
		DateOfBirth:           req.DateOfBirth,
		Address:               req.Address,
		EmergencyContactName:  req.EmergencyContactName,
		EmergencyContactPhone: req.EmergencyContactPhone,
		Active:                true,
	}
	if err := s.repo.Create(ctx, driver); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create driver")
	}

	s.invalidateDerived(ctx)
	s.logger.Info("driver created", zap.String("driver_id", driver.ID), zap.String("employee_id", driver.EmployeeID))
	return driver, nil
}

// Update applies the provided fields to an existing driver.
func (s *DriverService) Update(ctx context.Context, id string, req UpdateDriverRequest) (*models.Driver, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	driver, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.EmployeeID != nil && *req.EmployeeID != driver.EmployeeID {
		exists, err := s.repo.ExistsByEmployeeID(ctx, *req.EmployeeID, driver.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to verify employee id")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrConflict, "employee ID already exists")
		}
		driver.EmployeeID = *req.EmployeeID
	}
	if req.FirstName != nil {
		driver.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		driver.LastName = *req.LastName
	}
	if req.Email != nil {
		driver.Email = *req.Email
	}
	if req.Phone != nil {
		driver.Phone = *req.Phone
	}
	if req.LicenseNumber != nil {
		driver.LicenseNumber = *req.LicenseNumber
	}
	if req.LicenseClass != nil {
		driver.LicenseClass = *req.LicenseClass
	}
	if req.LicenseExpiry != nil {
		driver.LicenseExpiry = *req.LicenseExpiry
	}
	if req.Address != nil {
		driver.Address = *req.Address
	}
	if req.EmergencyContactName != nil {
		driver.EmergencyContactName = *req.EmergencyContactName
	}
	if req.EmergencyContactPhone != nil {
		driver.EmergencyContactPhone = *req.EmergencyContactPhone
	}
	if req.Active != nil {
		driver.Active = *req.Active
	}

	if err := s.repo.Update(ctx, driver); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update driver")
	}

	s.invalidateDerived(ctx)
	s.logger.Info("driver updated", zap.String("driver_id", driver.ID))
	return driver, nil
}

// Deactivate soft-deletes a driver. History is retained.
func (s *DriverService) Deactivate(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate driver")
	}
	s.invalidateDerived(ctx)
	s.logger.Info("driver deactivated", zap.String("driver_id", id))
	return nil
}

func (s *DriverService) invalidateDerived(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Invalidate(ctx, "dashboard:*")
	_ = s.cache.Invalidate(ctx, "analytics:*")
	_ = s.cache.Invalidate(ctx, "report:*")
}

// validationMessage reduces validator errors to a single human-readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return fmt.Sprintf("field '%s' failed on the '%s' rule", first.Field(), first.Tag())
	}
	return "validation failed"
}
