package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

// CertificationStore is the persistence surface the certification service
// depends on.
type CertificationStore interface {
	List(ctx context.Context, driverID string) ([]models.Certification, error)
	ListExpiringBefore(ctx context.Context, cutoff models.Date) ([]models.ExpiringCertification, error)
	Create(ctx context.Context, cert *models.Certification) error
}

// CreateCertificationRequest carries the payload for recording a
// certification.
type CreateCertificationRequest struct {
	DriverID          string      `json:"driver_id" validate:"required"`
	CertificationName string      `json:"certification_name" validate:"required"`
	CertificationType string      `json:"certification_type" validate:"required"`
	IssueDate         models.Date `json:"issue_date" validate:"required"`
	ExpiryDate        models.Date `json:"expiry_date" validate:"required"`
	IssuingAuthority  string      `json:"issuing_authority" validate:"required"`
	CertificateNumber string      `json:"certificate_number" validate:"required"`
}

// CertificationService owns certification records and their derived expiry
// status.
type CertificationService struct {
	repo     CertificationStore
	drivers  ProgressDriverStore
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
}

// NewCertificationService constructs a CertificationService.
func NewCertificationService(repo CertificationStore, drivers ProgressDriverStore, cache *CacheService, logger *zap.Logger) *CertificationService {
	return &CertificationService{
		repo:     repo,
		drivers:  drivers,
		cache:    cache,
		validate: validator.New(),
		logger:   logger,
		now:      time.Now,
	}
}

// List returns certifications, optionally for one driver, with the status
// field recomputed against today.
func (s *CertificationService) List(ctx context.Context, driverID string) ([]models.Certification, error) {
	certs, err := s.repo.List(ctx, driverID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list certifications")
	}
	now := s.now().UTC()
	for i := range certs {
		certs[i].Status = models.ExpiryStatusFor(certs[i].ExpiryDate, now)
	}
	return certs, nil
}

// ListExpiring returns certifications already expired or expiring within the
// alert window, joined with the driver's name.
func (s *CertificationService) ListExpiring(ctx context.Context) ([]models.ExpiringCertification, error) {
	now := s.now().UTC()
	cutoff := models.DateOf(now).AddDays(models.ExpiryWindowDays)
	certs, err := s.repo.ListExpiringBefore(ctx, cutoff)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list expiring certifications")
	}
	for i := range certs {
		certs[i].Status = models.ExpiryStatusFor(certs[i].ExpiryDate, now)
	}
	return certs, nil
}

// Create records a new certification for an existing driver.
func (s *CertificationService) Create(ctx context.Context, req CreateCertificationRequest) (*models.Certification, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}

	if _, err := s.drivers.FindByID(ctx, req.DriverID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "driver not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch driver")
	}

	cert := &models.Certification{
		DriverID:          req.DriverID,
		CertificationName: req.CertificationName,
		CertificationType: req.CertificationType,
		IssueDate:         req.IssueDate,
		ExpiryDate:        req.ExpiryDate,
		IssuingAuthority:  req.IssuingAuthority,
		CertificateNumber: req.CertificateNumber,
		Status:            models.ExpiryStatusFor(req.ExpiryDate, s.now().UTC()),
	}
	if err := s.repo.Create(ctx, cert); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create certification")
	}

	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, "dashboard:*")
		_ = s.cache.Invalidate(ctx, "analytics:*")
		_ = s.cache.Invalidate(ctx, "report:*")
	}
	s.logger.Info("certification created",
		zap.String("certification_id", cert.ID),
		zap.String("driver_id", cert.DriverID))
	return cert, nil
}
