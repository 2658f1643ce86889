package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
)

type fakeCertStore struct {
	certs    []models.Certification
	expiring []models.ExpiringCertification
	created  *models.Certification
}

func (f *fakeCertStore) List(context.Context, string) ([]models.Certification, error) {
	return f.certs, nil
}

func (f *fakeCertStore) ListExpiringBefore(context.Context, models.Date) ([]models.ExpiringCertification, error) {
	return f.expiring, nil
}

func (f *fakeCertStore) Create(_ context.Context, cert *models.Certification) error {
	cert.ID = "cert-new"
	f.created = cert
	return nil
}

func newCertService(store *fakeCertStore, driver *models.Driver) *CertificationService {
	svc := NewCertificationService(store, &fakeDriverFinder{driver: driver}, nil, zap.NewNop())
	svc.now = func() time.Time { return time.Date(2026, time.August, 24, 9, 0, 0, 0, time.UTC) }
	return svc
}

func TestCertificationServiceListRecomputesStatus(t *testing.T) {
	store := &fakeCertStore{certs: []models.Certification{
		{ID: "c-1", ExpiryDate: models.NewDate(2026, time.August, 1), Status: models.CertStatusActive},
		{ID: "c-2", ExpiryDate: models.NewDate(2026, time.September, 10)},
		{ID: "c-3", ExpiryDate: models.NewDate(2026, time.December, 1)},
	}}
	svc := newCertService(store, nil)

	certs, err := svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.CertStatusExpired, certs[0].Status)
	assert.Equal(t, models.CertStatusExpiringSoon, certs[1].Status)
	assert.Equal(t, models.CertStatusActive, certs[2].Status)
}

func TestCertificationServiceCreate(t *testing.T) {
	store := &fakeCertStore{}
	svc := newCertService(store, &models.Driver{ID: "drv-1"})

	cert, err := svc.Create(context.Background(), CreateCertificationRequest{
		DriverID:          "drv-1",
		CertificationName: "Hazmat Endorsement",
		CertificationType: "endorsement",
		IssueDate:         models.NewDate(2025, time.August, 24),
		ExpiryDate:        models.NewDate(2026, time.September, 1),
		IssuingAuthority:  "DOT",
		CertificateNumber: "HZ-100",
	})
	require.NoError(t, err)
	assert.Equal(t, "cert-new", cert.ID)
	assert.Equal(t, models.CertStatusExpiringSoon, cert.Status)
}

func TestCertificationServiceCreateUnknownDriver(t *testing.T) {
	svc := newCertService(&fakeCertStore{}, nil)

	_, err := svc.Create(context.Background(), CreateCertificationRequest{
		DriverID:          "ghost",
		CertificationName: "Hazmat Endorsement",
		CertificationType: "endorsement",
		IssueDate:         models.NewDate(2025, time.August, 24),
		ExpiryDate:        models.NewDate(2026, time.September, 1),
		IssuingAuthority:  "DOT",
		CertificateNumber: "HZ-100",
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", appErrors.FromError(err).Code)
}
