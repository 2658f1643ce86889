package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/fleetops/driver-training-api/internal/dto"
	"github.com/fleetops/driver-training-api/internal/models"
	appErrors "github.com/fleetops/driver-training-api/pkg/errors"
	"github.com/fleetops/driver-training-api/pkg/export"
)

const complianceReportKey = "report:compliance"

// Report export formats.
const (
	ReportFormatJSON = "json"
	ReportFormatCSV  = "csv"
	ReportFormatPDF  = "pdf"
)

var complianceHeaders = []string{
	"Employee ID", "Name", "License Class", "License Expiry", "License Status",
	"Mandatory Training", "Expired Certifications", "Compliance Status",
}

// ReportDriverStore lists the drivers included in compliance reporting.
type ReportDriverStore interface {
	ListActive(ctx context.Context) ([]models.Driver, error)
}

// ReportModuleStore counts mandatory modules.
type ReportModuleStore interface {
	CountMandatory(ctx context.Context) (int, error)
}

// ReportProgressStore aggregates completed mandatory training per driver.
type ReportProgressStore interface {
	CompletedMandatoryByDriver(ctx context.Context) (map[string]int, error)
}

// ReportCertificationStore aggregates expired certifications per driver.
type ReportCertificationStore interface {
	ExpiredCountsByDriver(ctx context.Context, day models.Date) (map[string]int, error)
}

// ReportService derives the per-driver compliance report and renders it in
// multiple formats.
type ReportService struct {
	drivers  ReportDriverStore
	modules  ReportModuleStore
	progress ReportProgressStore
	certs    ReportCertificationStore
	cache    *CacheService
	cacheTTL time.Duration
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
	logger   *zap.Logger
	now      func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(drivers ReportDriverStore, modules ReportModuleStore, progress ReportProgressStore, certs ReportCertificationStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ReportService {
	return &ReportService{
		drivers:  drivers,
		modules:  modules,
		progress: progress,
		certs:    certs,
		cache:    cache,
		cacheTTL: cacheTTL,
		csv:      export.NewCSVExporter(),
		pdf:      export.NewPDFExporter(),
		logger:   logger,
		now:      time.Now,
	}
}

// ComplianceReport builds the per-driver compliance rows. The second return
// value reports whether the payload came from cache.
func (s *ReportService) ComplianceReport(ctx context.Context) ([]dto.ComplianceRow, bool, error) {
	if s.cache != nil {
		var cached []dto.ComplianceRow
		if hit, _ := s.cache.Get(ctx, complianceReportKey, &cached); hit {
			return cached, true, nil
		}
	}

	drivers, err := s.drivers.ListActive(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list drivers")
	}
	mandatoryTotal, err := s.modules.CountMandatory(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count mandatory modules")
	}
	completedByDriver, err := s.progress.CompletedMandatoryByDriver(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate training completions")
	}

	now := s.now().UTC()
	today := models.DateOf(now)
	expiredByDriver, err := s.certs.ExpiredCountsByDriver(ctx, today)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate expired certifications")
	}

	rows := make([]dto.ComplianceRow, 0, len(drivers))
	for _, driver := range drivers {
		completed := completedByDriver[driver.ID]
		expired := expiredByDriver[driver.ID]
		licenseStatus := models.LicenseStatusFor(driver.LicenseExpiry, now)

		compliance := models.ComplianceCompliant
		if completed < mandatoryTotal || expired > 0 || licenseStatus != models.LicenseStatusValid {
			compliance = models.ComplianceNonCompliant
		}

		rows = append(rows, dto.ComplianceRow{
			Driver:                      driver,
			MandatoryTrainingCompletion: fmt.Sprintf("%d/%d", completed, mandatoryTotal),
			ExpiredCertifications:       expired,
			LicenseStatus:               licenseStatus,
			ComplianceStatus:            compliance,
		})
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, complianceReportKey, rows, s.cacheTTL)
	}
	return rows, false, nil
}

// RenderCSV encodes the compliance rows as CSV bytes.
func (s *ReportService) RenderCSV(rows []dto.ComplianceRow) ([]byte, error) {
	payload, err := s.csv.Render(complianceDataset(rows))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
	}
	return payload, nil
}

// RenderPDF encodes the compliance rows as a tabular PDF.
func (s *ReportService) RenderPDF(rows []dto.ComplianceRow) ([]byte, error) {
	payload, err := s.pdf.Render(complianceDataset(rows), "Driver Compliance Report")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
	}
	return payload, nil
}

func complianceDataset(rows []dto.ComplianceRow) export.Dataset {
	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, map[string]string{
			"Employee ID":            row.Driver.EmployeeID,
			"Name":                   row.Driver.FullName(),
			"License Class":          string(row.Driver.LicenseClass),
			"License Expiry":         row.Driver.LicenseExpiry.String(),
			"License Status":         row.LicenseStatus,
			"Mandatory Training":     row.MandatoryTrainingCompletion,
			"Expired Certifications": strconv.Itoa(row.ExpiredCertifications),
			"Compliance Status":      row.ComplianceStatus,
		})
	}
	return export.Dataset{Headers: complianceHeaders, Rows: records}
}
