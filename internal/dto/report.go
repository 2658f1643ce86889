package dto

import "github.com/fleetops/driver-training-api/internal/models"

// ComplianceRow is one driver's derived compliance summary.
type ComplianceRow struct {
	Driver                      models.Driver `json:"driver"`
	MandatoryTrainingCompletion string        `json:"mandatory_training_completion"`
	ExpiredCertifications       int           `json:"expired_certifications"`
	LicenseStatus               string        `json:"license_status"`
	ComplianceStatus            string        `json:"compliance_status"`
}

// SeedResult reports the outcome of the initialize-defaults operation.
type SeedResult struct {
	Message string                  `json:"message"`
	Modules []models.TrainingModule `json:"modules"`
}
