package dto

import "github.com/fleetops/driver-training-api/internal/models"

// TrainingStats summarises a driver's assigned training workload.
type TrainingStats struct {
	TotalAssigned  int     `json:"total_assigned"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"in_progress"`
	NotStarted     int     `json:"not_started"`
	Failed         int     `json:"failed"`
	CompletionRate float64 `json:"completion_rate"`
	AverageScore   float64 `json:"average_score"`
}

// ProgressDetail decorates a progress record with its module's display name.
type ProgressDetail struct {
	models.TrainingProgress
	ModuleName string `json:"module_name"`
}

// DriverProgressResponse is the aggregate payload backing the driver detail
// view.
type DriverProgressResponse struct {
	Driver         *models.Driver         `json:"driver"`
	TrainingStats  TrainingStats          `json:"training_stats"`
	ProgressDetail []ProgressDetail       `json:"progress_details"`
	Certifications []models.Certification `json:"certifications"`
}

// ModulePerformanceStats summarises outcomes across all drivers assigned to
// one module.
type ModulePerformanceStats struct {
	TotalAssigned   int     `json:"total_assigned"`
	Completed       int     `json:"completed"`
	CompletionRate  float64 `json:"completion_rate"`
	AverageScore    float64 `json:"average_score"`
	AverageAttempts float64 `json:"average_attempts"`
}

// ModulePerformanceResponse is the per-module analytics payload.
type ModulePerformanceResponse struct {
	Module                  *models.TrainingModule `json:"module"`
	Stats                   ModulePerformanceStats `json:"stats"`
	PerformanceDistribution []int                  `json:"performance_distribution"`
}
