package dto

// DashboardSummary aggregates the fleet-wide training and certification
// metrics rendered on the dashboard.
type DashboardSummary struct {
	TotalDrivers                      int     `json:"total_drivers"`
	ActiveDrivers                     int     `json:"active_drivers"`
	TotalTrainingModules              int     `json:"total_training_modules"`
	DriversWithExpiredCertifications  int     `json:"drivers_with_expired_certifications"`
	DriversWithExpiringCertifications int     `json:"drivers_with_expiring_certifications"`
	OverallCompletionRate             float64 `json:"overall_completion_rate"`
	RecentCompletions                 int     `json:"recent_completions"`
}
