package models

import (
	"time"

	"github.com/lib/pq"
)

// ModuleType enumerates the training module categories.
type ModuleType string

const (
	ModuleTypeSafety            ModuleType = "safety"
	ModuleTypeDefensiveDriving  ModuleType = "defensive_driving"
	ModuleTypeVehicleInspection ModuleType = "vehicle_inspection"
	ModuleTypeHazmat            ModuleType = "hazmat"
	ModuleTypeBackingManeuvers  ModuleType = "backing_maneuvers"
	ModuleTypeCargoHandling     ModuleType = "cargo_handling"
	ModuleTypeHoursOfService    ModuleType = "hours_of_service"
	ModuleTypeFatigueManagement ModuleType = "fatigue_management"
)

// TrainingStatus enumerates progression states for an assigned module.
type TrainingStatus string

const (
	StatusNotStarted TrainingStatus = "not_started"
	StatusInProgress TrainingStatus = "in_progress"
	StatusCompleted  TrainingStatus = "completed"
	StatusFailed     TrainingStatus = "failed"
)

// CanTransitionTo reports whether the status may move to the target state.
// Completed and failed are terminal.
func (s TrainingStatus) CanTransitionTo(target TrainingStatus) bool {
	switch s {
	case StatusNotStarted:
		return target == StatusInProgress
	case StatusInProgress:
		return target == StatusCompleted || target == StatusFailed
	default:
		return false
	}
}

// TrainingModule is a named unit of training with a passing-score requirement.
type TrainingModule struct {
	ID            string         `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Description   string         `db:"description" json:"description"`
	ModuleType    ModuleType     `db:"module_type" json:"module_type"`
	DurationHours float64        `db:"duration_hours" json:"duration_hours"`
	RequiredScore int            `db:"required_score" json:"required_score"`
	Mandatory     bool           `db:"is_mandatory" json:"is_mandatory"`
	Prerequisites pq.StringArray `db:"prerequisites" json:"prerequisites"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at" json:"updated_at"`
}

// TrainingProgress is the assignment of one module to one driver and its
// completion state. The (driver_id, module_id) pair is unique.
type TrainingProgress struct {
	ID              string         `db:"id" json:"id"`
	DriverID        string         `db:"driver_id" json:"driver_id"`
	ModuleID        string         `db:"module_id" json:"module_id"`
	Status          TrainingStatus `db:"status" json:"status"`
	StartDate       *Date          `db:"start_date" json:"start_date"`
	CompletionDate  *Date          `db:"completion_date" json:"completion_date"`
	Score           *int           `db:"score" json:"score"`
	Attempts        int            `db:"attempts" json:"attempts"`
	InstructorNotes *string        `db:"instructor_notes" json:"instructor_notes"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at" json:"updated_at"`
}

// ProgressFilter restricts training progress listings.
type ProgressFilter struct {
	DriverID string
	ModuleID string
}

// DefaultTrainingModules returns the seed set created by the
// initialize-defaults operation.
func DefaultTrainingModules() []TrainingModule {
	return []TrainingModule{
		{
			Name:          "Defensive Driving",
			Description:   "Learn defensive driving techniques to prevent accidents and ensure road safety",
			ModuleType:    ModuleTypeDefensiveDriving,
			DurationHours: 8,
			RequiredScore: 85,
			Mandatory:     true,
		},
		{
			Name:          "Vehicle Inspection",
			Description:   "Pre-trip and post-trip vehicle inspection procedures",
			ModuleType:    ModuleTypeVehicleInspection,
			DurationHours: 4,
			RequiredScore: 90,
			Mandatory:     true,
		},
		{
			Name:          "Safety Protocols",
			Description:   "Comprehensive safety protocols and emergency procedures",
			ModuleType:    ModuleTypeSafety,
			DurationHours: 6,
			RequiredScore: 85,
			Mandatory:     true,
		},
		{
			Name:          "Hazmat Handling",
			Description:   "Hazardous materials handling and transportation safety",
			ModuleType:    ModuleTypeHazmat,
			DurationHours: 12,
			RequiredScore: 95,
			Mandatory:     false,
		},
		{
			Name:          "Backing and Maneuvering",
			Description:   "Safe backing techniques and tight space maneuvering",
			ModuleType:    ModuleTypeBackingManeuvers,
			DurationHours: 4,
			RequiredScore: 80,
			Mandatory:     true,
		},
		{
			Name:          "Cargo Handling",
			Description:   "Proper cargo loading, securing, and unloading procedures",
			ModuleType:    ModuleTypeCargoHandling,
			DurationHours: 6,
			RequiredScore: 85,
			Mandatory:     true,
		},
		{
			Name:          "Hours of Service",
			Description:   "DOT hours of service regulations and logbook management",
			ModuleType:    ModuleTypeHoursOfService,
			DurationHours: 3,
			RequiredScore: 90,
			Mandatory:     true,
		},
		{
			Name:          "Fatigue Management",
			Description:   "Recognizing and managing driver fatigue for safe operations",
			ModuleType:    ModuleTypeFatigueManagement,
			DurationHours: 2,
			RequiredScore: 85,
			Mandatory:     true,
		},
	}
}
