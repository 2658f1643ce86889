package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/driver-training-api/internal/models"
)

const progressColumns = `id, driver_id, module_id, status, start_date, completion_date, score,
        attempts, instructor_notes, created_at, updated_at`

// TrainingProgressRepository manages persistence for training assignments.
type TrainingProgressRepository struct {
	db *sqlx.DB
}

// NewTrainingProgressRepository constructs a TrainingProgressRepository.
func NewTrainingProgressRepository(db *sqlx.DB) *TrainingProgressRepository {
	return &TrainingProgressRepository{db: db}
}

// List returns progress records matching the optional driver/module filters.
func (r *TrainingProgressRepository) List(ctx context.Context, filter models.ProgressFilter) ([]models.TrainingProgress, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}
	if filter.DriverID != "" {
		conditions = append(conditions, fmt.Sprintf("driver_id = $%d", len(args)+1))
		args = append(args, filter.DriverID)
	}
	if filter.ModuleID != "" {
		conditions = append(conditions, fmt.Sprintf("module_id = $%d", len(args)+1))
		args = append(args, filter.ModuleID)
	}
	query := fmt.Sprintf("SELECT %s FROM training_progress WHERE %s ORDER BY created_at", progressColumns, strings.Join(conditions, " AND "))

	var records []models.TrainingProgress
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("list training progress: %w", err)
	}
	return records, nil
}

// FindByID fetches a progress record by ID.
func (r *TrainingProgressRepository) FindByID(ctx context.Context, id string) (*models.TrainingProgress, error) {
	query := fmt.Sprintf("SELECT %s FROM training_progress WHERE id = $1", progressColumns)
	var progress models.TrainingProgress
	if err := r.db.GetContext(ctx, &progress, query, id); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ExistsByDriverAndModule checks whether the assignment pair already exists.
func (r *TrainingProgressRepository) ExistsByDriverAndModule(ctx context.Context, driverID, moduleID string) (bool, error) {
	var exists int
	err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM training_progress WHERE driver_id = $1 AND module_id = $2 LIMIT 1", driverID, moduleID)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return true, nil
}

// Create inserts a new progress record.
func (r *TrainingProgressRepository) Create(ctx context.Context, progress *models.TrainingProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if progress.CreatedAt.IsZero() {
		progress.CreatedAt = now
	}
	progress.UpdatedAt = now
	const query = `INSERT INTO training_progress (id, driver_id, module_id, status, start_date,
        completion_date, score, attempts, instructor_notes, created_at, updated_at)
        VALUES (:id, :driver_id, :module_id, :status, :start_date,
        :completion_date, :score, :attempts, :instructor_notes, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("create training progress: %w", err)
	}
	return nil
}

// Update persists status, dates, score, attempts and notes for a record.
func (r *TrainingProgressRepository) Update(ctx context.Context, progress *models.TrainingProgress) error {
	progress.UpdatedAt = time.Now().UTC()
	const query = `UPDATE training_progress SET status = :status, start_date = :start_date,
        completion_date = :completion_date, score = :score, attempts = :attempts,
        instructor_notes = :instructor_notes, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("update training progress: %w", err)
	}
	return nil
}

// CountAll returns the total number of progress records.
func (r *TrainingProgressRepository) CountAll(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_progress"); err != nil {
		return 0, fmt.Errorf("count training progress: %w", err)
	}
	return count, nil
}

// CountByStatus returns the number of records in the given status.
func (r *TrainingProgressRepository) CountByStatus(ctx context.Context, status models.TrainingStatus) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_progress WHERE status = $1", status); err != nil {
		return 0, fmt.Errorf("count progress by status: %w", err)
	}
	return count, nil
}

// CountCompletedSince returns completions on or after the given day.
func (r *TrainingProgressRepository) CountCompletedSince(ctx context.Context, since models.Date) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM training_progress WHERE status = $1 AND completion_date >= $2",
		models.StatusCompleted, since)
	if err != nil {
		return 0, fmt.Errorf("count recent completions: %w", err)
	}
	return count, nil
}

// CompletedMandatoryByDriver returns, per driver, how many mandatory modules
// they have completed.
func (r *TrainingProgressRepository) CompletedMandatoryByDriver(ctx context.Context) (map[string]int, error) {
	const query = `SELECT p.driver_id, COUNT(*) AS completed
        FROM training_progress p
        JOIN training_modules m ON m.id = p.module_id AND m.is_mandatory = true
        WHERE p.status = $1
        GROUP BY p.driver_id`
	rows, err := r.db.QueryxContext(ctx, query, models.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("count completed mandatory: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var driverID string
		var completed int
		if err := rows.Scan(&driverID, &completed); err != nil {
			return nil, fmt.Errorf("scan completed mandatory: %w", err)
		}
		counts[driverID] = completed
	}
	return counts, rows.Err()
}
