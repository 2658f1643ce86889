package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/fleetops/driver-training-api/internal/models"
)

const moduleColumns = `id, name, description, module_type, duration_hours, required_score,
        is_mandatory, prerequisites, created_at, updated_at`

// TrainingModuleRepository manages persistence for training modules.
type TrainingModuleRepository struct {
	db *sqlx.DB
}

// NewTrainingModuleRepository constructs a TrainingModuleRepository.
func NewTrainingModuleRepository(db *sqlx.DB) *TrainingModuleRepository {
	return &TrainingModuleRepository{db: db}
}

// List returns all training modules in creation order.
func (r *TrainingModuleRepository) List(ctx context.Context) ([]models.TrainingModule, error) {
	query := fmt.Sprintf("SELECT %s FROM training_modules ORDER BY created_at", moduleColumns)
	var modules []models.TrainingModule
	if err := r.db.SelectContext(ctx, &modules, query); err != nil {
		return nil, fmt.Errorf("list training modules: %w", err)
	}
	return modules, nil
}

// FindByID fetches a training module by ID.
func (r *TrainingModuleRepository) FindByID(ctx context.Context, id string) (*models.TrainingModule, error) {
	query := fmt.Sprintf("SELECT %s FROM training_modules WHERE id = $1", moduleColumns)
	var module models.TrainingModule
	if err := r.db.GetContext(ctx, &module, query, id); err != nil {
		return nil, err
	}
	return &module, nil
}

// NamesByIDs resolves module display names for the given IDs.
func (r *TrainingModuleRepository) NamesByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	rows, err := r.db.QueryxContext(ctx, "SELECT id, name FROM training_modules WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("resolve module names: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, fmt.Errorf("scan module name: %w", err)
		}
		names[id] = name
	}
	return names, rows.Err()
}

// ExistsByName checks if a module with the given name exists.
func (r *TrainingModuleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM training_modules WHERE name = $1 LIMIT 1", name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check module name: %w", err)
	}
	return true, nil
}

// Create inserts a new training module.
func (r *TrainingModuleRepository) Create(ctx context.Context, module *models.TrainingModule) error {
	if module.ID == "" {
		module.ID = uuid.NewString()
	}
	if module.Prerequisites == nil {
		module.Prerequisites = pq.StringArray{}
	}
	now := time.Now().UTC()
	if module.CreatedAt.IsZero() {
		module.CreatedAt = now
	}
	module.UpdatedAt = now
	const query = `INSERT INTO training_modules (id, name, description, module_type, duration_hours,
        required_score, is_mandatory, prerequisites, created_at, updated_at)
        VALUES (:id, :name, :description, :module_type, :duration_hours,
        :required_score, :is_mandatory, :prerequisites, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, module); err != nil {
		return fmt.Errorf("create training module: %w", err)
	}
	return nil
}

// Count returns the total number of training modules.
func (r *TrainingModuleRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_modules"); err != nil {
		return 0, fmt.Errorf("count training modules: %w", err)
	}
	return count, nil
}

// CountMandatory returns the number of mandatory training modules.
func (r *TrainingModuleRepository) CountMandatory(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM training_modules WHERE is_mandatory = true"); err != nil {
		return 0, fmt.Errorf("count mandatory modules: %w", err)
	}
	return count, nil
}
