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

const driverColumns = `id, employee_id, first_name, last_name, email, phone, hire_date,
        license_number, license_class, license_expiry, date_of_birth, address,
        emergency_contact_name, emergency_contact_phone, is_active, created_at, updated_at`

// DriverRepository manages persistence for driver records.
type DriverRepository struct {
	db *sqlx.DB
}

// NewDriverRepository constructs a DriverRepository.
func NewDriverRepository(db *sqlx.DB) *DriverRepository {
	return &DriverRepository{db: db}
}

// List returns drivers matching the provided filters.
func (r *DriverRepository) List(ctx context.Context, filter models.DriverFilter) ([]models.Driver, int, error) {
	base := "FROM drivers"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(first_name) LIKE $%d OR LOWER(last_name) LIKE $%d OR LOWER(employee_id) LIKE $%d)", len(args)+1, len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"last_name":   "last_name",
		"employee_id": "employee_id",
		"hire_date":   "hire_date",
		"created_at":  "created_at",
	}
	if sortBy == "" {
		sortBy = "created_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "created_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", driverColumns, base, column, order, size, offset)

	var drivers []models.Driver
	if err := r.db.SelectContext(ctx, &drivers, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list drivers: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count drivers: %w", err)
	}
	return drivers, total, nil
}

// ListActive returns every active driver in creation order.
func (r *DriverRepository) ListActive(ctx context.Context) ([]models.Driver, error) {
	query := fmt.Sprintf("SELECT %s FROM drivers WHERE is_active = true ORDER BY created_at", driverColumns)
	var drivers []models.Driver
	if err := r.db.SelectContext(ctx, &drivers, query); err != nil {
		return nil, fmt.Errorf("list active drivers: %w", err)
	}
	return drivers, nil
}

// FindByID fetches an active driver by ID.
func (r *DriverRepository) FindByID(ctx context.Context, id string) (*models.Driver, error) {
	query := fmt.Sprintf("SELECT %s FROM drivers WHERE id = $1 AND is_active = true", driverColumns)
	var driver models.Driver
	if err := r.db.GetContext(ctx, &driver, query, id); err != nil {
		return nil, err
	}
	return &driver, nil
}

// ExistsByEmployeeID checks if a driver with the given employee ID exists,
// optionally excluding an ID.
func (r *DriverRepository) ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM drivers WHERE employee_id = $1"
	args := []interface{}{employeeID}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check employee id: %w", err)
	}
	return true, nil
}

// Create inserts a new driver record.
func (r *DriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	if driver.ID == "" {
		driver.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if driver.CreatedAt.IsZero() {
		driver.CreatedAt = now
	}
	driver.UpdatedAt = now
	const query = `INSERT INTO drivers (id, employee_id, first_name, last_name, email, phone, hire_date,
        license_number, license_class, license_expiry, date_of_birth, address,
        emergency_contact_name, emergency_contact_phone, is_active, created_at, updated_at)
        VALUES (:id, :employee_id, :first_name, :last_name, :email, :phone, :hire_date,
        :license_number, :license_class, :license_expiry, :date_of_birth, :address,
        :emergency_contact_name, :emergency_contact_phone, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, driver); err != nil {
		return fmt.Errorf("create driver: %w", err)
	}
	return nil
}

// Update modifies an existing driver.
func (r *DriverRepository) Update(ctx context.Context, driver *models.Driver) error {
	driver.UpdatedAt = time.Now().UTC()
	const query = `UPDATE drivers SET employee_id = :employee_id, first_name = :first_name,
        last_name = :last_name, email = :email, phone = :phone,
        license_number = :license_number, license_class = :license_class,
        license_expiry = :license_expiry, address = :address,
        emergency_contact_name = :emergency_contact_name,
        emergency_contact_phone = :emergency_contact_phone,
        is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, driver); err != nil {
		return fmt.Errorf("update driver: %w", err)
	}
	return nil
}

// Deactivate marks a driver as inactive.
func (r *DriverRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE drivers SET is_active = false, updated_at = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("deactivate driver: %w", err)
	}
	return nil
}

// Count returns the total number of drivers, active or not.
func (r *DriverRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM drivers"); err != nil {
		return 0, fmt.Errorf("count drivers: %w", err)
	}
	return count, nil
}

// CountActive returns the number of active drivers.
func (r *DriverRepository) CountActive(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM drivers WHERE is_active = true"); err != nil {
		return 0, fmt.Errorf("count active drivers: %w", err)
	}
	return count, nil
}
