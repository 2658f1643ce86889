package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/driver-training-api/internal/models"
)

const certificationColumns = `id, driver_id, certification_name, certification_type, issue_date,
        expiry_date, issuing_authority, certificate_number, status, created_at, updated_at`

// CertificationRepository manages persistence for driver certifications.
type CertificationRepository struct {
	db *sqlx.DB
}

// NewCertificationRepository constructs a CertificationRepository.
func NewCertificationRepository(db *sqlx.DB) *CertificationRepository {
	return &CertificationRepository{db: db}
}

// List returns certifications, optionally restricted to one driver.
func (r *CertificationRepository) List(ctx context.Context, driverID string) ([]models.Certification, error) {
	query := fmt.Sprintf("SELECT %s FROM certifications", certificationColumns)
	args := []interface{}{}
	if driverID != "" {
		query += " WHERE driver_id = $1"
		args = append(args, driverID)
	}
	query += " ORDER BY expiry_date"

	var certs []models.Certification
	if err := r.db.SelectContext(ctx, &certs, query, args...); err != nil {
		return nil, fmt.Errorf("list certifications: %w", err)
	}
	return certs, nil
}

// ListExpiringBefore returns certifications expiring on or before the cutoff
// day, joined with their driver's name.
func (r *CertificationRepository) ListExpiringBefore(ctx context.Context, cutoff models.Date) ([]models.ExpiringCertification, error) {
	const query = `SELECT c.id, c.driver_id, c.certification_name, c.certification_type, c.issue_date,
        c.expiry_date, c.issuing_authority, c.certificate_number, c.status, c.created_at, c.updated_at,
        d.first_name || ' ' || d.last_name AS driver_name
        FROM certifications c
        JOIN drivers d ON d.id = c.driver_id
        WHERE c.expiry_date <= $1
        ORDER BY c.expiry_date`

	var certs []models.ExpiringCertification
	if err := r.db.SelectContext(ctx, &certs, query, cutoff); err != nil {
		return nil, fmt.Errorf("list expiring certifications: %w", err)
	}
	return certs, nil
}

// Create inserts a new certification.
func (r *CertificationRepository) Create(ctx context.Context, cert *models.Certification) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if cert.CreatedAt.IsZero() {
		cert.CreatedAt = now
	}
	cert.UpdatedAt = now
	const query = `INSERT INTO certifications (id, driver_id, certification_name, certification_type,
        issue_date, expiry_date, issuing_authority, certificate_number, status, created_at, updated_at)
        VALUES (:id, :driver_id, :certification_name, :certification_type,
        :issue_date, :expiry_date, :issuing_authority, :certificate_number, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cert); err != nil {
		return fmt.Errorf("create certification: %w", err)
	}
	return nil
}

// ExpiredCountsByDriver returns, per driver, how many certifications expired
// before the given day.
func (r *CertificationRepository) ExpiredCountsByDriver(ctx context.Context, day models.Date) (map[string]int, error) {
	rows, err := r.db.QueryxContext(ctx,
		"SELECT driver_id, COUNT(*) FROM certifications WHERE expiry_date < $1 GROUP BY driver_id", day)
	if err != nil {
		return nil, fmt.Errorf("count expired by driver: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var driverID string
		var expired int
		if err := rows.Scan(&driverID, &expired); err != nil {
			return nil, fmt.Errorf("scan expired by driver: %w", err)
		}
		counts[driverID] = expired
	}
	return counts, rows.Err()
}
