package models

import "time"

// CertificationStatus enumerates derived expiry states for a certification.
type CertificationStatus string

const (
	CertStatusActive       CertificationStatus = "active"
	CertStatusExpired      CertificationStatus = "expired"
	CertStatusExpiringSoon CertificationStatus = "expiring_soon"
)

// Certification is a credential with an expiry date tracked for alerting.
type Certification struct {
	ID                string              `db:"id" json:"id"`
	DriverID          string              `db:"driver_id" json:"driver_id"`
	CertificationName string              `db:"certification_name" json:"certification_name"`
	CertificationType string              `db:"certification_type" json:"certification_type"`
	IssueDate         Date                `db:"issue_date" json:"issue_date"`
	ExpiryDate        Date                `db:"expiry_date" json:"expiry_date"`
	IssuingAuthority  string              `db:"issuing_authority" json:"issuing_authority"`
	CertificateNumber string              `db:"certificate_number" json:"certificate_number"`
	Status            CertificationStatus `db:"status" json:"status"`
	CreatedAt         time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time           `db:"updated_at" json:"updated_at"`
}

// ExpiringCertification joins a certification nearing expiry with its
// driver's display name.
type ExpiringCertification struct {
	Certification
	DriverName string `db:"driver_name" json:"driver_name"`
}
