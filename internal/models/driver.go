package models

import "time"

// LicenseClass enumerates the license categories tracked for drivers.
type LicenseClass string

const (
	LicenseClassA    LicenseClass = "Class A"
	LicenseClassB    LicenseClass = "Class B"
	LicenseClassC    LicenseClass = "Class C"
	LicenseClassCDLA LicenseClass = "CDL Class A"
	LicenseClassCDLB LicenseClass = "CDL Class B"
)

// Driver represents a person tracked for licensing and training compliance.
type Driver struct {
	ID                    string       `db:"id" json:"id"`
	EmployeeID            string       `db:"employee_id" json:"employee_id"`
	FirstName             string       `db:"first_name" json:"first_name"`
	LastName              string       `db:"last_name" json:"last_name"`
	Email                 string       `db:"email" json:"email"`
	Phone                 string       `db:"phone" json:"phone"`
	HireDate              Date         `db:"hire_date" json:"hire_date"`
	LicenseNumber         string       `db:"license_number" json:"license_number"`
	LicenseClass          LicenseClass `db:"license_class" json:"license_class"`
	LicenseExpiry         Date         `db:"license_expiry" json:"license_expiry"`
	DateOfBirth           Date         `db:"date_of_birth" json:"date_of_birth"`
	Address               string       `db:"address" json:"address"`
	EmergencyContactName  string       `db:"emergency_contact_name" json:"emergency_contact_name"`
	EmergencyContactPhone string       `db:"emergency_contact_phone" json:"emergency_contact_phone"`
	Active                bool         `db:"is_active" json:"is_active"`
	CreatedAt             time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time    `db:"updated_at" json:"updated_at"`
}

// FullName joins the driver's first and last names.
func (d Driver) FullName() string {
	return d.FirstName + " " + d.LastName
}

// DriverFilter encapsulates allowed search parameters for listing drivers.
type DriverFilter struct {
	Search    string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
