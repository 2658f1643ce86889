package models

import "time"

// ExpiryWindowDays is the look-ahead window used to flag certifications and
// licenses as expiring soon.
const ExpiryWindowDays = 30

// License status values surfaced in compliance reporting.
const (
	LicenseStatusValid   = "Valid"
	LicenseStatusExpired = "Expired"
)

// Compliance status values surfaced in compliance reporting.
const (
	ComplianceCompliant    = "Compliant"
	ComplianceNonCompliant = "Non-Compliant"
)

// ExpiryStatusFor classifies an expiry date against "now" at UTC day
// granularity: before today is expired, within [today, today+window) is
// expiring soon, everything else is active. Both boundaries are exact, so an
// expiry landing precisely on today+window counts as active.
func ExpiryStatusFor(expiry Date, now time.Time) CertificationStatus {
	today := DateOf(now)
	switch {
	case expiry.Time.Before(today.Time):
		return CertStatusExpired
	case expiry.Time.Before(today.AddDays(ExpiryWindowDays).Time):
		return CertStatusExpiringSoon
	default:
		return CertStatusActive
	}
}

// LicenseStatusFor reduces a license expiry to the Valid/Expired pair used by
// the compliance report.
func LicenseStatusFor(expiry Date, now time.Time) string {
	if expiry.Time.Before(DateOf(now).Time) {
		return LicenseStatusExpired
	}
	return LicenseStatusValid
}
