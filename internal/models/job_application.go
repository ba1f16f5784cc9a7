package models

type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusApplied, ApplicationStatusShortlisted,
		ApplicationStatusRejected, ApplicationStatusHired:
		return true
	}
	return false
}

// JobApplication's status is its only mutable field, so updated_at doubles
// as the "status changed at" timestamp the status pass filters on.
type JobApplication struct {
	BaseModel
	JobID       string            `gorm:"not null;index" json:"job_id"`
	ApplicantID string            `gorm:"not null;index" json:"applicant_id"`
	Status      ApplicationStatus `gorm:"not null;default:'applied'" json:"status"`
}
