package models

// ApplicationCount remembers the application count a job poster was last
// notified about. One row per (job, poster); rows are never deleted.
//
// Invariant: LastNotifiedCount <= CurrentApplicationCount after every update.
type ApplicationCount struct {
	BaseModel
	JobID                   string `gorm:"not null;uniqueIndex:idx_application_counts_job_poster" json:"job_id"`
	PostedByUserID          string `gorm:"not null;uniqueIndex:idx_application_counts_job_poster" json:"posted_by_user_id"`
	LastNotifiedCount       int    `gorm:"not null;default:0" json:"last_notified_count"`
	CurrentApplicationCount int    `gorm:"not null;default:0" json:"current_application_count"`
}
