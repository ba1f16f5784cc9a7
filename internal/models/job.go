package models

import "time"

type Job struct {
	BaseModel
	Title          string    `gorm:"not null" json:"title"`
	CompanyID      string    `gorm:"not null;index" json:"company_id"`
	CompanyName    string    `gorm:"not null" json:"company_name"`
	Designation    string    `json:"designation"`
	Description    string    `json:"description"`
	PostedByUserID string    `gorm:"not null;index" json:"posted_by_user_id"`
	PostedAt       time.Time `gorm:"not null;index" json:"posted_at"`
}
