package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index" json:"user_id"`
	Type    string `gorm:"not null" json:"type"` // see NotificationType* constants in repositories
	Title   string `gorm:"not null" json:"title"`
	Message string `json:"message"`

	RelatedEntityID   *string        `json:"related_entity_id"`
	RelatedEntityType string         `json:"related_entity_type"`
	Data              datatypes.JSON `gorm:"type:jsonb" json:"data,omitempty"` // {"job_id": "...", "count": 3}

	// read_at is set iff is_read, sent_at iff is_sent.
	IsRead       bool       `gorm:"default:false;index" json:"is_read"`
	ReadAt       *time.Time `json:"read_at"`
	IsSent       bool       `gorm:"default:false;index" json:"is_sent"`
	SentAt       *time.Time `json:"sent_at"`
	ErrorMessage *string    `json:"error_message,omitempty"`
}
