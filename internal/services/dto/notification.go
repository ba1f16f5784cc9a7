package dto

import "time"

type NotificationResponse struct {
	ID                string     `json:"id"`
	UserID            string     `json:"user_id"`
	Type              string     `json:"type"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	RelatedEntityID   *string    `json:"related_entity_id,omitempty"`
	RelatedEntityType string     `json:"related_entity_type,omitempty"`
	IsRead            bool       `json:"is_read"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	IsSent            bool       `json:"is_sent"`
	SentAt            *time.Time `json:"sent_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int                     `json:"total"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// TriggerResponse reports per-operation outcomes of a batch trigger. The
// endpoint answers 200 even when operations fail; failures are data, not
// transport errors.
type TriggerResponse struct {
	Results          map[string]PassResultDTO `json:"results"`
	FailedOperations []string                 `json:"failed_operations"`
}

type PassResultDTO struct {
	Processed int    `json:"processed"`
	Notified  int    `json:"notified"`
	Failed    int    `json:"failed"`
	Deleted   int64  `json:"deleted,omitempty"`
	Error     string `json:"error,omitempty"`
}
