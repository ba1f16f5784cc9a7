package dto

import (
	"time"

	"jobportal_backend/internal/models"
)

type CreateJobRequest struct {
	Title       string `json:"title" binding:"required"`
	CompanyID   string `json:"company_id" binding:"required"`
	CompanyName string `json:"company_name" binding:"required"`
	Designation string `json:"designation"`
	Description string `json:"description"`
}

type JobResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	CompanyID      string    `json:"company_id"`
	CompanyName    string    `json:"company_name"`
	Designation    string    `json:"designation"`
	Description    string    `json:"description"`
	PostedByUserID string    `json:"posted_by_user_id"`
	PostedAt       time.Time `json:"posted_at"`
}

type JobListResponse struct {
	Jobs  []*JobResponse `json:"jobs"`
	Total int            `json:"total"`
}

type ApplicationResponse struct {
	ID          string                   `json:"id"`
	JobID       string                   `json:"job_id"`
	ApplicantID string                   `json:"applicant_id"`
	Status      models.ApplicationStatus `json:"status"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}
