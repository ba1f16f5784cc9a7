package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("job application not found")
	ErrAlreadyApplied      = errors.New("user already applied to this job")
)

type JobApplicationRepository interface {
	Create(application *models.JobApplication) error
	FindByID(id string) (*models.JobApplication, error)
	UpdateStatus(applicationID string, status models.ApplicationStatus) error

	// FindStatusChangedSince returns applications whose status changed
	// within the window. Status is the only mutable field, so updated_at
	// is the status-change timestamp.
	FindStatusChangedSince(since time.Time) ([]models.JobApplication, error)

	// CountByJob is the live application count the delta tracker compares
	// against the last notified count.
	CountByJob(jobID string) (int64, error)
}

type JobApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewJobApplicationRepository(db *gorm.DB) JobApplicationRepository {
	return &JobApplicationRepositoryImpl{db: db}
}

func (r *JobApplicationRepositoryImpl) Create(application *models.JobApplication) error {
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("job_id = ? AND applicant_id = ?", application.JobID, application.ApplicantID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyApplied
	}
	return r.db.Create(application).Error
}

func (r *JobApplicationRepositoryImpl) FindByID(id string) (*models.JobApplication, error) {
	var application models.JobApplication
	err := r.db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *JobApplicationRepositoryImpl) UpdateStatus(applicationID string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.JobApplication{}).
		Where("id = ?", applicationID).
		Updates(map[string]interface{}{
			"status":     status,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

func (r *JobApplicationRepositoryImpl) FindStatusChangedSince(since time.Time) ([]models.JobApplication, error) {
	var applications []models.JobApplication
	err := r.db.Where("updated_at >= ?", since).
		Order("updated_at ASC").
		Find(&applications).Error
	return applications, err
}

func (r *JobApplicationRepositoryImpl) CountByJob(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.JobApplication{}).
		Where("job_id = ?", jobID).
		Count(&count).Error
	return count, err
}
