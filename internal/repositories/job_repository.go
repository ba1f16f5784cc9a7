package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	List() ([]models.Job, error)
	UpdateDescription(jobID, description string) error

	// CountByCompanySince feeds the company-jobs pass: how many jobs a
	// company posted inside the trailing window.
	CountByCompanySince(companyID string, since time.Time) (int64, error)

	// FindJobsWithApplications enumerates jobs with at least one
	// application, the population the delta-tracker pass walks.
	FindJobsWithApplications() ([]models.Job, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	if job.PostedAt.IsZero() {
		job.PostedAt = time.Now()
	}
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) List() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Order("posted_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) UpdateDescription(jobID, description string) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", jobID).
		Update("description", description)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) CountByCompanySince(companyID string, since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).
		Where("company_id = ? AND posted_at >= ?", companyID, since).
		Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) FindJobsWithApplications() ([]models.Job, error) {
	var jobs []models.Job
	subQuery := r.db.Model(&models.JobApplication{}).Distinct("job_id")
	err := r.db.Where("id IN (?)", subQuery).
		Order("posted_at ASC").
		Find(&jobs).Error
	return jobs, err
}
