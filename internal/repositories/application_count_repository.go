package repositories

import (
	"errors"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrApplicationCountNotFound = errors.New("application count record not found")

// ApplicationCountRepository persists the per-(job, poster) delta-tracker
// records. Writes are single-row; concurrent engine runs are last-writer-wins
// (see NotificationEngine docs).
type ApplicationCountRepository interface {
	FindByJobAndPoster(jobID, posterID string) (*models.ApplicationCount, error)
	Create(record *models.ApplicationCount) error
	Update(record *models.ApplicationCount) error
}

type ApplicationCountRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationCountRepository(db *gorm.DB) ApplicationCountRepository {
	return &ApplicationCountRepositoryImpl{db: db}
}

func (r *ApplicationCountRepositoryImpl) FindByJobAndPoster(jobID, posterID string) (*models.ApplicationCount, error) {
	var record models.ApplicationCount
	err := r.db.First(&record, "job_id = ? AND posted_by_user_id = ?", jobID, posterID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationCountNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (r *ApplicationCountRepositoryImpl) Create(record *models.ApplicationCount) error {
	if record.LastNotifiedCount > record.CurrentApplicationCount {
		return errors.New("last notified count cannot exceed current application count")
	}
	return r.db.Create(record).Error
}

func (r *ApplicationCountRepositoryImpl) Update(record *models.ApplicationCount) error {
	if record.LastNotifiedCount > record.CurrentApplicationCount {
		return errors.New("last notified count cannot exceed current application count")
	}
	result := r.db.Model(&models.ApplicationCount{}).
		Where("id = ?", record.ID).
		Updates(map[string]interface{}{
			"last_notified_count":       record.LastNotifiedCount,
			"current_application_count": record.CurrentApplicationCount,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationCountNotFound
	}
	return nil
}
