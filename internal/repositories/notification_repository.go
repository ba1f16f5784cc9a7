package repositories

import (
	"errors"
	"time"

	"jobportal_backend/internal/models"

	"gorm.io/gorm"
)

var ErrNotificationNotFound = errors.New("notification not found")

// Notification type constants
const (
	NotificationTypeReferralApplication    = "referral_application"
	NotificationTypeApplicationShortlisted = "application_shortlisted"
	NotificationTypeApplicationRejected    = "application_rejected"
	NotificationTypeApplicationStatus      = "application_status"
	NotificationTypeCompanyJobs            = "company_jobs"
	NotificationTypePostedJobApplications  = "posted_job_applications"
	NotificationTypeGeneral                = "general"
)

// Related entity tags
const (
	RelatedEntityJob         = "job"
	RelatedEntityApplication = "application"
	RelatedEntityCompany     = "company"
)

type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	FindNotificationByID(id string) (*models.Notification, error)
	FindUserNotifications(userID string) ([]models.Notification, error)
	FindUnreadNotifications(userID string) ([]models.Notification, error)
	FindNotificationsSince(userID string, since time.Time) ([]models.Notification, error)
	GetUnreadCount(userID string) (int64, error)

	// MarkAsRead and DeleteNotification are scoped by owner: when the row
	// does not exist or belongs to another user they affect nothing and
	// return nil.
	MarkAsRead(notificationID, userID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(notificationID, userID string) error

	// CleanOldNotifications removes notifications strictly older than the
	// cutoff and reports how many rows went away.
	CleanOldNotifications(olderThan time.Time) (int64, error)

	// Dispatch support
	FindPendingNotifications(createdBefore time.Time) ([]models.Notification, error)
	MarkAsSent(notificationID string) error
	MarkAsFailed(notificationID string, errorMessage string) error
}

type NotificationRepositoryImpl struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &NotificationRepositoryImpl{db: db}
}

func (r *NotificationRepositoryImpl) CreateNotification(notification *models.Notification) error {
	if notification.UserID == "" {
		return errors.New("user ID is required")
	}
	if notification.Type == "" {
		return errors.New("notification type is required")
	}
	if notification.Title == "" {
		return errors.New("notification title is required")
	}
	return r.db.Create(notification).Error
}

func (r *NotificationRepositoryImpl) FindNotificationByID(id string) (*models.Notification, error) {
	var notification models.Notification
	err := r.db.First(&notification, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}
	return &notification, nil
}

func (r *NotificationRepositoryImpl) FindUserNotifications(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) FindUnreadNotifications(userID string) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) FindNotificationsSince(userID string, since time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("user_id = ? AND created_at >= ?", userID, since).
		Order("created_at DESC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) GetUnreadCount(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *NotificationRepositoryImpl) MarkAsRead(notificationID, userID string) error {
	// Owner-scoped update: zero affected rows is a benign no-op, so a user
	// cannot probe for the existence of someone else's notifications.
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ? AND is_read = ?", notificationID, userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) MarkAllAsRead(userID string) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *NotificationRepositoryImpl) DeleteNotification(notificationID, userID string) error {
	return r.db.Where("id = ? AND user_id = ?", notificationID, userID).
		Delete(&models.Notification{}).Error
}

func (r *NotificationRepositoryImpl) CleanOldNotifications(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}

func (r *NotificationRepositoryImpl) FindPendingNotifications(createdBefore time.Time) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.Where("is_sent = ? AND created_at < ?", false, createdBefore).
		Order("created_at ASC").
		Find(&notifications).Error
	return notifications, err
}

func (r *NotificationRepositoryImpl) MarkAsSent(notificationID string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Updates(map[string]interface{}{
			"is_sent": true,
			"sent_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (r *NotificationRepositoryImpl) MarkAsFailed(notificationID string, errorMessage string) error {
	result := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("error_message", errorMessage)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
