package services

import (
	"encoding/json"
	"fmt"
	"time"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"

	"gorm.io/datatypes"
)

// RecentWindow bounds GetRecentNotifications.
const RecentWindow = 7 * 24 * time.Hour

// DispatchDebounce is how long a notification must sit unsent before the
// dispatcher may pick it up.
const DispatchDebounce = time.Minute

type NotificationService interface {
	// Templated creation, called by the engine and by direct domain events.
	CreateCompanyJobsNotification(userID, companyName string, jobCount int64) error
	CreateApplicationStatusNotification(applicantID, jobTitle string, status models.ApplicationStatus, applicationID string) error
	CreatePostedJobApplicationsNotification(posterID, jobTitle string, applicationCount int64, jobID string) error
	CreateReferralApplicationNotification(posterID, applicantName, jobTitle, applicationID string) error
	CreateGeneralNotification(userID, title, message string) error

	// Read side.
	GetRecentNotifications(userID string) (*dto.NotificationListResponse, error)
	GetAllNotifications(userID string) (*dto.NotificationListResponse, error)
	GetUnreadNotifications(userID string) (*dto.NotificationListResponse, error)
	GetUnreadCount(userID string) (int64, error)

	// Ownership-scoped mutations: silent no-op when the notification does
	// not exist or belongs to someone else.
	MarkAsRead(userID, notificationID string) error
	MarkAllAsRead(userID string) error
	DeleteNotification(userID, notificationID string) error

	// Dispatcher support.
	GetPendingNotifications() ([]models.Notification, error)
	MarkAsSent(notificationID string) error
	MarkAsFailed(notificationID, errorMessage string) error
}

type notificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) NotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

// ---------------- Templated creation ----------------

func (s *notificationService) CreateCompanyJobsNotification(userID, companyName string, jobCount int64) error {
	data, err := payload(map[string]interface{}{
		"company_name": companyName,
		"job_count":    jobCount,
	})
	if err != nil {
		return err
	}

	return s.notificationRepo.CreateNotification(&models.Notification{
		UserID:            userID,
		Type:              repositories.NotificationTypeCompanyJobs,
		Title:             "New jobs at your company",
		Message:           fmt.Sprintf("%s posted %d job(s) recently", companyName, jobCount),
		RelatedEntityType: repositories.RelatedEntityCompany,
		Data:              data,
	})
}

func (s *notificationService) CreateApplicationStatusNotification(applicantID, jobTitle string, status models.ApplicationStatus, applicationID string) error {
	var notificationType, title string
	switch status {
	case models.ApplicationStatusShortlisted:
		notificationType = repositories.NotificationTypeApplicationShortlisted
		title = "You have been shortlisted"
	case models.ApplicationStatusRejected:
		notificationType = repositories.NotificationTypeApplicationRejected
		title = "Application update"
	default:
		notificationType = repositories.NotificationTypeApplicationStatus
		title = "Application status changed"
	}

	return s.notificationRepo.CreateNotification(&models.Notification{
		UserID:            applicantID,
		Type:              notificationType,
		Title:             title,
		Message:           fmt.Sprintf("Your application for '%s' is now %s", jobTitle, status),
		RelatedEntityID:   &applicationID,
		RelatedEntityType: repositories.RelatedEntityApplication,
	})
}

func (s *notificationService) CreatePostedJobApplicationsNotification(posterID, jobTitle string, applicationCount int64, jobID string) error {
	data, err := payload(map[string]interface{}{
		"job_id":            jobID,
		"application_count": applicationCount,
	})
	if err != nil {
		return err
	}

	return s.notificationRepo.CreateNotification(&models.Notification{
		UserID:            posterID,
		Type:              repositories.NotificationTypePostedJobApplications,
		Title:             "Your job is getting applications",
		Message:           fmt.Sprintf("'%s' has %d application(s)", jobTitle, applicationCount),
		RelatedEntityID:   &jobID,
		RelatedEntityType: repositories.RelatedEntityJob,
		Data:              data,
	})
}

func (s *notificationService) CreateReferralApplicationNotification(posterID, applicantName, jobTitle, applicationID string) error {
	return s.notificationRepo.CreateNotification(&models.Notification{
		UserID:            posterID,
		Type:              repositories.NotificationTypeReferralApplication,
		Title:             "New application received",
		Message:           fmt.Sprintf("%s applied for '%s'", applicantName, jobTitle),
		RelatedEntityID:   &applicationID,
		RelatedEntityType: repositories.RelatedEntityApplication,
	})
}

func (s *notificationService) CreateGeneralNotification(userID, title, message string) error {
	return s.notificationRepo.CreateNotification(&models.Notification{
		UserID:  userID,
		Type:    repositories.NotificationTypeGeneral,
		Title:   title,
		Message: message,
	})
}

// ---------------- Read side ----------------

func (s *notificationService) GetRecentNotifications(userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindNotificationsSince(userID, time.Now().Add(-RecentWindow))
	if err != nil {
		return nil, err
	}
	return buildListResponse(notifications), nil
}

func (s *notificationService) GetAllNotifications(userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindUserNotifications(userID)
	if err != nil {
		return nil, err
	}
	return buildListResponse(notifications), nil
}

func (s *notificationService) GetUnreadNotifications(userID string) (*dto.NotificationListResponse, error) {
	notifications, err := s.notificationRepo.FindUnreadNotifications(userID)
	if err != nil {
		return nil, err
	}
	return buildListResponse(notifications), nil
}

func (s *notificationService) GetUnreadCount(userID string) (int64, error) {
	return s.notificationRepo.GetUnreadCount(userID)
}

// ---------------- Ownership-scoped mutations ----------------

func (s *notificationService) MarkAsRead(userID, notificationID string) error {
	return s.notificationRepo.MarkAsRead(notificationID, userID)
}

func (s *notificationService) MarkAllAsRead(userID string) error {
	return s.notificationRepo.MarkAllAsRead(userID)
}

func (s *notificationService) DeleteNotification(userID, notificationID string) error {
	return s.notificationRepo.DeleteNotification(notificationID, userID)
}

// ---------------- Dispatcher support ----------------

func (s *notificationService) GetPendingNotifications() ([]models.Notification, error) {
	return s.notificationRepo.FindPendingNotifications(time.Now().Add(-DispatchDebounce))
}

func (s *notificationService) MarkAsSent(notificationID string) error {
	return s.notificationRepo.MarkAsSent(notificationID)
}

func (s *notificationService) MarkAsFailed(notificationID, errorMessage string) error {
	return s.notificationRepo.MarkAsFailed(notificationID, errorMessage)
}

// ---------------- Helpers ----------------

func payload(data map[string]interface{}) (datatypes.JSON, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification data: %w", err)
	}
	return datatypes.JSON(jsonData), nil
}

func buildListResponse(notifications []models.Notification) *dto.NotificationListResponse {
	responses := make([]*dto.NotificationResponse, 0, len(notifications))
	for i := range notifications {
		responses = append(responses, buildNotificationResponse(&notifications[i]))
	}
	return &dto.NotificationListResponse{
		Notifications: responses,
		Total:         len(responses),
	}
}

func buildNotificationResponse(n *models.Notification) *dto.NotificationResponse {
	return &dto.NotificationResponse{
		ID:                n.ID,
		UserID:            n.UserID,
		Type:              n.Type,
		Title:             n.Title,
		Message:           n.Message,
		RelatedEntityID:   n.RelatedEntityID,
		RelatedEntityType: n.RelatedEntityType,
		IsRead:            n.IsRead,
		ReadAt:            n.ReadAt,
		IsSent:            n.IsSent,
		SentAt:            n.SentAt,
		CreatedAt:         n.CreatedAt,
	}
}
