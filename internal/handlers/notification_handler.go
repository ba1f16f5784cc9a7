package handlers

import (
	"net/http"

	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

const (
	triggerCompanyJobs           = "company_jobs"
	triggerApplicationStatus     = "application_status"
	triggerPostedJobApplications = "posted_job_applications"
	triggerCleanup               = "cleanup"
	triggerAll                   = "all"
)

type NotificationHandler struct {
	*BaseHandler
	notificationService services.NotificationService
	engine              *services.NotificationEngine
}

func NewNotificationHandler(base *BaseHandler, notificationService services.NotificationService, engine *services.NotificationEngine) *NotificationHandler {
	return &NotificationHandler{
		BaseHandler:         base,
		notificationService: notificationService,
		engine:              engine,
	}
}

// --- Batch trigger ---

// Trigger runs the requested engine passes on demand. The response is
// always 200: operation failures are reported inside the body, never as a
// transport-level error.
func (h *NotificationHandler) Trigger(c *gin.Context) {
	triggerType := c.DefaultQuery("type", triggerAll)

	response := &dto.TriggerResponse{
		Results:          make(map[string]dto.PassResultDTO),
		FailedOperations: []string{},
	}

	runPass := func(name string, run func() (services.PassResult, error)) {
		result, err := run()
		passDTO := dto.PassResultDTO{
			Processed: result.Processed,
			Notified:  result.Notified,
			Failed:    result.Failed,
		}
		if err != nil {
			passDTO.Error = err.Error()
			response.FailedOperations = append(response.FailedOperations, name)
		}
		response.Results[name] = passDTO
	}

	cfg := h.engine.Config()
	valid := false

	if triggerType == triggerCompanyJobs || triggerType == triggerAll {
		valid = true
		runPass(triggerCompanyJobs, func() (services.PassResult, error) {
			return h.engine.GenerateCompanyJobsNotifications(cfg.CompanyJobsWindowDays)
		})
	}
	if triggerType == triggerApplicationStatus || triggerType == triggerAll {
		valid = true
		runPass(triggerApplicationStatus, func() (services.PassResult, error) {
			return h.engine.GenerateApplicationStatusNotifications(cfg.StatusWindowDays)
		})
	}
	if triggerType == triggerPostedJobApplications || triggerType == triggerAll {
		valid = true
		runPass(triggerPostedJobApplications, func() (services.PassResult, error) {
			return h.engine.GeneratePostedJobApplicationsNotifications()
		})
	}
	if triggerType == triggerCleanup || triggerType == triggerAll {
		valid = true
		deleted, err := h.engine.CleanupOldNotifications(cfg.RetentionDays)
		passDTO := dto.PassResultDTO{Deleted: deleted}
		if err != nil {
			passDTO.Error = err.Error()
			response.FailedOperations = append(response.FailedOperations, triggerCleanup)
		}
		response.Results[triggerCleanup] = passDTO
	}

	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown trigger type: " + triggerType})
		return
	}

	c.JSON(http.StatusOK, response)
}

// --- Read side ---

// authorizePathUser lets a user read only their own notifications; admins
// may read anyone's.
func (h *NotificationHandler) authorizePathUser(c *gin.Context) (string, bool) {
	callerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return "", false
	}

	targetID := c.Param("userId")
	if targetID == "" {
		targetID = callerID
	}
	if targetID != callerID && !h.CallerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		return "", false
	}
	return targetID, true
}

func (h *NotificationHandler) GetRecent(c *gin.Context) {
	userID, ok := h.authorizePathUser(c)
	if !ok {
		return
	}

	response, err := h.notificationService.GetRecentNotifications(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) GetAll(c *gin.Context) {
	userID, ok := h.authorizePathUser(c)
	if !ok {
		return
	}

	response, err := h.notificationService.GetAllNotifications(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) GetUnread(c *gin.Context) {
	userID, ok := h.authorizePathUser(c)
	if !ok {
		return
	}

	response, err := h.notificationService.GetUnreadNotifications(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

func (h *NotificationHandler) GetUnreadCount(c *gin.Context) {
	userID, ok := h.authorizePathUser(c)
	if !ok {
		return
	}

	count, err := h.notificationService.GetUnreadCount(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UnreadCountResponse{UnreadCount: count})
}

// --- Ownership-scoped mutations ---
//
// These answer 200 even when nothing matched: a notification that does not
// exist or is not owned by the caller is a benign no-op, and the uniform
// answer leaks nothing about other users' notifications.

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	notificationID := c.Param("notificationId")

	if err := h.notificationService.MarkAsRead(userID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *NotificationHandler) MarkAllAsRead(c *gin.Context) {
	userID, ok := h.authorizePathUser(c)
	if !ok {
		return
	}

	if err := h.notificationService.MarkAllAsRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All notifications marked as read"})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	notificationID := c.Param("notificationId")

	if err := h.notificationService.DeleteNotification(userID, notificationID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification deleted"})
}
