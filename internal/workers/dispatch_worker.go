package workers

import (
	"context"
	"time"

	"jobportal_backend/internal/email"
	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"
)

// DispatchWorker drains unsent notifications and delivers them by email.
// Only notifications older than the dispatch debounce are picked up, so a
// burst of engine writes settles before anything leaves the system.
type DispatchWorker struct {
	notificationService services.NotificationService
	userRepo            repositories.UserRepository
	provider            email.Provider
	interval            time.Duration
}

func NewDispatchWorker(
	notificationService services.NotificationService,
	userRepo repositories.UserRepository,
	provider email.Provider,
	interval time.Duration,
) *DispatchWorker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &DispatchWorker{
		notificationService: notificationService,
		userRepo:            userRepo,
		provider:            provider,
		interval:            interval,
	}
}

func (w *DispatchWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *DispatchWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.WorkerLog("dispatch", "started", "interval", w.interval.String())

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("dispatch", "stopped")
			return
		case <-ticker.C:
			w.dispatchPending()
		}
	}
}

func (w *DispatchWorker) dispatchPending() {
	pending, err := w.notificationService.GetPendingNotifications()
	if err != nil {
		logger.Error("dispatch: failed to list pending notifications", "error", err)
		return
	}
	if len(pending) == 0 {
		return
	}

	var sent, failed int
	for i := range pending {
		if w.dispatchOne(&pending[i]) {
			sent++
		} else {
			failed++
		}
	}
	logger.WorkerLog("dispatch", "batch finished", "sent", sent, "failed", failed)
}

// dispatchOne delivers a single notification and records the outcome on the
// notification row. Reports whether delivery succeeded.
func (w *DispatchWorker) dispatchOne(n *models.Notification) bool {
	user, err := w.userRepo.FindByID(n.UserID)
	if err != nil {
		logger.Error("dispatch: recipient lookup failed",
			"notification_id", n.ID, "user_id", n.UserID, "error", err)
		w.markFailed(n.ID, "recipient not found")
		return false
	}

	if err := w.provider.Send(user.Email, n.Title, n.Message); err != nil {
		logger.Error("dispatch: send failed",
			"notification_id", n.ID, "user_id", n.UserID, "error", err)
		w.markFailed(n.ID, err.Error())
		return false
	}

	if err := w.notificationService.MarkAsSent(n.ID); err != nil {
		// The mail went out; the row will be retried and may send twice.
		logger.Error("dispatch: failed to mark notification as sent",
			"notification_id", n.ID, "error", err)
		return false
	}
	return true
}

func (w *DispatchWorker) markFailed(notificationID, reason string) {
	if err := w.notificationService.MarkAsFailed(notificationID, reason); err != nil {
		logger.Error("dispatch: failed to record delivery failure",
			"notification_id", notificationID, "error", err)
	}
}
