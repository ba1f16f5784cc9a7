package workers

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/services"
)

// NotificationWorker periodically runs the notification generation passes
// and the retention cleanup.
type NotificationWorker struct {
	engine   *services.NotificationEngine
	interval time.Duration
}

func NewNotificationWorker(engine *services.NotificationEngine, interval time.Duration) *NotificationWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &NotificationWorker{engine: engine, interval: interval}
}

func (w *NotificationWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *NotificationWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.WorkerLog("notification", "started", "interval", w.interval.String())

	// One run at startup so a fresh deployment does not wait a full
	// interval before producing anything.
	w.runAllPasses()

	for {
		select {
		case <-ctx.Done():
			logger.WorkerLog("notification", "stopped")
			return
		case <-ticker.C:
			w.runAllPasses()
		}
	}
}

// runAllPasses executes every pass regardless of earlier failures; each
// pass logs and reports its own result.
func (w *NotificationWorker) runAllPasses() {
	cfg := w.engine.Config()
	started := time.Now()

	// The engine logs its own pass errors; nothing here may stop the
	// remaining passes from running.
	w.engine.GenerateCompanyJobsNotifications(cfg.CompanyJobsWindowDays)
	w.engine.GenerateApplicationStatusNotifications(cfg.StatusWindowDays)
	w.engine.GeneratePostedJobApplicationsNotifications()
	w.engine.CleanupOldNotifications(cfg.RetentionDays)

	logger.WorkerLog("notification", "run finished", "duration", time.Since(started).String())
}
