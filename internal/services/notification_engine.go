package services

import (
	"errors"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
)

// EngineConfig is an explicit value handed to the engine, never process-wide
// state, so tests can run engines with independent configurations.
type EngineConfig struct {
	CompanyJobsWindowDays int
	StatusWindowDays      int
	RetentionDays         int
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		CompanyJobsWindowDays: 30,
		StatusWindowDays:      7,
		RetentionDays:         30,
	}
}

// PassResult is the first-class outcome of one generation pass. Per-item
// failures are counted here instead of being swallowed into logs.
type PassResult struct {
	Processed int
	Notified  int
	Failed    int
}

// NotificationEngine runs the batch generation and cleanup passes.
//
// Passes walk their populations sequentially; a failing item is logged,
// counted in PassResult.Failed and skipped, never aborting the batch. The
// returned error is non-nil only when the initial enumeration query fails,
// in which case the pass has already logged it and produced whatever partial
// result it could. Callers treat the error as reporting data, not as a
// reason to blow up.
//
// Concurrent invocations of the same pass are not mutually exclusive: the
// ApplicationCount update is read-modify-write, last-writer-wins. Deploy a
// single scheduler instance.
type NotificationEngine struct {
	cfg                 EngineConfig
	userRepo            repositories.UserRepository
	jobRepo             repositories.JobRepository
	applicationRepo     repositories.JobApplicationRepository
	countRepo           repositories.ApplicationCountRepository
	notificationRepo    repositories.NotificationRepository
	notificationService NotificationService
}

func NewNotificationEngine(
	cfg EngineConfig,
	userRepo repositories.UserRepository,
	jobRepo repositories.JobRepository,
	applicationRepo repositories.JobApplicationRepository,
	countRepo repositories.ApplicationCountRepository,
	notificationRepo repositories.NotificationRepository,
	notificationService NotificationService,
) *NotificationEngine {
	return &NotificationEngine{
		cfg:                 cfg,
		userRepo:            userRepo,
		jobRepo:             jobRepo,
		applicationRepo:     applicationRepo,
		countRepo:           countRepo,
		notificationRepo:    notificationRepo,
		notificationService: notificationService,
	}
}

func (e *NotificationEngine) Config() EngineConfig {
	return e.cfg
}

// GenerateCompanyJobsNotifications notifies every company-affiliated user
// about jobs their company posted within the trailing daysBack days.
//
// There is no dedup against earlier runs: whenever the window count is
// positive the user is notified again. This "remind every run" behavior is
// intentional and must not be silently fixed here.
func (e *NotificationEngine) GenerateCompanyJobsNotifications(daysBack int) (PassResult, error) {
	var result PassResult

	users, err := e.userRepo.FindAllUsersWithCompany()
	if err != nil {
		logger.Error("company jobs pass: failed to list users", "error", err)
		return result, err
	}

	since := time.Now().AddDate(0, 0, -daysBack)
	for i := range users {
		user := &users[i]
		result.Processed++

		count, err := e.jobRepo.CountByCompanySince(*user.CompanyID, since)
		if err != nil {
			logger.Error("company jobs pass: job count failed",
				"user_id", user.ID, "company_id", *user.CompanyID, "error", err)
			result.Failed++
			continue
		}
		if count == 0 {
			continue
		}

		if err := e.notificationService.CreateCompanyJobsNotification(user.ID, user.CompanyName, count); err != nil {
			logger.Error("company jobs pass: notification failed",
				"user_id", user.ID, "error", err)
			result.Failed++
			continue
		}
		result.Notified++
	}

	logger.Info("company jobs pass finished",
		"processed", result.Processed, "notified", result.Notified, "failed", result.Failed)
	return result, nil
}

// GenerateApplicationStatusNotifications notifies applicants whose
// application status changed within the trailing daysBack days. An
// application whose parent job is gone is skipped.
func (e *NotificationEngine) GenerateApplicationStatusNotifications(daysBack int) (PassResult, error) {
	var result PassResult

	since := time.Now().AddDate(0, 0, -daysBack)
	applications, err := e.applicationRepo.FindStatusChangedSince(since)
	if err != nil {
		logger.Error("application status pass: failed to list applications", "error", err)
		return result, err
	}

	for i := range applications {
		application := &applications[i]
		result.Processed++

		job, err := e.jobRepo.FindByID(application.JobID)
		if err != nil {
			logger.Warn("application status pass: job not resolvable, skipping",
				"application_id", application.ID, "job_id", application.JobID, "error", err)
			result.Failed++
			continue
		}

		err = e.notificationService.CreateApplicationStatusNotification(
			application.ApplicantID, job.Title, application.Status, application.ID)
		if err != nil {
			logger.Error("application status pass: notification failed",
				"application_id", application.ID, "error", err)
			result.Failed++
			continue
		}
		result.Notified++
	}

	logger.Info("application status pass finished",
		"processed", result.Processed, "notified", result.Notified, "failed", result.Failed)
	return result, nil
}

// GeneratePostedJobApplicationsNotifications is the delta-tracker pass. For
// every job with applications it compares the live count against the
// last-notified count:
//
//	no record, count > 0          -> create record, notify poster
//	no record, count == 0         -> nothing
//	record, count > last notified -> raise both counts, notify poster
//	record, count <= last notified-> refresh current count only, no notify
//
// After the pass, last_notified_count equals the live count exactly for the
// records that produced a notification this run; otherwise it is untouched.
func (e *NotificationEngine) GeneratePostedJobApplicationsNotifications() (PassResult, error) {
	var result PassResult

	jobs, err := e.jobRepo.FindJobsWithApplications()
	if err != nil {
		logger.Error("posted job applications pass: failed to list jobs", "error", err)
		return result, err
	}

	for i := range jobs {
		job := &jobs[i]
		result.Processed++

		if err := e.trackJobApplications(job, &result); err != nil {
			logger.Error("posted job applications pass: job failed",
				"job_id", job.ID, "error", err)
			result.Failed++
		}
	}

	logger.Info("posted job applications pass finished",
		"processed", result.Processed, "notified", result.Notified, "failed", result.Failed)
	return result, nil
}

func (e *NotificationEngine) trackJobApplications(job *models.Job, result *PassResult) error {
	current, err := e.applicationRepo.CountByJob(job.ID)
	if err != nil {
		return err
	}

	record, err := e.countRepo.FindByJobAndPoster(job.ID, job.PostedByUserID)
	switch {
	case errors.Is(err, repositories.ErrApplicationCountNotFound):
		if current == 0 {
			return nil
		}
		// Notify first: a record must never claim a notification that was
		// not actually created.
		err = e.notificationService.CreatePostedJobApplicationsNotification(
			job.PostedByUserID, job.Title, current, job.ID)
		if err != nil {
			return err
		}
		result.Notified++
		return e.countRepo.Create(&models.ApplicationCount{
			JobID:                   job.ID,
			PostedByUserID:          job.PostedByUserID,
			LastNotifiedCount:       int(current),
			CurrentApplicationCount: int(current),
		})

	case err != nil:
		return err
	}

	if int(current) > record.LastNotifiedCount {
		err = e.notificationService.CreatePostedJobApplicationsNotification(
			job.PostedByUserID, job.Title, current, job.ID)
		if err != nil {
			return err
		}
		result.Notified++
		record.LastNotifiedCount = int(current)
		record.CurrentApplicationCount = int(current)
		return e.countRepo.Update(record)
	}

	// No increase since the last notification: refresh the observed count
	// and leave last_notified_count alone.
	record.CurrentApplicationCount = int(current)
	return e.countRepo.Update(record)
}

// CleanupOldNotifications deletes notifications strictly older than
// retentionDays and reports how many were removed. A notification created
// exactly at the boundary survives.
func (e *NotificationEngine) CleanupOldNotifications(retentionDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	deleted, err := e.notificationRepo.CleanOldNotifications(cutoff)
	if err != nil {
		logger.Error("cleanup pass failed", "error", err)
		return 0, err
	}
	logger.Info("cleanup pass finished", "deleted", deleted, "retention_days", retentionDays)
	return deleted, nil
}
