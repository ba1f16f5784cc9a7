package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
)

func TestPostedJobApplicationsPassFirstObservation(t *testing.T) {
	f := newFixture(t)

	poster := f.createUser(t, "poster", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())
	f.apply(t, job, "applicant-1")
	f.apply(t, job, "applicant-2")

	result, err := f.engine.GeneratePostedJobApplicationsNotifications()
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Notified)
	assert.Equal(t, 0, result.Failed)

	notifications := f.notificationsFor(t, poster.ID, repositories.NotificationTypePostedJobApplications)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "2 application(s)")

	record, err := f.countRepo.FindByJobAndPoster(job.ID, poster.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, record.LastNotifiedCount)
	assert.Equal(t, 2, record.CurrentApplicationCount)
}

func TestPostedJobApplicationsPassNoIncreaseDoesNotNotify(t *testing.T) {
	f := newFixture(t)

	poster := f.createUser(t, "poster", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())
	f.apply(t, job, "applicant-1")

	_, err := f.engine.GeneratePostedJobApplicationsNotifications()
	require.NoError(t, err)

	// Second run with no new applications.
	result, err := f.engine.GeneratePostedJobApplicationsNotifications()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Notified)

	notifications := f.notificationsFor(t, poster.ID, repositories.NotificationTypePostedJobApplications)
	assert.Len(t, notifications, 1)

	record, err := f.countRepo.FindByJobAndPoster(job.ID, poster.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, record.LastNotifiedCount)
	assert.Equal(t, 1, record.CurrentApplicationCount)
}

func TestPostedJobApplicationsPassNotifiesOnIncrease(t *testing.T) {
	f := newFixture(t)

	poster := f.createUser(t, "poster", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())
	f.apply(t, job, "applicant-1")

	_, err := f.engine.GeneratePostedJobApplicationsNotifications()
	require.NoError(t, err)

	f.apply(t, job, "applicant-2")
	f.apply(t, job, "applicant-3")

	result, err := f.engine.GeneratePostedJobApplicationsNotifications()
	require.NoError(t, err)
	assert.Equal(t, 1, result.Notified)

	notifications := f.notificationsFor(t, poster.ID, repositories.NotificationTypePostedJobApplications)
	assert.Len(t, notifications, 2)

	record, err := f.countRepo.FindByJobAndPoster(job.ID, poster.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, record.LastNotifiedCount)
	assert.Equal(t, 3, record.CurrentApplicationCount)
}

func TestPostedJobApplicationsPassIgnoresJobsWithoutApplications(t *testing.T) {
	f := newFixture(t)

	poster := f.createUser(t, "poster", nil, "")
	f.createJob(t, poster, "Lonely Job", time.Now())

	result, err := f.engine.GeneratePostedJobApplicationsNotifications()
	require.NoError(t, err)

	assert.Equal(t, 0, result.Processed)
	assert.Equal(t, 0, result.Notified)

	_, err = f.countRepo.FindByJobAndPoster("missing", poster.ID)
	assert.ErrorIs(t, err, repositories.ErrApplicationCountNotFound)
}

func TestCompanyJobsPassNotifiesAndRenotifiesEveryRun(t *testing.T) {
	f := newFixture(t)

	companyID := "acme"
	member := f.createUser(t, "member", &companyID, "Acme Inc")
	f.createJob(t, member, "New Role", time.Now())

	for run := 0; run < 2; run++ {
		result, err := f.engine.GenerateCompanyJobsNotifications(30)
		require.NoError(t, err)
		assert.Equal(t, 1, result.Processed)
		assert.Equal(t, 1, result.Notified)
	}

	// No dedup across runs: both runs produced a notification.
	notifications := f.notificationsFor(t, member.ID, repositories.NotificationTypeCompanyJobs)
	assert.Len(t, notifications, 2)
}

func TestCompanyJobsPassSkipsJobsOutsideWindow(t *testing.T) {
	f := newFixture(t)

	companyID := "acme"
	member := f.createUser(t, "member", &companyID, "Acme Inc")
	f.createJob(t, member, "Old Role", time.Now().AddDate(0, 0, -60))

	result, err := f.engine.GenerateCompanyJobsNotifications(30)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Notified)
	assert.Empty(t, f.notificationsFor(t, member.ID, repositories.NotificationTypeCompanyJobs))
}

func TestCompanyJobsPassSkipsUsersWithoutCompany(t *testing.T) {
	f := newFixture(t)

	loner := f.createUser(t, "loner", nil, "")

	result, err := f.engine.GenerateCompanyJobsNotifications(30)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Processed)
	assert.Empty(t, f.notificationsFor(t, loner.ID, repositories.NotificationTypeCompanyJobs))
}

func TestApplicationStatusPassNotifiesApplicant(t *testing.T) {
	f := newFixture(t)

	poster := f.createUser(t, "poster", nil, "")
	applicant := f.createUser(t, "applicant", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())
	application := f.apply(t, job, applicant.ID)

	require.NoError(t, f.applicationRepo.UpdateStatus(application.ID, models.ApplicationStatusShortlisted))

	result, err := f.engine.GenerateApplicationStatusNotifications(7)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 1, result.Notified)

	notifications := f.notificationsFor(t, applicant.ID, repositories.NotificationTypeApplicationShortlisted)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "Backend Engineer")
	assert.Contains(t, notifications[0].Message, "shortlisted")
}

func TestApplicationStatusPassSkipsUnresolvableJob(t *testing.T) {
	f := newFixture(t)

	// An application whose parent job no longer exists.
	orphan := &models.JobApplication{
		JobID:       "gone",
		ApplicantID: "applicant-1",
		Status:      models.ApplicationStatusApplied,
	}
	require.NoError(t, f.db.Create(orphan).Error)

	result, err := f.engine.GenerateApplicationStatusNotifications(7)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Processed)
	assert.Equal(t, 0, result.Notified)
	assert.Equal(t, 1, result.Failed)
}

func TestCleanupDeletesOnlyOldNotifications(t *testing.T) {
	f := newFixture(t)

	user := f.createUser(t, "reader", nil, "")
	require.NoError(t, f.service.CreateGeneralNotification(user.ID, "fresh", "keep me"))
	require.NoError(t, f.service.CreateGeneralNotification(user.ID, "stale", "drop me"))
	require.NoError(t, f.service.CreateGeneralNotification(user.ID, "ancient", "drop me too"))

	all, err := f.notificationRepo.FindUserNotifications(user.ID)
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, n := range all {
		if n.Title != "fresh" {
			f.backdate(t, n.ID, time.Now().AddDate(0, 0, -45))
		}
	}

	deleted, err := f.engine.CleanupOldNotifications(30)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	remaining, err := f.notificationRepo.FindUserNotifications(user.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "fresh", remaining[0].Title)
}
