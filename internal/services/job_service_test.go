package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

func newJobService(f *fixture) services.JobService {
	return services.NewJobService(f.jobRepo, f.applicationRepo, f.userRepo, f.service, nil)
}

func TestCreateJobRequiresRecruiterOrAdmin(t *testing.T) {
	f := newFixture(t)
	jobService := newJobService(f)

	seeker := &models.User{Name: "seeker", Email: "seeker@example.com", PasswordHash: "x", Role: models.UserRoleSeeker}
	require.NoError(t, f.userRepo.Create(seeker))

	req := &dto.CreateJobRequest{Title: "Backend Engineer", CompanyID: "acme", CompanyName: "Acme Inc"}
	_, err := jobService.CreateJob(seeker.ID, req)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	recruiter := f.createUser(t, "recruiter", nil, "")
	job, err := jobService.CreateJob(recruiter.ID, req)
	require.NoError(t, err)
	assert.Equal(t, recruiter.ID, job.PostedByUserID)
	assert.WithinDuration(t, time.Now(), job.PostedAt, time.Minute)
}

func TestApplyNotifiesPoster(t *testing.T) {
	f := newFixture(t)
	jobService := newJobService(f)

	poster := f.createUser(t, "poster", nil, "")
	applicant := f.createUser(t, "applicant", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())

	application, err := jobService.Apply(job.ID, applicant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusApplied, application.Status)

	notifications := f.notificationsFor(t, poster.ID, repositories.NotificationTypeReferralApplication)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "applicant")
	assert.Contains(t, notifications[0].Message, "Backend Engineer")

	// Applying twice is rejected and does not notify again.
	_, err = jobService.Apply(job.ID, applicant.ID)
	assert.Error(t, err)
	assert.Len(t, f.notificationsFor(t, poster.ID, repositories.NotificationTypeReferralApplication), 1)
}

func TestUpdateApplicationStatusOnlyByPoster(t *testing.T) {
	f := newFixture(t)
	jobService := newJobService(f)

	poster := f.createUser(t, "poster", nil, "")
	intruder := f.createUser(t, "intruder", nil, "")
	applicant := f.createUser(t, "applicant", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())

	application, err := jobService.Apply(job.ID, applicant.ID)
	require.NoError(t, err)

	err = jobService.UpdateApplicationStatus(intruder.ID, application.ID, models.ApplicationStatusShortlisted)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)

	err = jobService.UpdateApplicationStatus(poster.ID, application.ID, models.ApplicationStatusShortlisted)
	require.NoError(t, err)

	stored, err := f.applicationRepo.FindByID(application.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusShortlisted, stored.Status)

	// Status changes never notify directly; the batch pass owns that.
	assert.Empty(t, f.notificationsFor(t, applicant.ID, repositories.NotificationTypeApplicationShortlisted))
}

func TestUpdateApplicationStatusRejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	jobService := newJobService(f)

	err := jobService.UpdateApplicationStatus("anyone", "any-application", models.ApplicationStatus("archived"))
	assert.Error(t, err)
}

func TestEnrichJobDescriptionUnconfigured(t *testing.T) {
	f := newFixture(t)
	jobService := newJobService(f)

	poster := f.createUser(t, "poster", nil, "")
	job := f.createJob(t, poster, "Backend Engineer", time.Now())

	_, err := jobService.EnrichJobDescription(context.Background(), job.ID)
	assert.Error(t, err, "enrichment without a configured client must fail loudly")
}
