package services

import (
	"context"
	"time"

	"jobportal_backend/internal/logger"
	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services/dto"
	"jobportal_backend/pkg/apperrors"
)

type JobService interface {
	CreateJob(posterID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(jobID string) (*dto.JobResponse, error)
	ListJobs() (*dto.JobListResponse, error)

	// Apply creates the application and fires the referral notification to
	// the job poster, the one notification created by a direct domain event
	// instead of a batch pass.
	Apply(jobID, applicantID string) (*dto.ApplicationResponse, error)

	// UpdateApplicationStatus records the change; the application-status
	// pass picks it up later, no notification fires here.
	UpdateApplicationStatus(callerID, applicationID string, status models.ApplicationStatus) error

	// EnrichJobDescription rewrites the job description through the
	// language-model text service. Only wired when an enricher is
	// configured.
	EnrichJobDescription(ctx context.Context, jobID string) (*dto.JobResponse, error)
}

type jobService struct {
	jobRepo             repositories.JobRepository
	applicationRepo     repositories.JobApplicationRepository
	userRepo            repositories.UserRepository
	notificationService NotificationService
	enricher            Enricher
}

func NewJobService(
	jobRepo repositories.JobRepository,
	applicationRepo repositories.JobApplicationRepository,
	userRepo repositories.UserRepository,
	notificationService NotificationService,
	enricher Enricher,
) JobService {
	return &jobService{
		jobRepo:             jobRepo,
		applicationRepo:     applicationRepo,
		userRepo:            userRepo,
		notificationService: notificationService,
		enricher:            enricher,
	}
}

func (s *jobService) CreateJob(posterID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	poster, err := s.userRepo.FindByID(posterID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if poster.Role != models.UserRoleRecruiter && poster.Role != models.UserRoleAdmin {
		return nil, apperrors.ErrInsufficientPermissions
	}

	job := &models.Job{
		Title:          req.Title,
		CompanyID:      req.CompanyID,
		CompanyName:    req.CompanyName,
		Designation:    req.Designation,
		Description:    req.Description,
		PostedByUserID: posterID,
		PostedAt:       time.Now(),
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return buildJobResponse(job), nil
}

func (s *jobService) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	return buildJobResponse(job), nil
}

func (s *jobService) ListJobs() (*dto.JobListResponse, error) {
	jobs, err := s.jobRepo.List()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	responses := make([]*dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, buildJobResponse(&jobs[i]))
	}
	return &dto.JobListResponse{Jobs: responses, Total: len(responses)}, nil
}

func (s *jobService) Apply(jobID, applicantID string) (*dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	application := &models.JobApplication{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusApplied,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		if err == repositories.ErrAlreadyApplied {
			return nil, apperrors.ErrAlreadyExists(err)
		}
		return nil, apperrors.InternalError(err)
	}

	// Best-effort: a failed notification must not roll back the application.
	err = s.notificationService.CreateReferralApplicationNotification(
		job.PostedByUserID, applicant.Name, job.Title, application.ID)
	if err != nil {
		logger.Error("failed to notify poster about new application",
			"job_id", jobID, "application_id", application.ID, "error", err)
	}

	return &dto.ApplicationResponse{
		ID:          application.ID,
		JobID:       application.JobID,
		ApplicantID: application.ApplicantID,
		Status:      application.Status,
		UpdatedAt:   application.UpdatedAt,
	}, nil
}

func (s *jobService) UpdateApplicationStatus(callerID, applicationID string, status models.ApplicationStatus) error {
	if !status.Valid() {
		return apperrors.ErrInvalidStatus("job", "unknown application status")
	}

	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	job, err := s.jobRepo.FindByID(application.JobID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}
	if job.PostedByUserID != callerID {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.applicationRepo.UpdateStatus(applicationID, status); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *jobService) EnrichJobDescription(ctx context.Context, jobID string) (*dto.JobResponse, error) {
	if s.enricher == nil {
		return nil, apperrors.ErrInvalidOperation("job", "enrichment service is not configured")
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	enriched, err := s.enricher.EnrichJobDescription(ctx, job)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternalServiceError, "job",
			"Failed to enrich job description", 502)
	}

	if err := s.jobRepo.UpdateDescription(jobID, enriched); err != nil {
		return nil, apperrors.InternalError(err)
	}

	job.Description = enriched
	return buildJobResponse(job), nil
}

func buildJobResponse(job *models.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:             job.ID,
		Title:          job.Title,
		CompanyID:      job.CompanyID,
		CompanyName:    job.CompanyName,
		Designation:    job.Designation,
		Description:    job.Description,
		PostedByUserID: job.PostedByUserID,
		PostedAt:       job.PostedAt,
	}
}
