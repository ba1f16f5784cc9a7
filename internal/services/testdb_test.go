package services_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
	"jobportal_backend/internal/services"
)

// openTestDB gives every test its own in-memory sqlite database. The named
// shared-cache DSN keeps gorm's connection pool pointed at one database
// instead of one per connection.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Job{},
		&models.JobApplication{},
		&models.Notification{},
		&models.ApplicationCount{},
	))
	return db
}

type fixture struct {
	db               *gorm.DB
	userRepo         repositories.UserRepository
	jobRepo          repositories.JobRepository
	applicationRepo  repositories.JobApplicationRepository
	countRepo        repositories.ApplicationCountRepository
	notificationRepo repositories.NotificationRepository
	service          services.NotificationService
	engine           *services.NotificationEngine
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := openTestDB(t)
	userRepo := repositories.NewUserRepository(db)
	jobRepo := repositories.NewJobRepository(db)
	applicationRepo := repositories.NewJobApplicationRepository(db)
	countRepo := repositories.NewApplicationCountRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	service := services.NewNotificationService(notificationRepo)

	return &fixture{
		db:               db,
		userRepo:         userRepo,
		jobRepo:          jobRepo,
		applicationRepo:  applicationRepo,
		countRepo:        countRepo,
		notificationRepo: notificationRepo,
		service:          service,
		engine: services.NewNotificationEngine(
			services.DefaultEngineConfig(),
			userRepo, jobRepo, applicationRepo, countRepo, notificationRepo, service,
		),
	}
}

func (f *fixture) createUser(t *testing.T, name string, companyID *string, companyName string) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
		Role:         models.UserRoleRecruiter,
		CompanyID:    companyID,
		CompanyName:  companyName,
	}
	require.NoError(t, f.userRepo.Create(user))
	return user
}

func (f *fixture) createJob(t *testing.T, poster *models.User, title string, postedAt time.Time) *models.Job {
	t.Helper()

	companyID := "acme"
	if poster.CompanyID != nil {
		companyID = *poster.CompanyID
	}
	job := &models.Job{
		Title:          title,
		CompanyID:      companyID,
		CompanyName:    poster.CompanyName,
		PostedByUserID: poster.ID,
		PostedAt:       postedAt,
	}
	require.NoError(t, f.jobRepo.Create(job))
	return job
}

func (f *fixture) apply(t *testing.T, job *models.Job, applicantID string) *models.JobApplication {
	t.Helper()

	application := &models.JobApplication{
		JobID:       job.ID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusApplied,
	}
	require.NoError(t, f.applicationRepo.Create(application))
	return application
}

func (f *fixture) notificationsFor(t *testing.T, userID, notificationType string) []models.Notification {
	t.Helper()

	all, err := f.notificationRepo.FindUserNotifications(userID)
	require.NoError(t, err)

	var matched []models.Notification
	for _, n := range all {
		if n.Type == notificationType {
			matched = append(matched, n)
		}
	}
	return matched
}

// backdate rewrites a notification's created_at, for window and retention
// tests.
func (f *fixture) backdate(t *testing.T, notificationID string, createdAt time.Time) {
	t.Helper()

	err := f.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("created_at", createdAt).Error
	require.NoError(t, err)
}
