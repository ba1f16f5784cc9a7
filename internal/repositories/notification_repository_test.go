package repositories_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
)

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

func TestCreateNotificationValidation(t *testing.T) {
	repo := repositories.NewNotificationRepository(openTestDB(t))

	cases := []struct {
		name         string
		notification models.Notification
	}{
		{"missing user", models.Notification{Type: "general", Title: "t"}},
		{"missing type", models.Notification{UserID: "u", Title: "t"}},
		{"missing title", models.Notification{UserID: "u", Type: "general"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			n := tc.notification
			assert.Error(t, repo.CreateNotification(&n))
		})
	}

	valid := models.Notification{UserID: "u", Type: "general", Title: "t", Message: "m"}
	assert.NoError(t, repo.CreateNotification(&valid))
	assert.NotEmpty(t, valid.ID)
}

func TestMarkAsSentUnknownNotification(t *testing.T) {
	repo := repositories.NewNotificationRepository(openTestDB(t))

	err := repo.MarkAsSent("does-not-exist")
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)

	err = repo.MarkAsFailed("does-not-exist", "boom")
	assert.ErrorIs(t, err, repositories.ErrNotificationNotFound)
}

func TestCleanOldNotificationsCountsDeletedRows(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	for i := 0; i < 3; i++ {
		n := models.Notification{UserID: "u", Type: "general", Title: fmt.Sprintf("n-%d", i)}
		require.NoError(t, repo.CreateNotification(&n))
		if i < 2 {
			require.NoError(t, db.Model(&models.Notification{}).
				Where("id = ?", n.ID).
				Update("created_at", time.Now().AddDate(0, 0, -10)).Error)
		}
	}

	deleted, err := repo.CleanOldNotifications(time.Now().AddDate(0, 0, -5))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// Idempotent: a second sweep finds nothing.
	deleted, err = repo.CleanOldNotifications(time.Now().AddDate(0, 0, -5))
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)
}

func TestFindPendingNotificationsOrdering(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewNotificationRepository(db)

	titles := []string{"second", "first"}
	offsets := []time.Duration{-5 * time.Minute, -10 * time.Minute}
	for i, title := range titles {
		n := models.Notification{UserID: "u", Type: "general", Title: title}
		require.NoError(t, repo.CreateNotification(&n))
		require.NoError(t, db.Model(&models.Notification{}).
			Where("id = ?", n.ID).
			Update("created_at", time.Now().Add(offsets[i])).Error)
	}

	pending, err := repo.FindPendingNotifications(time.Now().Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, "first", pending[0].Title, "oldest pending notification dispatches first")
	assert.Equal(t, "second", pending[1].Title)
}
