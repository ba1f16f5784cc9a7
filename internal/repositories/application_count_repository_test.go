package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobportal_backend/internal/models"
	"jobportal_backend/internal/repositories"
)

func TestApplicationCountInvariantGuard(t *testing.T) {
	repo := repositories.NewApplicationCountRepository(openTestDB(t))

	err := repo.Create(&models.ApplicationCount{
		JobID:                   "job-1",
		PostedByUserID:          "poster-1",
		LastNotifiedCount:       5,
		CurrentApplicationCount: 3,
	})
	assert.Error(t, err, "last notified may never exceed the current count")

	valid := &models.ApplicationCount{
		JobID:                   "job-1",
		PostedByUserID:          "poster-1",
		LastNotifiedCount:       3,
		CurrentApplicationCount: 3,
	}
	require.NoError(t, repo.Create(valid))

	valid.LastNotifiedCount = 10
	assert.Error(t, repo.Update(valid))
}

func TestApplicationCountRoundTrip(t *testing.T) {
	repo := repositories.NewApplicationCountRepository(openTestDB(t))

	_, err := repo.FindByJobAndPoster("job-1", "poster-1")
	assert.ErrorIs(t, err, repositories.ErrApplicationCountNotFound)

	record := &models.ApplicationCount{
		JobID:                   "job-1",
		PostedByUserID:          "poster-1",
		LastNotifiedCount:       1,
		CurrentApplicationCount: 2,
	}
	require.NoError(t, repo.Create(record))

	found, err := repo.FindByJobAndPoster("job-1", "poster-1")
	require.NoError(t, err)
	assert.Equal(t, 1, found.LastNotifiedCount)
	assert.Equal(t, 2, found.CurrentApplicationCount)

	found.LastNotifiedCount = 2
	require.NoError(t, repo.Update(found))

	again, err := repo.FindByJobAndPoster("job-1", "poster-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.LastNotifiedCount)
}

func TestApplicationCountUpdateUnknownRecord(t *testing.T) {
	repo := repositories.NewApplicationCountRepository(openTestDB(t))

	err := repo.Update(&models.ApplicationCount{
		BaseModel:               models.BaseModel{ID: "missing"},
		JobID:                   "job-1",
		PostedByUserID:          "poster-1",
		CurrentApplicationCount: 1,
	})
	assert.ErrorIs(t, err, repositories.ErrApplicationCountNotFound)
}
