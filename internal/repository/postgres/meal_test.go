package postgres

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pviana/daily-diet-server/internal/model"
)

func TestNewMealRepository(t *testing.T) {
	db := &Connection{}
	repo := NewMealRepository(db)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
}

func TestMealRepository_PartialUpdate_NoFields(t *testing.T) {
	// An empty update set must not reach the database at all.
	repo := NewMealRepository(&Connection{})

	err := repo.PartialUpdate(context.Background(), uuid.New(), model.MealUpdate{})
	require.NoError(t, err)
}
