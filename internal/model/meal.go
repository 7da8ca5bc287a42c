package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MealStore defines persistence operations for meals.
type MealStore interface {
	Create(ctx context.Context, meal Meal) (Meal, error)
	GetByID(ctx context.Context, id uuid.UUID) (Meal, error)
	// GetByUserID returns the user's meals in creation order. The diet
	// streak computation depends on that ordering.
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Meal, error)
	Update(ctx context.Context, id uuid.UUID, name, description string, inDiet bool) error
	PartialUpdate(ctx context.Context, id uuid.UUID, update MealUpdate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Meal represents a meal record owned by a user.
type Meal struct {
	ID          uuid.UUID
	Name        string
	Description string
	InDiet      bool
	UserID      uuid.UUID
	CreatedAt   time.Time
}

// MealUpdate carries a partial field set for PATCH updates.
// Nil fields are left untouched.
type MealUpdate struct {
	Name        *string
	Description *string
	InDiet      *bool
}

// Empty reports whether the update carries no fields at all.
func (u MealUpdate) Empty() bool {
	return u.Name == nil && u.Description == nil && u.InDiet == nil
}

// DietSummary aggregates a user's meals: counts plus the longest run of
// consecutive in-diet meals in creation order.
type DietSummary struct {
	Total         int
	InDiet        int
	OutDiet       int
	LongestStreak int
}
