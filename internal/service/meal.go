package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pviana/daily-diet-server/internal/logger"
	"github.com/pviana/daily-diet-server/internal/model"
)

// Meal implements meal CRUD and diet aggregation for a user.
type Meal struct {
	mealStore model.MealStore
	logger    *logger.Logger
}

// NewMeal creates a new Meal service.
func NewMeal(mealStore model.MealStore, logger *logger.Logger) *Meal {
	return &Meal{
		mealStore: mealStore,
		logger:    logger,
	}
}

// Create validates and persists a meal for the given user. The diet flag
// is a pointer so an explicit false is accepted and only a truly absent
// field is rejected.
func (s *Meal) Create(ctx context.Context, userID uuid.UUID, name, description string, inDiet *bool) (model.Meal, error) {
	s.logger.Debug("Meal service: creating meal",
		"user_id", userID)

	if err := validateMealFields(name, description, inDiet); err != nil {
		return model.Meal{}, err
	}

	meal := model.Meal{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		InDiet:      *inDiet,
		UserID:      userID,
		CreatedAt:   time.Now(),
	}

	savedMeal, err := s.mealStore.Create(ctx, meal)
	if err != nil {
		s.logger.Error("Meal service: failed to create meal",
			"user_id", userID,
			"error", err.Error())
		return model.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}

	s.logger.Info("Meal service: meal created",
		"user_id", userID,
		"meal_id", savedMeal.ID)

	return savedMeal, nil
}

// List returns the user's meals in creation order.
func (s *Meal) List(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	meals, err := s.mealStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}

	return meals, nil
}

// Get returns the set of meals matching an id. An unknown id yields an
// empty set, not an error.
func (s *Meal) Get(ctx context.Context, id uuid.UUID) ([]model.Meal, error) {
	meal, err := s.mealStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return []model.Meal{}, nil
		}
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}

	return []model.Meal{meal}, nil
}

// Update overwrites name, description and diet flag of a meal owned by
// userID. An unknown id or a meal owned by someone else yields
// model.ErrNotFound.
func (s *Meal) Update(ctx context.Context, userID, id uuid.UUID, name, description string, inDiet *bool) error {
	if err := validateMealFields(name, description, inDiet); err != nil {
		return err
	}

	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}

	if err := s.mealStore.Update(ctx, id, name, description, *inDiet); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to update meal",
			"meal_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to update meal: %w", err)
	}

	s.logger.Info("Meal service: meal updated",
		"user_id", userID,
		"meal_id", id)

	return nil
}

// PartialUpdate overwrites only the provided fields of a meal owned by
// userID.
func (s *Meal) PartialUpdate(ctx context.Context, userID, id uuid.UUID, update model.MealUpdate) error {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return model.NewValidationError("name", "must not be empty")
	}
	if update.Description != nil && strings.TrimSpace(*update.Description) == "" {
		return model.NewValidationError("description", "must not be empty")
	}

	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}

	if update.Empty() {
		return nil
	}

	if err := s.mealStore.PartialUpdate(ctx, id, update); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to update meal",
			"meal_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to update meal: %w", err)
	}

	s.logger.Info("Meal service: meal updated",
		"user_id", userID,
		"meal_id", id)

	return nil
}

// Delete removes a meal owned by userID.
func (s *Meal) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.checkOwnership(ctx, userID, id); err != nil {
		return err
	}

	if err := s.mealStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("Meal service: failed to delete meal",
			"meal_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete meal: %w", err)
	}

	s.logger.Info("Meal service: meal deleted",
		"user_id", userID,
		"meal_id", id)

	return nil
}

// Summary reduces the user's creation-ordered meals to total, in-diet and
// out-of-diet counts plus the longest consecutive in-diet streak, in a
// single pass.
func (s *Meal) Summary(ctx context.Context, userID uuid.UUID) (model.DietSummary, error) {
	meals, err := s.mealStore.GetByUserID(ctx, userID)
	if err != nil {
		return model.DietSummary{}, fmt.Errorf("failed to list meals: %w", err)
	}

	return summarize(meals), nil
}

// checkOwnership reports model.ErrNotFound both for unknown meals and for
// meals owned by another user, so mutation never reveals foreign ids.
func (s *Meal) checkOwnership(ctx context.Context, userID, id uuid.UUID) error {
	meal, err := s.mealStore.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to get meal: %w", err)
	}

	if meal.UserID != userID {
		s.logger.Info("Meal service: mutation rejected, meal owned by another user",
			"user_id", userID,
			"meal_id", id)
		return model.ErrNotFound
	}

	return nil
}

func summarize(meals []model.Meal) model.DietSummary {
	var summary model.DietSummary
	streak := 0
	for _, meal := range meals {
		summary.Total++
		if meal.InDiet {
			summary.InDiet++
			streak++
			if streak > summary.LongestStreak {
				summary.LongestStreak = streak
			}
		} else {
			summary.OutDiet++
			streak = 0
		}
	}

	return summary
}

func validateMealFields(name, description string, inDiet *bool) error {
	if strings.TrimSpace(name) == "" {
		return model.NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(description) == "" {
		return model.NewValidationError("description", "must not be empty")
	}
	if inDiet == nil {
		return model.NewValidationError("in_diet", "is required")
	}
	return nil
}
