package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pviana/daily-diet-server/internal/model"
)

var _ model.MealStore = (*MealRepository)(nil)

type MealRepository struct {
	db *Connection
}

func NewMealRepository(db *Connection) *MealRepository {
	return &MealRepository{
		db: db,
	}
}

func (r *MealRepository) Create(ctx context.Context, meal model.Meal) (model.Meal, error) {
	query := `INSERT INTO meal (id, name, description, in_diet, user_meal_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, name, description, in_diet, user_meal_id, created_at`

	var savedMeal model.Meal
	err := r.db.QueryRow(ctx, query,
		meal.ID, meal.Name, meal.Description, meal.InDiet, meal.UserID, meal.CreatedAt,
	).Scan(
		&savedMeal.ID, &savedMeal.Name, &savedMeal.Description,
		&savedMeal.InDiet, &savedMeal.UserID, &savedMeal.CreatedAt,
	)
	if err != nil {
		return model.Meal{}, fmt.Errorf("failed to create meal: %w", err)
	}

	return savedMeal, nil
}

func (r *MealRepository) GetByID(ctx context.Context, id uuid.UUID) (model.Meal, error) {
	query := `SELECT id, name, description, in_diet, user_meal_id, created_at
			  FROM meal WHERE id = $1`

	var meal model.Meal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&meal.ID, &meal.Name, &meal.Description, &meal.InDiet, &meal.UserID, &meal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Meal{}, model.ErrNotFound
		}
		return model.Meal{}, fmt.Errorf("failed to get meal by id: %w", err)
	}

	return meal, nil
}

// GetByUserID returns the user's meals ordered by creation time. The id
// tiebreak keeps the order stable when timestamps collide.
func (r *MealRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Meal, error) {
	query := `SELECT id, name, description, in_diet, user_meal_id, created_at
			  FROM meal WHERE user_meal_id = $1
			  ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	defer rows.Close()

	var meals []model.Meal
	for rows.Next() {
		var meal model.Meal
		err := rows.Scan(
			&meal.ID, &meal.Name, &meal.Description, &meal.InDiet, &meal.UserID, &meal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan meal: %w", err)
		}
		meals = append(meals, meal)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read meals: %w", err)
	}

	return meals, nil
}

func (r *MealRepository) Update(ctx context.Context, id uuid.UUID, name, description string, inDiet bool) error {
	query := `UPDATE meal SET name = $2, description = $3, in_diet = $4 WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id, name, description, inDiet)
	if err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *MealRepository) PartialUpdate(ctx context.Context, id uuid.UUID, update model.MealUpdate) error {
	sets := make([]string, 0, 3)
	args := []any{id}

	appendSet := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Name != nil {
		appendSet("name", *update.Name)
	}
	if update.Description != nil {
		appendSet("description", *update.Description)
	}
	if update.InDiet != nil {
		appendSet("in_diet", *update.InDiet)
	}

	if len(sets) == 0 {
		return nil
	}

	query := fmt.Sprintf(`UPDATE meal SET %s WHERE id = $1`, strings.Join(sets, ", "))

	cmd, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update meal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *MealRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM meal WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete meal: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}
