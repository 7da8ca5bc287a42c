package handler

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pviana/daily-diet-server/internal/api/http/httputil"
	"github.com/pviana/daily-diet-server/internal/logger"
	"github.com/pviana/daily-diet-server/internal/model"
)

// MealService defines meal CRUD and aggregation operations.
type MealService interface {
	Create(ctx context.Context, userID uuid.UUID, name, description string, inDiet *bool) (model.Meal, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Meal, error)
	Get(ctx context.Context, id uuid.UUID) ([]model.Meal, error)
	Update(ctx context.Context, userID, id uuid.UUID, name, description string, inDiet *bool) error
	PartialUpdate(ctx context.Context, userID, id uuid.UUID, update model.MealUpdate) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
	Summary(ctx context.Context, userID uuid.UUID) (model.DietSummary, error)
}

// Meal handles HTTP endpoints for meals and diet aggregates.
type Meal struct {
	mealService    MealService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewMeal creates a new Meal handler.
func NewMeal(mealService MealService, contextManager model.ContextManager, logger *logger.Logger) *Meal {
	return &Meal{
		mealService:    mealService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// mealRequest decodes create and full-update bodies. InDiet is a pointer
// so an explicit false survives decoding and only a missing field is nil.
type mealRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	InDiet      *bool  `json:"in_diet"`
}

type mealPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	InDiet      *bool   `json:"in_diet"`
}

type mealResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	InDiet      bool   `json:"in_diet"`
	UserID      string `json:"user_meal_id"`
	CreatedAt   string `json:"created_at"`
}

type countResponse struct {
	Count int `json:"count"`
}

func toMealResponse(meal model.Meal) mealResponse {
	return mealResponse{
		ID:          meal.ID.String(),
		Name:        meal.Name,
		Description: meal.Description,
		InDiet:      meal.InDiet,
		UserID:      meal.UserID.String(),
		CreatedAt:   meal.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toMealResponses(meals []model.Meal) []mealResponse {
	resp := make([]mealResponse, 0, len(meals))
	for _, meal := range meals {
		resp = append(resp, toMealResponse(meal))
	}
	return resp
}

// Create persists a meal for the authenticated user.
func (h *Meal) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.HandleError(w, model.ErrUnauthenticated)
		return
	}

	var req mealRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.HandleError(w, model.NewValidationError("body", "must be a JSON object with name, description and in_diet"))
		return
	}

	meal, err := h.mealService.Create(r.Context(), userID, req.Name, req.Description, req.InDiet)
	if err != nil {
		h.logger.Error("Meal handler: create failed",
			"user_id", userID,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toMealResponse(meal))
}

// List returns the authenticated user's meals in creation order.
func (h *Meal) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.HandleError(w, model.ErrUnauthenticated)
		return
	}

	meals, err := h.mealService.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("Meal handler: list failed",
			"user_id", userID,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toMealResponses(meals))
}

// Get returns the meal set matching the path id; unknown ids yield an
// empty set.
func (h *Meal) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httputil.HandleError(w, model.NewValidationError("id", "must be a valid uuid"))
		return
	}

	meals, err := h.mealService.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Meal handler: get failed",
			"meal_id", id,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toMealResponses(meals))
}

// Amount returns the total number of meals.
func (h *Meal) Amount(w http.ResponseWriter, r *http.Request) {
	h.summaryField(w, r, func(s model.DietSummary) int { return s.Total })
}

// InDiet returns the number of in-diet meals.
func (h *Meal) InDiet(w http.ResponseWriter, r *http.Request) {
	h.summaryField(w, r, func(s model.DietSummary) int { return s.InDiet })
}

// OutDiet returns the number of out-of-diet meals.
func (h *Meal) OutDiet(w http.ResponseWriter, r *http.Request) {
	h.summaryField(w, r, func(s model.DietSummary) int { return s.OutDiet })
}

// SequenceDiet returns the longest consecutive in-diet streak.
func (h *Meal) SequenceDiet(w http.ResponseWriter, r *http.Request) {
	h.summaryField(w, r, func(s model.DietSummary) int { return s.LongestStreak })
}

func (h *Meal) summaryField(w http.ResponseWriter, r *http.Request, pick func(model.DietSummary) int) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.HandleError(w, model.ErrUnauthenticated)
		return
	}

	summary, err := h.mealService.Summary(r.Context(), userID)
	if err != nil {
		h.logger.Error("Meal handler: summary failed",
			"user_id", userID,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, countResponse{Count: pick(summary)})
}

// Update overwrites name, description and diet flag of an owned meal.
func (h *Meal) Update(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}

	var req mealRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.HandleError(w, model.NewValidationError("body", "must be a JSON object with name, description and in_diet"))
		return
	}

	if err := h.mealService.Update(r.Context(), userID, id, req.Name, req.Description, req.InDiet); err != nil {
		h.logger.Error("Meal handler: update failed",
			"meal_id", id,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// PartialUpdate overwrites only the provided fields of an owned meal.
func (h *Meal) PartialUpdate(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}

	var req mealPatchRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.HandleError(w, model.NewValidationError("body", "must be a JSON object"))
		return
	}

	update := model.MealUpdate{
		Name:        req.Name,
		Description: req.Description,
		InDiet:      req.InDiet,
	}

	if err := h.mealService.PartialUpdate(r.Context(), userID, id, update); err != nil {
		h.logger.Error("Meal handler: partial update failed",
			"meal_id", id,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Delete removes an owned meal.
func (h *Meal) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.mutationTarget(w, r)
	if !ok {
		return
	}

	if err := h.mealService.Delete(r.Context(), userID, id); err != nil {
		h.logger.Error("Meal handler: delete failed",
			"meal_id", id,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// mutationTarget resolves the authenticated user and the path id for
// mutation endpoints, reporting the failure itself when either is
// missing.
func (h *Meal) mutationTarget(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.HandleError(w, model.ErrUnauthenticated)
		return uuid.Nil, uuid.Nil, false
	}

	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		httputil.HandleError(w, model.NewValidationError("id", "must be a valid uuid"))
		return uuid.Nil, uuid.Nil, false
	}

	return userID, id, true
}
