package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/pviana/daily-diet-server/internal/api/http/httputil"
	"github.com/pviana/daily-diet-server/internal/api/http/session"
	"github.com/pviana/daily-diet-server/internal/logger"
	"github.com/pviana/daily-diet-server/internal/model"
)

// UserService defines registration, login and session operations.
type UserService interface {
	Register(ctx context.Context, name, email string) (model.User, error)
	Login(ctx context.Context, name, email string) (model.User, error)
	GetBySession(ctx context.Context, sessionID uuid.UUID) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// User handles HTTP endpoints for users and sessions.
type User struct {
	userService    UserService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, contextManager model.ContextManager, logger *logger.Logger) *User {
	return &User{
		userService:    userService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type userIdentityRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type userResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type loginResponse struct {
	SessionID string `json:"sessionId"`
}

func toUserResponse(user model.User) userResponse {
	return userResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	}
}

// Register creates a user and starts its session.
func (h *User) Register(w http.ResponseWriter, r *http.Request) {
	var req userIdentityRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.HandleError(w, model.NewValidationError("body", "must be a JSON object with name and email"))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email)
	if err != nil {
		h.logger.Error("User handler: registration failed",
			"email", req.Email,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	session.SetCookie(w, user.SessionID.String())
	httputil.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// List returns all registered users.
func (h *User) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		h.logger.Error("User handler: list failed",
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	resp := make([]userResponse, 0, len(users))
	for _, user := range users {
		resp = append(resp, toUserResponse(user))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// GetBySession returns the user record(s) carrying the session token in
// the path. An unknown token yields an empty set.
func (h *User) GetBySession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := uuid.Parse(mux.Vars(r)["sessionId"])
	if err != nil {
		httputil.HandleError(w, model.NewValidationError("sessionId", "must be a valid uuid"))
		return
	}

	user, err := h.userService.GetBySession(r.Context(), sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			httputil.WriteJSON(w, http.StatusOK, []userResponse{})
			return
		}
		h.logger.Error("User handler: session lookup failed",
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, []userResponse{toUserResponse(user)})
}

// Login reissues the session token for a matching name and email.
func (h *User) Login(w http.ResponseWriter, r *http.Request) {
	var req userIdentityRequest
	if err := httputil.ReadJSON(r, &req); err != nil {
		httputil.HandleError(w, model.NewValidationError("body", "must be a JSON object with name and email"))
		return
	}

	user, err := h.userService.Login(r.Context(), req.Name, req.Email)
	if err != nil {
		h.logger.Error("User handler: login failed",
			"email", req.Email,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	session.SetCookie(w, user.SessionID.String())
	httputil.WriteJSON(w, http.StatusOK, loginResponse{SessionID: user.SessionID.String()})
}

// Logout clears the session cookie.
func (h *User) Logout(w http.ResponseWriter, r *http.Request) {
	session.ClearCookie(w)
	w.WriteHeader(http.StatusOK)
}

// Delete removes the authenticated user; owned meals cascade.
func (h *User) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.contextManager.GetUserIDFromContext(r.Context())
	if !ok {
		httputil.HandleError(w, model.ErrUnauthenticated)
		return
	}

	if err := h.userService.Delete(r.Context(), userID); err != nil {
		h.logger.Error("User handler: delete failed",
			"user_id", userID,
			"error", err.Error())
		httputil.HandleError(w, err)
		return
	}

	session.ClearCookie(w)
	w.WriteHeader(http.StatusNoContent)
}
