package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pviana/daily-diet-server/internal/logger"
	"github.com/pviana/daily-diet-server/internal/model"
)

// User implements registration, login and session resolution.
type User struct {
	userStore model.UserStore
	logger    *logger.Logger
}

// NewUser creates a new User service.
func NewUser(userStore model.UserStore, logger *logger.Logger) *User {
	return &User{
		userStore: userStore,
		logger:    logger,
	}
}

// Register creates a user with a fresh session token. The email must not
// be registered yet.
func (s *User) Register(ctx context.Context, name, email string) (model.User, error) {
	s.logger.Debug("User service: registering user",
		"email", email)

	if err := validateIdentity(name, email); err != nil {
		return model.User{}, err
	}

	existing, err := s.userStore.GetByEmail(ctx, email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		s.logger.Error("User service: failed to get user by email",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	if existing.ID != uuid.Nil {
		s.logger.Info("User service: email already registered",
			"email", email)
		return model.User{}, model.ErrDuplicateEmail
	}

	user := model.User{
		ID:        uuid.New(),
		Name:      name,
		Email:     email,
		SessionID: uuid.New(),
		CreatedAt: time.Now(),
	}

	savedUser, err := s.userStore.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrDuplicateEmail) {
			return model.User{}, err
		}
		s.logger.Error("User service: failed to create user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User service: user registered",
		"email", email,
		"user_id", savedUser.ID)

	return savedUser, nil
}

// Login matches name and email against a registered user and reissues its
// session token.
func (s *User) Login(ctx context.Context, name, email string) (model.User, error) {
	s.logger.Debug("User service: logging user in",
		"email", email)

	if err := validateIdentity(name, email); err != nil {
		return model.User{}, err
	}

	user, err := s.userStore.GetByNameAndEmail(ctx, name, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		s.logger.Error("User service: failed to get user",
			"email", email,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	sessionID := uuid.New()
	if err := s.userStore.UpdateSessionID(ctx, user.ID, sessionID); err != nil {
		s.logger.Error("User service: failed to reissue session",
			"user_id", user.ID,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to reissue session: %w", err)
	}
	user.SessionID = sessionID

	s.logger.Info("User service: user logged in",
		"user_id", user.ID)

	return user, nil
}

// GetBySession resolves a session token to its user. Returns
// model.ErrNotFound when no user carries the token.
func (s *User) GetBySession(ctx context.Context, sessionID uuid.UUID) (model.User, error) {
	user, err := s.userStore.GetBySessionID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by session: %w", err)
	}

	return user, nil
}

// List returns all registered users.
func (s *User) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Delete removes a user; owned meals are cascade-deleted by the store.
func (s *User) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userStore.Delete(ctx, id); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		s.logger.Error("User service: failed to delete user",
			"user_id", id,
			"error", err.Error())
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User service: user deleted",
		"user_id", id)

	return nil
}

func validateIdentity(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return model.NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(email) == "" {
		return model.NewValidationError("email", "must not be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.NewValidationError("email", "must be a valid email address")
	}
	return nil
}
