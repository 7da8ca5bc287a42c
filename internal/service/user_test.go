package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pviana/daily-diet-server/internal/model"
	"github.com/pviana/daily-diet-server/internal/testutil"
)

// MockUserStore mocks the UserStore interface
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetByNameAndEmail(ctx context.Context, name, email string) (model.User, error) {
	args := m.Called(ctx, name, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) GetBySessionID(ctx context.Context, sessionID uuid.UUID) (model.User, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserStore) UpdateSessionID(ctx context.Context, id, sessionID uuid.UUID) error {
	args := m.Called(ctx, id, sessionID)
	return args.Error(0)
}

func (m *MockUserStore) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func TestUser_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with fresh session", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByEmail", ctx, "test@test.com").Return(model.User{}, model.ErrNotFound)
		store.On("Create", ctx, mock.MatchedBy(func(u model.User) bool {
			return u.Name == "test" && u.Email == "test@test.com" &&
				u.ID != uuid.Nil && u.SessionID != uuid.Nil
		})).Return(model.User{ID: uuid.New(), Name: "test", Email: "test@test.com", SessionID: uuid.New()}, nil)

		svc := NewUser(store, testutil.MakeNoopLogger())
		user, err := svc.Register(ctx, "test", "test@test.com")
		require.NoError(t, err)
		assert.Equal(t, "test@test.com", user.Email)
		store.AssertExpectations(t)
	})

	t.Run("rejects duplicate email without inserting", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByEmail", ctx, "test@test.com").
			Return(model.User{ID: uuid.New(), Email: "test@test.com"}, nil)

		svc := NewUser(store, testutil.MakeNoopLogger())
		_, err := svc.Register(ctx, "test", "test@test.com")
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
		store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		store := &MockUserStore{}
		svc := NewUser(store, testutil.MakeNoopLogger())

		_, err := svc.Register(ctx, "   ", "test@test.com")
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "name", vErr.Field)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		store := &MockUserStore{}
		svc := NewUser(store, testutil.MakeNoopLogger())

		_, err := svc.Register(ctx, "test", "not-an-email")
		var vErr *model.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Equal(t, "email", vErr.Field)
	})
}

func TestUser_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("reissues session token", func(t *testing.T) {
		userID := uuid.New()
		oldSession := uuid.New()
		store := &MockUserStore{}
		store.On("GetByNameAndEmail", ctx, "test", "test@test.com").
			Return(model.User{ID: userID, Name: "test", Email: "test@test.com", SessionID: oldSession}, nil)
		store.On("UpdateSessionID", ctx, userID, mock.MatchedBy(func(id uuid.UUID) bool {
			return id != uuid.Nil && id != oldSession
		})).Return(nil)

		svc := NewUser(store, testutil.MakeNoopLogger())
		user, err := svc.Login(ctx, "test", "test@test.com")
		require.NoError(t, err)
		assert.NotEqual(t, oldSession, user.SessionID)
		store.AssertExpectations(t)
	})

	t.Run("unknown user", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetByNameAndEmail", ctx, "test", "test@test.com").
			Return(model.User{}, model.ErrNotFound)

		svc := NewUser(store, testutil.MakeNoopLogger())
		_, err := svc.Login(ctx, "test", "test@test.com")
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUser_GetBySession(t *testing.T) {
	ctx := context.Background()
	sessionID := uuid.New()

	t.Run("resolves user", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetBySessionID", ctx, sessionID).
			Return(model.User{ID: uuid.New(), SessionID: sessionID}, nil)

		svc := NewUser(store, testutil.MakeNoopLogger())
		user, err := svc.GetBySession(ctx, sessionID)
		require.NoError(t, err)
		assert.Equal(t, sessionID, user.SessionID)
	})

	t.Run("unknown session", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("GetBySessionID", ctx, sessionID).
			Return(model.User{}, model.ErrNotFound)

		svc := NewUser(store, testutil.MakeNoopLogger())
		_, err := svc.GetBySession(ctx, sessionID)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestUser_Delete(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("deletes user", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("Delete", ctx, userID).Return(nil)

		svc := NewUser(store, testutil.MakeNoopLogger())
		require.NoError(t, svc.Delete(ctx, userID))
	})

	t.Run("storage fault is wrapped", func(t *testing.T) {
		store := &MockUserStore{}
		store.On("Delete", ctx, userID).Return(errors.New("connection reset"))

		svc := NewUser(store, testutil.MakeNoopLogger())
		err := svc.Delete(ctx, userID)
		require.Error(t, err)
		assert.NotErrorIs(t, err, model.ErrNotFound)
	})
}
