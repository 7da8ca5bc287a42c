package middleware

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/pviana/daily-diet-server/internal/api/http/httputil"
	"github.com/pviana/daily-diet-server/internal/api/http/session"
	"github.com/pviana/daily-diet-server/internal/logger"
	"github.com/pviana/daily-diet-server/internal/model"
)

// SessionResolver maps session tokens to users.
type SessionResolver interface {
	GetBySession(ctx context.Context, sessionID uuid.UUID) (model.User, error)
}

// Authenticate resolves the session cookie and injects the owning user ID
// into the request context.
type Authenticate struct {
	sessions       SessionResolver
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(sessions SessionResolver, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{
		sessions:       sessions,
		contextManager: contextManager,
		logger:         logger,
	}
}

// Handle wraps next with session resolution. A request without a cookie
// is unauthenticated; a token no user carries is not found.
func (m *Authenticate) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(session.CookieName)
		if err != nil || cookie.Value == "" {
			httputil.HandleError(w, model.ErrUnauthenticated)
			return
		}

		sessionID, err := uuid.Parse(cookie.Value)
		if err != nil {
			// a malformed token cannot belong to any user
			httputil.HandleError(w, model.ErrNotFound)
			return
		}

		user, err := m.sessions.GetBySession(r.Context(), sessionID)
		if err != nil {
			m.logger.Info("Authenticate middleware: session resolution failed",
				"error", err.Error())
			httputil.HandleError(w, err)
			return
		}

		ctx := m.contextManager.SetUserIDToContext(r.Context(), user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
