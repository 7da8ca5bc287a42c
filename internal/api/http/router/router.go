package router

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/pviana/daily-diet-server/internal/api/http/handler"
	"github.com/pviana/daily-diet-server/internal/api/http/middleware"
	"github.com/pviana/daily-diet-server/internal/logger"
	"github.com/pviana/daily-diet-server/internal/model"
	"github.com/pviana/daily-diet-server/internal/service"
)

// Router wires handlers and middleware into the HTTP route table.
type Router struct {
	userHandler  *handler.User
	mealHandler  *handler.Meal
	authenticate *middleware.Authenticate
	logging      *middleware.Logging
}

// New creates a new Router instance over the given services.
func New(
	userService *service.User,
	mealService *service.Meal,
	contextManager model.ContextManager,
	logger *logger.Logger,
) *Router {
	return &Router{
		userHandler:  handler.NewUser(userService, contextManager, logger),
		mealHandler:  handler.NewMeal(mealService, contextManager, logger),
		authenticate: middleware.NewAuthenticate(userService, contextManager, logger),
		logging:      middleware.NewLogging(logger),
	}
}

// Register builds the route table. Aggregate meal paths are registered
// before the {id} pattern so they are matched first.
func (r *Router) Register() *mux.Router {
	root := mux.NewRouter()
	root.Use(r.logging.Handle)

	authed := func(h http.HandlerFunc) http.Handler {
		return r.authenticate.Handle(h)
	}

	root.HandleFunc("/user", r.userHandler.Register).Methods(http.MethodPost)
	root.HandleFunc("/user", r.userHandler.List).Methods(http.MethodGet)
	root.Handle("/user", authed(r.userHandler.Delete)).Methods(http.MethodDelete)
	root.HandleFunc("/user/{sessionId}", r.userHandler.GetBySession).Methods(http.MethodGet)

	root.HandleFunc("/login", r.userHandler.Login).Methods(http.MethodPost)
	root.HandleFunc("/logout", r.userHandler.Logout).Methods(http.MethodPost)

	root.Handle("/meal", authed(r.mealHandler.Create)).Methods(http.MethodPost)
	root.Handle("/meal", authed(r.mealHandler.List)).Methods(http.MethodGet)

	root.Handle("/meal/amount-meals", authed(r.mealHandler.Amount)).Methods(http.MethodGet)
	root.Handle("/meal/in-diet", authed(r.mealHandler.InDiet)).Methods(http.MethodGet)
	root.Handle("/meal/out-diet", authed(r.mealHandler.OutDiet)).Methods(http.MethodGet)
	root.Handle("/meal/sequence-diet", authed(r.mealHandler.SequenceDiet)).Methods(http.MethodGet)

	root.HandleFunc("/meal/{id}", r.mealHandler.Get).Methods(http.MethodGet)
	root.Handle("/meal/{id}", authed(r.mealHandler.Update)).Methods(http.MethodPut)
	root.Handle("/meal/{id}", authed(r.mealHandler.PartialUpdate)).Methods(http.MethodPatch)
	root.Handle("/meal/{id}", authed(r.mealHandler.Delete)).Methods(http.MethodDelete)

	return root
}
