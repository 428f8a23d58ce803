package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Entity route families (sponsors, caterings, categories, locations,
// resources, prelegents) are registered per controller under the
// controller's plural path segment.
func NewRouter(
	logger *slog.Logger,
	verifier domain.TokenVerifier,
	entityControllers []*controllers.EntityController,
	eventController *controllers.EventController,
	authController *controllers.AuthController,
	ticketController *controllers.TicketController,
) *http.ServeMux {
	mux := http.NewServeMux()

	withAuth := middleware.RequireAuth(verifier, logger)
	adminOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return withAuth(middleware.RequireRole(domain.RoleAdmin)(next))
	}
	memberOnly := func(next http.HandlerFunc) http.HandlerFunc {
		return withAuth(middleware.RequireRole(domain.RoleMember)(next))
	}

	// Entity CRUD, one family per kind
	for _, c := range entityControllers {
		base := "/" + c.Kind().Plural
		mux.HandleFunc("GET "+base, c.List)
		mux.HandleFunc("GET "+base+"/{id}", c.Get)
		mux.HandleFunc("POST "+base, adminOnly(c.Create))
		mux.HandleFunc("PUT "+base+"/{id}", adminOnly(c.Update))
		mux.HandleFunc("DELETE "+base+"/{id}", adminOnly(c.Delete))
	}

	// Events
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/{id}", eventController.Get)
	mux.HandleFunc("POST /events", adminOnly(eventController.Create))
	mux.HandleFunc("PUT /events/{id}", adminOnly(eventController.Update))
	mux.HandleFunc("DELETE /events/{id}", adminOnly(eventController.Delete))
	mux.HandleFunc("PUT /events/{id}/associations", adminOnly(eventController.SetAssociations))
	mux.HandleFunc("GET /prelegents/{id}/events", eventController.ListByPrelegent)

	// Tickets
	mux.HandleFunc("POST /events/{id}/tickets", memberOnly(ticketController.Register))
	mux.HandleFunc("GET /users/me/tickets", withAuth(ticketController.ListMine))
	mux.HandleFunc("DELETE /tickets/{id}", withAuth(ticketController.Cancel))

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("GET /users/me", withAuth(authController.GetMe))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
