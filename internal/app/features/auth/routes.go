// internal/app/features/auth/routes.go
package auth

import (
	"github.com/go-chi/chi/v5"

	"github.com/draj-max/society-backend/internal/app/system/auth"
)

// Routes mounts the auth endpoints. Login, register, and refresh are public;
// logout requires a bearer token.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	// unauthenticated / public routes
	r.Post("/login", h.HandleLogin)
	r.Post("/register", h.HandleRegister)
	r.Post("/refresh-token", h.HandleRefresh)

	// authenticated / private routes
	r.Group(func(pr chi.Router) {
		pr.Use(authn.Middleware)
		pr.Post("/logout", h.HandleLogout)
	})

	return r
}
