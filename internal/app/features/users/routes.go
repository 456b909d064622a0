// internal/app/features/users/routes.go
package users

import (
	"github.com/go-chi/chi/v5"

	"github.com/draj-max/society-backend/internal/app/system/auth"
)

// Routes mounts the user endpoints. Everything under /user requires a bearer
// token.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Middleware)

		pr.Get("/me", h.HandleMe)
		pr.Put("/update-profile", h.HandleUpdateProfile)
		pr.Put("/deactive/{id}", h.HandleDeactivate)
		pr.Put("/reactive/{id}", h.HandleReactivate)
		pr.Put("/update/{id}", h.HandleUpdateUser)
		pr.Put("/reset-password", h.HandleResetPassword)
	})

	return r
}
