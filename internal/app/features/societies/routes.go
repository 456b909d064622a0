// internal/app/features/societies/routes.go
package societies

import (
	"github.com/go-chi/chi/v5"

	"github.com/draj-max/society-backend/internal/app/system/auth"
)

// Routes mounts the society endpoints. Everything under /society requires a
// bearer token; role checks happen per handler.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Middleware)

		pr.Get("/all-societies", h.HandleListSocieties)
		pr.Get("/society/{id}", h.HandleGetSociety)
		pr.Post("/create-society", h.HandleCreateSociety)
		pr.Put("/update-society/{id}", h.HandleUpdateSociety)
		pr.Delete("/delete-society/{id}", h.HandleDeleteSociety)

		pr.Post("/add-member", h.HandleAddMember)
		pr.Post("/remove-member", h.HandleRemoveMember)
		pr.Get("/members", h.HandleListMembers)
	})

	return r
}
