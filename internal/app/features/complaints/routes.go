// internal/app/features/complaints/routes.go
package complaints

import (
	"github.com/go-chi/chi/v5"

	"github.com/draj-max/society-backend/internal/app/system/auth"
)

// Routes mounts the complaint endpoints. Everything under /complain requires
// a bearer token.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Middleware)

		pr.Get("/all-complaints", h.HandleListSocietyComplaints)
		pr.Post("/create-complaint", h.HandleCreateComplaint)
		pr.Get("/member-complaints", h.HandleListMemberComplaints)
		pr.Put("/resolve-forward-complaint", h.HandleReviewComplaint)
	})

	return r
}
