// internal/app/features/bills/routes.go
package bills

import (
	"github.com/go-chi/chi/v5"

	"github.com/draj-max/society-backend/internal/app/system/auth"
)

// Routes mounts the bill endpoints. Everything under /bill requires a bearer
// token.
func Routes(h *Handler, authn *auth.Authenticator) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(authn.Middleware)

		pr.Post("/create", h.HandleCreateBill)
		pr.Get("/all-bills", h.HandleListSocietyBills)
		pr.Get("/member-bills", h.HandleListMemberBills)
		pr.Put("/update/{id}", h.HandleUpdateBill)
		pr.Put("/pay", h.HandlePayBill)
		pr.Put("/approve-reject", h.HandleApproveReject)
	})

	return r
}
