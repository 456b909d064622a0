// internal/app/features/users/me.go
package users

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/app/system/respond"
)

// HandleMe handles GET /user/me. The bearer middleware already loaded a
// fresh user record, so this is a context read.
func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		respond.Unauthorized(w, "Unauthorized")
		return
	}
	respond.OK(w, "Profile retrieved successfully.", u)
}
