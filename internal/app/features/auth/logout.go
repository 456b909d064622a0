// internal/app/features/auth/logout.go
package auth

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/gates"
)

// HandleLogout handles POST /auth/logout. Tokens are stateless, so logout is
// an audit event plus a 204; the client discards its token pair.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	societyID := &res.SocietyID
	if res.SocietyID.IsZero() {
		societyID = nil
	}
	h.Audit.Logout(r.Context(), r, res.UserID, societyID)

	w.WriteHeader(http.StatusNoContent)
}
