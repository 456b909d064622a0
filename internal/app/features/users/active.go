// internal/app/features/users/active.go
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

// HandleDeactivate handles PUT /user/deactive/{id}. A society admin may
// deactivate members of their own society; a deactivated member keeps their
// records but can no longer authenticate.
func (h *Handler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	h.setMemberActive(w, r, false)
}

// HandleReactivate handles PUT /user/reactive/{id}.
func (h *Handler) HandleReactivate(w http.ResponseWriter, r *http.Request) {
	h.setMemberActive(w, r, true)
}

func (h *Handler) setMemberActive(w http.ResponseWriter, r *http.Request, active bool) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user ID provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	member, err := h.Users.GetMemberOfSociety(ctx, id, res.SocietyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "No member found for this id under your society.")
			return
		}
		h.Log.Error("member lookup failed", zap.Error(err))
		respond.Internal(w, "Could not load member.")
		return
	}

	if _, err := h.Users.SetActive(ctx, member.ID, active); err != nil {
		h.Log.Error("set active failed", zap.Error(err))
		respond.Internal(w, "Could not update member.")
		return
	}

	event := audit.EventUserDeactivated
	msg := "User deactivated successfully."
	if active {
		event = audit.EventUserReactivated
		msg = "User reactivated successfully."
	}
	h.Audit.AdminAction(ctx, r, event, res.UserID, &member.ID, &res.SocietyID, nil)

	updated, err := h.Users.GetByID(ctx, member.ID)
	if err != nil || updated == nil {
		respond.OK(w, msg, nil)
		return
	}
	respond.OK(w, msg, updated)
}
