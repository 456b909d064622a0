// internal/app/features/users/update.go
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
	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,min=7,max=15"`
	RoomNo   *int    `json:"roomNo" validate:"omitempty,gt=0"`
	ChawlNo  *string `json:"chawlNo" validate:"omitempty,min=1"`
	IsOwner  *bool   `json:"isOwner"`
	Role     *string `json:"role" validate:"omitempty,oneof=member"`
}

// HandleUpdateUser handles PUT /user/update/{id}. A society admin may edit
// members of their own society. The role field only accepts "member": admin
// roles are never assignable through this endpoint, so an admin cannot
// escalate a member to societyAdmin or superAdmin.
func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid user ID provided")
		return
	}

	var req updateUserRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	// only members of the caller's society are editable; this also keeps
	// superAdmin and other societies' users out of reach
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

	_, err = h.Users.UpdateFields(ctx, member.ID, userstore.Update{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		RoomNo:   req.RoomNo,
		ChawlNo:  req.ChawlNo,
		IsOwner:  req.IsOwner,
		Role:     req.Role,
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			respond.Conflict(w, "Email already exists.")
		case errors.Is(err, userstore.ErrDuplicateUsername):
			respond.Conflict(w, "Username already exists.")
		default:
			h.Log.Error("user update failed", zap.Error(err))
			respond.Internal(w, "Could not update user.")
		}
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventUserUpdated, res.UserID, &member.ID, &res.SocietyID, nil)

	updated, err := h.Users.GetByID(ctx, member.ID)
	if err != nil || updated == nil {
		respond.OK(w, "User updated successfully.", nil)
		return
	}
	respond.OK(w, "User updated successfully.", updated)
}
