// internal/app/features/users/updateprofile.go
package users

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

type updateProfileRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"phone" validate:"omitempty,min=7,max=15"`
}

// HandleUpdateProfile handles PUT /user/update-profile. A user may change
// their own username, email, and phone; role, society, and password changes
// go through their dedicated endpoints.
func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req updateProfileRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}
	if req.Username == nil && req.Email == nil && req.Phone == nil {
		respond.BadRequest(w, "Nothing to update.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	matched, err := h.Users.UpdateFields(ctx, res.UserID, userstore.Update{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			respond.Conflict(w, "Email already exists.")
		case errors.Is(err, userstore.ErrDuplicateUsername):
			respond.Conflict(w, "Username already exists.")
		default:
			h.Log.Error("profile update failed", zap.Error(err))
			respond.Internal(w, "Could not update profile.")
		}
		return
	}
	if matched == 0 {
		respond.NotFound(w, "User not found.")
		return
	}

	u, err := h.Users.GetByID(ctx, res.UserID)
	if err != nil || u == nil {
		respond.OK(w, "Profile updated successfully.", nil)
		return
	}
	respond.OK(w, "Profile updated successfully.", u)
}
