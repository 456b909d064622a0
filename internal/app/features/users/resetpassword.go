// internal/app/features/users/resetpassword.go
package users

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type resetPasswordRequest struct {
	UserID      string `json:"userId" validate:"omitempty,len=24"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

// HandleResetPassword handles PUT /user/reset-password. Without a userId the
// caller resets their own password. With a userId the caller must be the
// superAdmin, or a society admin resetting a member of their own society.
func (h *Handler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	var req resetPasswordRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	target := res.UserID
	if req.UserID != "" {
		oid, err := primitive.ObjectIDFromHex(req.UserID)
		if err != nil {
			respond.BadRequest(w, "Invalid user ID provided")
			return
		}
		target = oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if target != res.UserID {
		switch res.Role {
		case models.RoleSuperAdmin:
			// may reset anyone
		case models.RoleSocietyAdmin:
			if res.SocietyID.IsZero() {
				respond.Forbidden(w, "Unauthorized to access this resource")
				return
			}
			if _, err := h.Users.GetMemberOfSociety(ctx, target, res.SocietyID); err != nil {
				respond.NotFound(w, "No member found for this id under your society.")
				return
			}
		default:
			respond.Forbidden(w, "Unauthorized to access this resource")
			return
		}
	}

	matched, err := h.Users.SetPassword(ctx, target, req.NewPassword)
	if err != nil {
		h.Log.Error("password reset failed", zap.Error(err))
		respond.Internal(w, "Could not reset password.")
		return
	}
	if matched == 0 {
		respond.NotFound(w, "User not found.")
		return
	}

	h.Audit.PasswordReset(ctx, r, target)

	respond.OK(w, "Password reset successfully.", nil)
}
