// internal/app/features/auth/refresh.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// HandleRefresh handles POST /auth/refresh-token. A valid refresh token
// yields a new access token and a rotated refresh token; the old refresh
// token is not tracked server-side, so clients must discard it.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		respond.BadRequest(w, "Refresh token is required.")
		return
	}

	userID, err := h.Tokens.Verify(req.RefreshToken, auth.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrTokenExpired) {
			respond.Unauthorized(w, "Refresh token expired.")
			return
		}
		respond.Unauthorized(w, "Invalid refresh token.")
		return
	}

	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		respond.Unauthorized(w, "Invalid refresh token.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByID(ctx, oid)
	if err != nil {
		h.Log.Error("refresh user load failed", zap.Error(err))
		respond.Internal(w, "Could not refresh token.")
		return
	}
	if u == nil {
		respond.NotFound(w, "User not found.")
		return
	}
	if !u.IsActive {
		respond.Unauthorized(w, "User not found or deactived")
		return
	}

	accessToken, err := h.Tokens.IssueAccess(u.ID.Hex())
	if err != nil {
		h.Log.Error("access token issue failed", zap.Error(err))
		respond.Internal(w, "Could not refresh token.")
		return
	}
	newRefreshToken, err := h.Tokens.IssueRefresh(u.ID.Hex())
	if err != nil {
		h.Log.Error("refresh token issue failed", zap.Error(err))
		respond.Internal(w, "Could not refresh token.")
		return
	}

	h.Audit.TokenRefreshed(ctx, r, u.ID)

	respond.OK(w, "Your token is refreshed successfully.", map[string]any{
		"user": userSummary{
			ID:       u.ID.Hex(),
			Username: u.Username,
			Email:    u.Email,
		},
		"accessToken":     accessToken,
		"newRefreshToken": newRefreshToken,
	})
}
