// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

type loginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Username string `json:"username" validate:"omitempty"`
	Password string `json:"password"`
}

// HandleLogin handles POST /auth/login. The client supplies an email or a
// username plus a password; a successful login returns the user summary with
// a fresh access/refresh token pair.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	identifier := req.Email
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" || req.Password == "" {
		respond.BadRequest(w, "email or username and password are required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.GetByIdentifierWithPassword(ctx, identifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.Audit.LoginFailedUserNotFound(ctx, r, identifier)
			respond.NotFound(w, "User not found with the givem email or username.")
			return
		}
		h.Log.Error("login lookup failed", zap.Error(err))
		respond.Internal(w, "Could not process login.")
		return
	}

	if !u.IsActive {
		h.Audit.LoginFailedUserDisabled(ctx, r, u.ID, u.SocietyID, identifier)
		respond.Unauthorized(w, "User not found or deactived")
		return
	}

	if err := userstore.CheckPassword(u.Password, req.Password); err != nil {
		h.Audit.LoginFailedWrongPassword(ctx, r, u.ID, u.SocietyID, identifier)
		respond.BadRequest(w, "Incorrect password.")
		return
	}

	accessToken, err := h.Tokens.IssueAccess(u.ID.Hex())
	if err != nil {
		h.Log.Error("access token issue failed", zap.Error(err))
		respond.Internal(w, "Could not process login.")
		return
	}
	refreshToken, err := h.Tokens.IssueRefresh(u.ID.Hex())
	if err != nil {
		h.Log.Error("refresh token issue failed", zap.Error(err))
		respond.Internal(w, "Could not process login.")
		return
	}

	h.Audit.LoginSuccess(ctx, r, u.ID, u.SocietyID, identifier)

	respond.OK(w, "You are loggedin successfully.", map[string]any{
		"user": userSummary{
			ID:       u.ID.Hex(),
			Username: u.Username,
			Email:    u.Email,
		},
		"accessToken":  accessToken,
		"refreshToken": refreshToken,
	})
}
