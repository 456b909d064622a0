// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=15"`
}

// HandleRegister handles POST /auth/register. Self-registration always
// creates an unassigned member; society and role assignment happen through
// the society endpoints.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Username: req.Username,
		Email:    req.Email,
		Phone:    req.Phone,
		Role:     models.RoleMember,
	}, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, userstore.ErrDuplicateEmail):
			respond.Conflict(w, "Email already exists.")
		case errors.Is(err, userstore.ErrDuplicateUsername):
			respond.Conflict(w, "Username already exists.")
		default:
			h.Log.Error("register failed", zap.Error(err))
			respond.Internal(w, "Could not register user.")
		}
		return
	}

	h.Audit.UserRegistered(ctx, r, u.ID, u.SocietyID)

	respond.Created(w, "User registered successfully.", u)
}
