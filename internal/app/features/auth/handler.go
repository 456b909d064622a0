// internal/app/features/auth/handler.go
package auth

import (
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/auditlog"
	"github.com/draj-max/society-backend/internal/app/system/auth"
)

// Handler is the shared dependency container for the auth feature: login,
// register, token refresh, and logout.
type Handler struct {
	Users  *userstore.Store
	Tokens *auth.TokenManager
	Audit  *auditlog.Logger
	Log    *zap.Logger
}

// NewHandler constructs an auth Handler. It is called from the bootstrap
// BuildHandler function, where the stores and token manager are already
// initialized.
func NewHandler(users *userstore.Store, tokens *auth.TokenManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  users,
		Tokens: tokens,
		Audit:  audit,
		Log:    logger,
	}
}

// userSummary is the trimmed user shape returned with token pairs.
type userSummary struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
