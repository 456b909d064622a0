// internal/app/features/users/handler.go
package users

import (
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/auditlog"
)

// Handler is the shared dependency container for the users feature: profile
// reads, profile updates, activation toggles, admin edits, and password
// resets.
type Handler struct {
	Users *userstore.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a users Handler.
func NewHandler(users *userstore.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users: users,
		Audit: audit,
		Log:   logger,
	}
}
