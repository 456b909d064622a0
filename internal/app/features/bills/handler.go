// internal/app/features/bills/handler.go
package bills

import (
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/bills"
	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/auditlog"
	"github.com/draj-max/society-backend/internal/app/system/media"
)

// Handler is the shared dependency container for the bills feature: bill
// issuance and edits by society admins, payment submission by members, and
// the approve/reject review step.
type Handler struct {
	Users *userstore.Store
	Bills *billstore.Store
	Media *media.Store
	Audit *auditlog.Logger
	Log   *zap.Logger
}

// NewHandler constructs a bills Handler.
func NewHandler(users *userstore.Store, bills *billstore.Store, mediaStore *media.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users: users,
		Bills: bills,
		Media: mediaStore,
		Audit: audit,
		Log:   logger,
	}
}
