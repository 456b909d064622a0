// internal/app/features/societies/handler.go
package societies

import (
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/bills"
	"github.com/draj-max/society-backend/internal/app/store/complaints"
	"github.com/draj-max/society-backend/internal/app/store/societies"
	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/auditlog"
)

// Handler is the shared dependency container for the societies feature.
// Society lifecycle touches every other collection: creation provisions an
// admin user, deletion cascades into users, bills, and complaints.
type Handler struct {
	Users      *userstore.Store
	Societies  *societystore.Store
	Bills      *billstore.Store
	Complaints *complaintstore.Store
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a societies Handler.
func NewHandler(
	users *userstore.Store,
	societies *societystore.Store,
	bills *billstore.Store,
	complaints *complaintstore.Store,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Users:      users,
		Societies:  societies,
		Bills:      bills,
		Complaints: complaints,
		Audit:      audit,
		Log:        logger,
	}
}
