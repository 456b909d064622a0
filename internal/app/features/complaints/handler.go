// internal/app/features/complaints/handler.go
package complaints

import (
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/complaints"
	"github.com/draj-max/society-backend/internal/app/system/auditlog"
	"github.com/draj-max/society-backend/internal/app/system/media"
)

// Handler is the shared dependency container for the complaints feature.
type Handler struct {
	Complaints *complaintstore.Store
	Media      *media.Store
	Audit      *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a complaints Handler.
func NewHandler(complaints *complaintstore.Store, mediaStore *media.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Complaints: complaints,
		Media:      mediaStore,
		Audit:      audit,
		Log:        logger,
	}
}
