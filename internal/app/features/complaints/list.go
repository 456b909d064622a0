// internal/app/features/complaints/list.go
package complaints

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// HandleListSocietyComplaints handles GET /complain/all-complaints with an
// optional ?status= filter. Society admin only.
func (h *Handler) HandleListSocietyComplaints(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidComplaintStatus(status) {
		respond.BadRequest(w, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	complaints, err := h.Complaints.ListBySociety(ctx, res.SocietyID, status)
	if err != nil {
		h.Log.Error("complaint list failed", zap.Error(err))
		respond.Internal(w, "Could not list complaints.")
		return
	}
	if len(complaints) == 0 {
		respond.NotFound(w, "No complaints found.")
		return
	}

	respond.OK(w, "Complaints retrieved successfully.", complaints)
}

// HandleListMemberComplaints handles GET /complain/member-complaints with an
// optional ?status= filter. Returns the caller's own complaints.
func (h *Handler) HandleListMemberComplaints(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	if res.SocietyID.IsZero() {
		respond.NotFound(w, "Society or Member not found.")
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidComplaintStatus(status) {
		respond.BadRequest(w, "Invalid status")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	complaints, err := h.Complaints.ListByMember(ctx, res.UserID, status)
	if err != nil {
		h.Log.Error("member complaint list failed", zap.Error(err))
		respond.Internal(w, "Could not list complaints.")
		return
	}
	if len(complaints) == 0 {
		respond.NotFound(w, "No complaints found.")
		return
	}

	respond.OK(w, "Complaints retrieved successfully.", complaints)
}
