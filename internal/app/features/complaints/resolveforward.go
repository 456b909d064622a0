// internal/app/features/complaints/resolveforward.go
package complaints

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/policy/complaintpolicy"
	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/store/complaints"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type reviewComplaintRequest struct {
	ComplaintID string `json:"complaintId" validate:"required,len=24"`
	Status      string `json:"status" validate:"required,oneof=forwarded resolved"`
}

// HandleReviewComplaint handles PUT /complain/resolve-forward-complaint.
// The society admin moves a raised complaint to resolved or forwarded; a
// complaint that already left the raised state stays where it is and the
// response names its current status.
func (h *Handler) HandleReviewComplaint(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireRole(w, r, "Unauthorized to access this resource", models.RoleSocietyAdmin)
	if !res.OK {
		return
	}

	var req reviewComplaintRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	id, err := primitive.ObjectIDFromHex(req.ComplaintID)
	if err != nil {
		respond.BadRequest(w, "Invalid complaint ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	complaint, err := h.Complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "No complaints found.")
			return
		}
		h.Log.Error("complaint lookup failed", zap.Error(err))
		respond.Internal(w, "Could not load complaint.")
		return
	}

	if !complaintpolicy.CanReview(r, complaint) {
		respond.Forbidden(w, "Unauthorized to access this resource")
		return
	}
	if complaint.Status != models.ComplaintRaised {
		respond.BadRequest(w, fmt.Sprintf("Complaint is not in raised status. Current status: %s", complaint.Status))
		return
	}

	updated, err := h.Complaints.Transition(ctx, id, req.Status)
	if err != nil {
		if errors.Is(err, complaintstore.ErrWrongStatus) {
			current, gerr := h.Complaints.GetByID(ctx, id)
			status := "reviewed"
			if gerr == nil {
				status = current.Status
			}
			respond.BadRequest(w, fmt.Sprintf("Complaint is not in raised status. Current status: %s", status))
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "No complaints found.")
			return
		}
		h.Log.Error("complaint transition failed", zap.Error(err))
		respond.Internal(w, "Could not update complaint.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventComplaintReviewed, res.UserID, &updated.MemberID, &updated.SocietyID, map[string]string{
		"decision": req.Status,
	})

	respond.OK(w, fmt.Sprintf("Complaint %s successfully.", req.Status), updated)
}
