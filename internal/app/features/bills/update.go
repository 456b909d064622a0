// internal/app/features/bills/update.go
package bills

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/policy/billpolicy"
	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/store/bills"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

type updateBillRequest struct {
	Category    *string  `json:"category" validate:"omitempty,oneof=maintenance water electricity others"`
	TotalAmount *float64 `json:"totalAmount" validate:"omitempty,gt=0"`
	DueDate     *string  `json:"dueDate"`
	Status      *string  `json:"status" validate:"omitempty,oneof=unpaid pending paid"`
	PaidAmount  *float64 `json:"paidAmount" validate:"omitempty,gt=0"`
	PaidDate    *string  `json:"paidDate"`
	MemberID    *string  `json:"memberId" validate:"omitempty,len=24"`
}

// HandleUpdateBill handles PUT /bill/update/{id}. A direct field patch
// outside the payment state machine: status, paid amount, paid date, and
// even the owning member are overwritten as given, while amount changes
// re-derive the pending amount.
func (h *Handler) HandleUpdateBill(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid bill ID provided")
		return
	}

	var req updateBillRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := parseDueDate(*req.DueDate)
		if err != nil {
			respond.BadRequest(w, "Invalid due date")
			return
		}
		utc := parsed.UTC()
		dueDate = &utc
	}
	var paidDate *time.Time
	if req.PaidDate != nil {
		parsed, err := parseDueDate(*req.PaidDate)
		if err != nil {
			respond.BadRequest(w, "Invalid paid date")
			return
		}
		utc := parsed.UTC()
		paidDate = &utc
	}
	var memberID *primitive.ObjectID
	if req.MemberID != nil {
		oid, err := primitive.ObjectIDFromHex(*req.MemberID)
		if err != nil {
			respond.BadRequest(w, "Invalid member ID provided")
			return
		}
		memberID = &oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bill, err := h.Bills.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "No bill found for this id.")
			return
		}
		h.Log.Error("bill lookup failed", zap.Error(err))
		respond.Internal(w, "Could not load bill.")
		return
	}

	if !billpolicy.CanManage(r, bill) {
		respond.Forbidden(w, "This bill is not found under your society members.")
		return
	}

	if _, err := h.Bills.UpdateFields(ctx, id, billstore.Update{
		Category:    req.Category,
		TotalAmount: req.TotalAmount,
		DueDate:     dueDate,
		Status:      req.Status,
		PaidAmount:  req.PaidAmount,
		PaidDate:    paidDate,
		MemberID:    memberID,
	}); err != nil {
		h.Log.Error("bill update failed", zap.Error(err))
		respond.Internal(w, "Could not update bill.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventBillUpdated, res.UserID, &bill.MemberID, &bill.SocietyID, nil)

	updated, err := h.Bills.GetByID(ctx, id)
	if err != nil {
		respond.OK(w, "Bill updated successfully.", nil)
		return
	}
	respond.OK(w, "Bill updated successfully.", updated)
}
