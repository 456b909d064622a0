// internal/app/features/bills/approvereject.go
package bills

import (
	"context"
	"errors"
	"fmt"
	"net/http"

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
	"github.com/draj-max/society-backend/internal/domain/models"
)

type approveRejectRequest struct {
	BillID string  `json:"id" validate:"required,len=24"`
	Status string  `json:"status" validate:"required"`
	Amount float64 `json:"amount" validate:"omitempty,gt=0"`
}

// HandleApproveReject handles PUT /bill/approve-reject. The society admin
// settles a pending payment: status "paid" approves it, status "unpaid"
// rejects it and reopens the bill. The reviewed amount is recorded either
// way, so a rejected partial payment stays visible on the record.
func (h *Handler) HandleApproveReject(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireRole(w, r, "Only admin society are allowed to approve bills", models.RoleSocietyAdmin)
	if !res.OK {
		return
	}

	var req approveRejectRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	if req.Status != models.BillPaid && req.Status != models.BillUnpaid {
		respond.BadRequest(w, "Invalid status")
		return
	}
	billID, err := primitive.ObjectIDFromHex(req.BillID)
	if err != nil {
		respond.BadRequest(w, "Invalid bill ID provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bill, err := h.Bills.GetByID(ctx, billID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Bill not found")
			return
		}
		h.Log.Error("bill lookup failed", zap.Error(err))
		respond.Internal(w, "Could not load bill.")
		return
	}

	if !billpolicy.CanManage(r, bill) {
		respond.Forbidden(w, "You are not authorized to approve this bill")
		return
	}
	if bill.Status != models.BillPending {
		respond.BadRequest(w, fmt.Sprintf("This bill is already %s", bill.Status))
		return
	}
	if req.Amount > bill.TotalAmount {
		respond.BadRequest(w, "Amount is greater than total amount")
		return
	}

	updated, err := h.Bills.Settle(ctx, billID, req.Status, req.Amount)
	if err != nil {
		if errors.Is(err, billstore.ErrWrongStatus) {
			current, gerr := h.Bills.GetByID(ctx, billID)
			status := "settled"
			if gerr == nil {
				status = current.Status
			}
			respond.BadRequest(w, fmt.Sprintf("This bill is already %s", status))
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Bill not found")
			return
		}
		h.Log.Error("bill settle failed", zap.Error(err))
		respond.Internal(w, "Could not settle bill.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventBillPaymentReviewed, res.UserID, &updated.MemberID, &updated.SocietyID, map[string]string{
		"decision": req.Status,
	})

	respond.OK(w, fmt.Sprintf("Bill payment %s successfully.", req.Status), updated)
}
