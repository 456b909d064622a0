// internal/app/features/bills/pay.go
package bills

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/policy/billpolicy"
	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/store/bills"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/media"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// proofField is the multipart field carrying the payment proof image.
const proofField = "proofImage"

// HandlePayBill handles PUT /bill/pay. A member submits a payment proof
// image for one of their own unpaid bills; the bill moves to pending and
// waits for the admin's approve/reject decision.
//
// The unpaid -> pending transition is a conditional update, so a concurrent
// double submit loses the race and is answered with the bill's actual state.
func (h *Handler) HandlePayBill(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireRole(w, r, "Only members are allowed to pay bills", models.RoleMember)
	if !res.OK {
		return
	}

	if err := r.ParseMultipartForm(media.DefaultMaxBytes + 1<<20); err != nil {
		respond.BadRequest(w, "Malformed multipart body")
		return
	}

	rawID := r.FormValue("id")
	if rawID == "" {
		respond.BadRequest(w, "Bill ID is required")
		return
	}
	billID, err := primitive.ObjectIDFromHex(rawID)
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

	if !billpolicy.CanPay(r, bill) {
		respond.Forbidden(w, "You are not authorized to pay this bill")
		return
	}

	switch bill.Status {
	case models.BillPaid:
		respond.Conflict(w, "This bill is already paid")
		return
	case models.BillPending:
		respond.Conflict(w, "This bill is already pending for approval")
		return
	}

	file, fh, err := r.FormFile(proofField)
	if err != nil {
		respond.BadRequest(w, "Payment proof image is required.")
		return
	}
	file.Close()

	proofURL, err := h.Media.SaveImage(fh)
	if err != nil {
		switch {
		case errors.Is(err, media.ErrNotImage):
			respond.BadRequest(w, "Only JPEG, PNG, JPG, WEBP, and GIF files are allowed")
		case errors.Is(err, media.ErrTooLarge):
			respond.BadRequest(w, "Payment proof image must be 5 MB or smaller.")
		default:
			h.Log.Error("proof image save failed", zap.Error(err))
			respond.Internal(w, "Could not store payment proof.")
		}
		return
	}

	updated, err := h.Bills.SubmitPayment(ctx, billID, res.UserID, proofURL)
	if err != nil {
		if errors.Is(err, billstore.ErrWrongStatus) {
			// lost a race: report the state the bill actually reached
			current, gerr := h.Bills.GetByID(ctx, billID)
			if gerr == nil && current.Status == models.BillPaid {
				respond.Conflict(w, "This bill is already paid")
				return
			}
			respond.Conflict(w, "This bill is already pending for approval")
			return
		}
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Bill not found")
			return
		}
		h.Log.Error("payment submit failed", zap.Error(err))
		respond.Internal(w, "Could not submit payment.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventBillPaymentSubmitted, res.UserID, &updated.MemberID, &updated.SocietyID, map[string]string{
		"proof_url": proofURL,
	})

	respond.OK(w, "Payment proof uploaded. Awaiting admin approval.", updated)
}
