// internal/app/features/bills/create.go
package bills

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type createBillRequest struct {
	MemberID    string  `json:"memberId" validate:"required,len=24"`
	Category    string  `json:"category" validate:"required,oneof=maintenance water electricity others"`
	TotalAmount float64 `json:"totalAmount" validate:"required,gt=0"`
	DueDate     string  `json:"dueDate" validate:"required"`
}

// parseDueDate accepts RFC 3339 timestamps and bare dates.
func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

// HandleCreateBill handles POST /bill/create. A society admin raises a bill
// against a member of their own society; the bill always starts unpaid with
// the full amount pending.
func (h *Handler) HandleCreateBill(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	var req createBillRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		respond.BadRequest(w, "Invalid user ID provided")
		return
	}
	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		respond.BadRequest(w, "Invalid due date")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if _, err := h.Users.GetMemberOfSociety(ctx, memberID, res.SocietyID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "No member found for this id under your society.")
			return
		}
		h.Log.Error("member lookup failed", zap.Error(err))
		respond.Internal(w, "Could not create bill.")
		return
	}

	bill, err := h.Bills.Create(ctx, models.Bill{
		MemberID:    memberID,
		SocietyID:   res.SocietyID,
		Category:    req.Category,
		TotalAmount: req.TotalAmount,
		DueDate:     dueDate.UTC(),
	})
	if err != nil {
		h.Log.Error("bill create failed", zap.Error(err))
		respond.Internal(w, "Could not create bill.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventBillCreated, res.UserID, &memberID, &res.SocietyID, map[string]string{
		"category": bill.Category,
	})

	respond.Created(w, "Bill created successfully.", bill)
}
