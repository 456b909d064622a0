// internal/app/features/bills/list.go
package bills

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// HandleListSocietyBills handles GET /bill/all-bills. Returns every bill of
// the admin's society, newest first.
func (h *Handler) HandleListSocietyBills(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	bills, err := h.Bills.ListBySociety(ctx, res.SocietyID)
	if err != nil {
		h.Log.Error("bill list failed", zap.Error(err))
		respond.Internal(w, "Could not list bills.")
		return
	}

	respond.OK(w, "Bills retrieved successfully.", bills)
}

// HandleListMemberBills handles GET /bill/member-bills?id=...&status=...
// Without an id a member sees their own bills. A society admin may pass the
// id of one of their members; a member may only pass their own id.
func (h *Handler) HandleListMemberBills(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidBillStatus(status) {
		respond.BadRequest(w, "Invalid status")
		return
	}

	target := res.UserID
	if idParam := r.URL.Query().Get("id"); idParam != "" {
		oid, err := primitive.ObjectIDFromHex(idParam)
		if err != nil {
			respond.BadRequest(w, "Invalid user ID provided")
			return
		}
		target = oid
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	switch res.Role {
	case models.RoleMember:
		if target != res.UserID {
			respond.Forbidden(w, "Members can only view their own bills.")
			return
		}
	case models.RoleSocietyAdmin:
		if target != res.UserID {
			if _, err := h.Users.GetMemberOfSociety(ctx, target, res.SocietyID); err != nil {
				if errors.Is(err, mongo.ErrNoDocuments) {
					respond.Forbidden(w, "You cannot access bills of another society.")
					return
				}
				h.Log.Error("member lookup failed", zap.Error(err))
				respond.Internal(w, "Could not list bills.")
				return
			}
		}
	default:
		respond.Forbidden(w, "Unauthorized role access.")
		return
	}

	bills, err := h.Bills.ListByMember(ctx, target, status)
	if err != nil {
		h.Log.Error("member bill list failed", zap.Error(err))
		respond.Internal(w, "Could not list bills.")
		return
	}
	if len(bills) == 0 {
		respond.NotFound(w, "No bills found for this member.")
		return
	}

	respond.OK(w, "Bills retrieved successfully", bills)
}
