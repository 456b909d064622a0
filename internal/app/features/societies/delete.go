// internal/app/features/societies/delete.go
package societies

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/policy/societypolicy"
	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
)

// HandleDeleteSociety handles DELETE /society/delete-society/{id}. Allowed
// for the superAdmin and the society's own admin.
//
// Deletion cascades: member accounts, bills, and complaints scoped to the
// society are removed, and the admin account is demoted back to an
// unassigned member. There is no cross-collection transaction here; the
// society record itself goes last, so a partial failure leaves the society
// discoverable and the delete retryable.
func (h *Handler) HandleDeleteSociety(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid Society ID provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	soc, err := h.Societies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "Society not found.")
			return
		}
		h.Log.Error("society lookup failed", zap.Error(err))
		respond.Internal(w, "Could not load society.")
		return
	}

	if !societypolicy.CanManage(r, soc) {
		respond.Forbidden(w, "Unauthorized to access this resource")
		return
	}

	if _, err := h.Bills.DeleteBySociety(ctx, id); err != nil {
		h.Log.Error("bill cascade failed", zap.String("society_id", id.Hex()), zap.Error(err))
		respond.Internal(w, "Could not delete society.")
		return
	}
	if _, err := h.Complaints.DeleteBySociety(ctx, id); err != nil {
		h.Log.Error("complaint cascade failed", zap.String("society_id", id.Hex()), zap.Error(err))
		respond.Internal(w, "Could not delete society.")
		return
	}

	// demote the admin before the member sweep so their account survives
	if err := h.Users.DemoteToMember(ctx, soc.AdminID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		h.Log.Error("admin demotion failed", zap.String("society_id", id.Hex()), zap.Error(err))
		respond.Internal(w, "Could not delete society.")
		return
	}
	if _, err := h.Users.DeleteBySociety(ctx, id); err != nil {
		h.Log.Error("member cascade failed", zap.String("society_id", id.Hex()), zap.Error(err))
		respond.Internal(w, "Could not delete society.")
		return
	}

	deleted, err := h.Societies.Delete(ctx, id)
	if err != nil {
		h.Log.Error("society delete failed", zap.Error(err))
		respond.Internal(w, "Could not delete society.")
		return
	}
	if deleted == 0 {
		respond.NotFound(w, "Society not found.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventSocietyDeleted, res.UserID, nil, &id, map[string]string{
		"registration_number": soc.RegistrationNumber,
	})
	respond.OK(w, "Society deleted successfully", nil)
}
