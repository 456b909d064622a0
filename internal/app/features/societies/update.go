// internal/app/features/societies/update.go
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
	"github.com/draj-max/society-backend/internal/app/store/societies"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type updateSocietyRequest struct {
	Name               string `json:"name" validate:"omitempty,min=3"`
	RegistrationNumber string `json:"registrationNumber" validate:"omitempty,min=5"`
	Address            string `json:"address" validate:"omitempty,min=5"`
	City               string `json:"city" validate:"omitempty,min=3"`
	State              string `json:"state" validate:"omitempty,min=3"`
	Pincode            string `json:"pincode" validate:"omitempty,numeric"`
}

// HandleUpdateSociety handles PUT /society/update-society/{id}. Allowed for
// the superAdmin and the society's own admin.
func (h *Handler) HandleUpdateSociety(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid Society ID provided")
		return
	}

	var req updateSocietyRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}
	if req.Pincode != "" && len(req.Pincode) != models.PincodeLength {
		respond.BadRequest(w, "Invalid pincode")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	_, err = h.Societies.Update(ctx, id, models.Society{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Pincode:            req.Pincode,
	})
	if err != nil {
		if errors.Is(err, societystore.ErrDuplicateRegistration) {
			respond.Conflict(w, "Registration number already exists")
			return
		}
		h.Log.Error("society update failed", zap.Error(err))
		respond.Internal(w, "Could not update society.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventSocietyUpdated, res.UserID, nil, &id, nil)

	updated, err := h.Societies.GetByID(ctx, id)
	if err != nil {
		respond.OK(w, "Society updated successfully", nil)
		return
	}
	respond.OK(w, "Society updated successfully", updated)
}
