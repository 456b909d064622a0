// internal/app/features/societies/list.go
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
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// HandleListSocieties handles GET /society/all-societies (superAdmin only).
func (h *Handler) HandleListSocieties(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireRole(w, r, "Unauthorized to access this resource", models.RoleSuperAdmin)
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	societies, err := h.Societies.List(ctx)
	if err != nil {
		h.Log.Error("society list failed", zap.Error(err))
		respond.Internal(w, "Could not list societies.")
		return
	}

	respond.OK(w, "Societies retrieved successfully", societies)
}

// HandleGetSociety handles GET /society/society/{id}. Visible to the
// superAdmin, the society's own admin, and its members.
func (h *Handler) HandleGetSociety(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.BadRequest(w, "Invalid Society ID provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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

	if !societypolicy.CanView(r, soc) {
		respond.Forbidden(w, "Unauthorized to access this resource")
		return
	}

	respond.OK(w, "Society retrieved successfully", soc)
}
