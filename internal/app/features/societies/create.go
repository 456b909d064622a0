// internal/app/features/societies/create.go
package societies

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/store/societies"
	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/app/system/txn"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type createSocietyRequest struct {
	Name               string `json:"name" validate:"required,min=3"`
	RegistrationNumber string `json:"registrationNumber" validate:"required,min=5"`
	Address            string `json:"address" validate:"required,min=5"`
	City               string `json:"city" validate:"required,min=3"`
	State              string `json:"state" validate:"required,min=3"`
	Pincode            string `json:"pincode" validate:"required,numeric"`

	// attach an existing user as the admin
	AdminID string `json:"admin_id" validate:"omitempty,len=24"`

	// or provision the admin user in the same request
	Username string `json:"username" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// HandleCreateSociety handles POST /society/create-society (superAdmin
// only). The request either names an existing user as admin via admin_id, or
// carries credentials for a new admin account.
//
// Creation spans the users and societies collections, so it runs as a saga:
// provision admin -> create society -> promote admin, with each completed
// step undone in reverse order if a later one fails. An undo failure is
// reported as an incomplete rollback instead of being swallowed.
func (h *Handler) HandleCreateSociety(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireRole(w, r, "Unauthorized to access this resource", models.RoleSuperAdmin)
	if !res.OK {
		return
	}

	var req createSocietyRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}
	if len(req.Pincode) != models.PincodeLength {
		respond.BadRequest(w, "Invalid pincode")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if req.AdminID != "" {
		h.createWithExistingAdmin(ctx, w, r, req, res.UserID)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond.BadRequest(w, "Either admin_id or admin credentials (username, email, password) are required.")
		return
	}
	h.createWithNewAdmin(ctx, w, r, req, res.UserID)
}

func (h *Handler) createWithExistingAdmin(ctx context.Context, w http.ResponseWriter, r *http.Request, req createSocietyRequest, actorID primitive.ObjectID) {
	adminID, err := primitive.ObjectIDFromHex(req.AdminID)
	if err != nil {
		respond.BadRequest(w, "Invalid user ID provided")
		return
	}

	admin, err := h.Users.GetByID(ctx, adminID)
	if err != nil {
		h.Log.Error("admin lookup failed", zap.Error(err))
		respond.Internal(w, "Could not create society.")
		return
	}
	if admin == nil {
		respond.NotFound(w, "Admin not found")
		return
	}

	var soc models.Society
	steps := []txn.Step{
		{
			Name: "create society",
			Run: func(ctx context.Context) error {
				created, err := h.Societies.Create(ctx, h.newSociety(req, admin.ID))
				if err != nil {
					return err
				}
				soc = created
				return nil
			},
			Undo: func(ctx context.Context) error {
				_, err := h.Societies.Delete(ctx, soc.ID)
				return err
			},
		},
		{
			Name: "promote admin",
			Run: func(ctx context.Context) error {
				return h.Users.PromoteToSocietyAdmin(ctx, admin.ID, soc.ID)
			},
		},
	}

	if err := txn.Run(ctx, h.Log, steps); err != nil {
		h.respondCreateError(w, err)
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventSocietyCreated, actorID, &admin.ID, &soc.ID, map[string]string{
		"registration_number": soc.RegistrationNumber,
	})
	respond.OK(w, "Society created successfully", soc)
}

func (h *Handler) createWithNewAdmin(ctx context.Context, w http.ResponseWriter, r *http.Request, req createSocietyRequest, actorID primitive.ObjectID) {
	var (
		admin models.User
		soc   models.Society
	)
	steps := []txn.Step{
		{
			Name: "create admin user",
			Run: func(ctx context.Context) error {
				created, err := h.Users.Create(ctx, models.User{
					Username: req.Username,
					Email:    req.Email,
					Role:     models.RoleMember,
				}, req.Password)
				if err != nil {
					return err
				}
				admin = created
				return nil
			},
			Undo: func(ctx context.Context) error {
				_, err := h.Users.Delete(ctx, admin.ID)
				return err
			},
		},
		{
			Name: "create society",
			Run: func(ctx context.Context) error {
				created, err := h.Societies.Create(ctx, h.newSociety(req, admin.ID))
				if err != nil {
					return err
				}
				soc = created
				return nil
			},
			Undo: func(ctx context.Context) error {
				_, err := h.Societies.Delete(ctx, soc.ID)
				return err
			},
		},
		{
			Name: "promote admin",
			Run: func(ctx context.Context) error {
				return h.Users.PromoteToSocietyAdmin(ctx, admin.ID, soc.ID)
			},
		},
	}

	if err := txn.Run(ctx, h.Log, steps); err != nil {
		h.respondCreateError(w, err)
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventSocietyCreated, actorID, &admin.ID, &soc.ID, map[string]string{
		"registration_number": soc.RegistrationNumber,
	})
	respond.OK(w, "Society created successfully", soc)
}

func (h *Handler) newSociety(req createSocietyRequest, adminID primitive.ObjectID) models.Society {
	return models.Society{
		Name:               req.Name,
		RegistrationNumber: req.RegistrationNumber,
		Address:            req.Address,
		City:               req.City,
		State:              req.State,
		Pincode:            req.Pincode,
		AdminID:            adminID,
	}
}

func (h *Handler) respondCreateError(w http.ResponseWriter, err error) {
	var comp *txn.CompensationError
	if errors.As(err, &comp) {
		h.Log.Error("society creation rollback incomplete",
			zap.Strings("failed_undo_steps", comp.Failed),
			zap.Error(err))
		respond.Internal(w, "Society creation failed and rollback was incomplete.")
		return
	}

	switch {
	case errors.Is(err, userstore.ErrDuplicateEmail):
		respond.Conflict(w, "Email already exists.")
	case errors.Is(err, userstore.ErrDuplicateUsername):
		respond.Conflict(w, "Username already exists.")
	case errors.Is(err, societystore.ErrDuplicateRegistration):
		respond.Conflict(w, "Registration number already exists")
	case errors.Is(err, societystore.ErrDuplicateAdmin):
		respond.Conflict(w, "This admin already manages another society.")
	case errors.Is(err, mongo.ErrNoDocuments):
		// promote matched no member: the chosen admin already holds a role
		respond.Conflict(w, "This user cannot be assigned as a society admin.")
	default:
		h.Log.Error("society creation failed", zap.Error(err))
		respond.Internal(w, "Could not create society.")
	}
}
