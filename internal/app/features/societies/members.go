// internal/app/features/societies/members.go
package societies

import (
	"context"
	"errors"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/draj-max/society-backend/internal/app/store/audit"
	"github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/app/system/inputval"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/app/system/txn"
	"github.com/draj-max/society-backend/internal/domain/models"
)

type addMemberRequest struct {
	// Either member_id (attach an already-registered, unassigned member)
	// or full credentials (provision a fresh account).
	MemberID string `json:"member_id" validate:"omitempty,len=24"`
	Username string `json:"username" validate:"omitempty,min=3"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Phone    string `json:"phone" validate:"omitempty,min=7,max=15"`
	RoomNo   int    `json:"roomNo" validate:"omitempty,gt=0"`
	ChawlNo  string `json:"chawlNo"`
	IsOwner  bool   `json:"isOwner"`
}

// HandleAddMember handles POST /society/add-member. The society admin
// either provisions a member account scoped to their own society, or, when
// member_id is given, attaches an existing unassigned member. Both run as a
// saga with the roster append: if the append fails, the account creation or
// attachment is undone.
func (h *Handler) HandleAddMember(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	var req addMemberRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if req.MemberID != "" {
		h.attachExistingMember(ctx, w, r, res, req)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respond.BadRequest(w, "Either member_id or member credentials (username, email, password) are required.")
		return
	}

	societyID := res.SocietyID
	var member models.User
	steps := []txn.Step{
		{
			Name: "create member user",
			Run: func(ctx context.Context) error {
				created, err := h.Users.Create(ctx, models.User{
					Username:  req.Username,
					Email:     req.Email,
					Phone:     req.Phone,
					Role:      models.RoleMember,
					SocietyID: &societyID,
					RoomNo:    req.RoomNo,
					ChawlNo:   req.ChawlNo,
					IsOwner:   req.IsOwner,
				}, req.Password)
				if err != nil {
					return err
				}
				member = created
				return nil
			},
			Undo: func(ctx context.Context) error {
				_, err := h.Users.Delete(ctx, member.ID)
				return err
			},
		},
		{
			Name: "append to roster",
			Run: func(ctx context.Context) error {
				return h.Societies.AddMemberID(ctx, societyID, member.ID)
			},
		},
	}

	if err := txn.Run(ctx, h.Log, steps); err != nil {
		var comp *txn.CompensationError
		switch {
		case errors.As(err, &comp):
			h.Log.Error("add member rollback incomplete",
				zap.Strings("failed_undo_steps", comp.Failed),
				zap.Error(err))
			respond.Internal(w, "Member creation failed and rollback was incomplete.")
		case errors.Is(err, userstore.ErrDuplicateEmail):
			respond.Conflict(w, "Email already exists.")
		case errors.Is(err, userstore.ErrDuplicateUsername):
			respond.Conflict(w, "Username already exists.")
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.NotFound(w, "Society not found.")
		default:
			h.Log.Error("add member failed", zap.Error(err))
			respond.Internal(w, "Could not add member.")
		}
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventMemberAdded, res.UserID, &member.ID, &societyID, nil)

	respond.Created(w, "Member added successfully.", member)
}

// attachExistingMember links an already-registered, unassigned member to the
// admin's society. The society link and the roster append run as a saga; a
// failed append detaches the member again.
func (h *Handler) attachExistingMember(ctx context.Context, w http.ResponseWriter, r *http.Request, res gates.Result, req addMemberRequest) {
	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		respond.BadRequest(w, "Invalid member ID provided")
		return
	}

	societyID := res.SocietyID
	attached := false
	steps := []txn.Step{
		{
			Name: "attach member",
			Run: func(ctx context.Context) error {
				if err := h.Users.AssignSociety(ctx, memberID, societyID, req.RoomNo, req.ChawlNo, req.IsOwner); err != nil {
					return err
				}
				attached = true
				return nil
			},
			Undo: func(ctx context.Context) error {
				return h.Users.UnassignSociety(ctx, memberID, societyID)
			},
		},
		{
			Name: "append to roster",
			Run: func(ctx context.Context) error {
				return h.Societies.AddMemberID(ctx, societyID, memberID)
			},
		},
	}

	if err := txn.Run(ctx, h.Log, steps); err != nil {
		var comp *txn.CompensationError
		switch {
		case errors.As(err, &comp):
			h.Log.Error("attach member rollback incomplete",
				zap.Strings("failed_undo_steps", comp.Failed),
				zap.Error(err))
			respond.Internal(w, "Member creation failed and rollback was incomplete.")
		case errors.Is(err, mongo.ErrNoDocuments) && !attached:
			respond.NotFound(w, "No unassigned member found for this id.")
		case errors.Is(err, mongo.ErrNoDocuments):
			respond.NotFound(w, "Society not found.")
		default:
			h.Log.Error("attach member failed", zap.Error(err))
			respond.Internal(w, "Could not add member.")
		}
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventMemberAdded, res.UserID, &memberID, &societyID, nil)

	member, err := h.Users.GetMemberOfSociety(ctx, memberID, societyID)
	if err != nil {
		respond.OK(w, "Member added successfully.", nil)
		return
	}
	respond.OK(w, "Member added successfully.", member)
}

type removeMemberRequest struct {
	MemberID string `json:"member_id" validate:"required,len=24"`
}

// HandleRemoveMember handles POST /society/remove-member. Only members of
// the caller's own society can be removed; admins are out of scope because
// removing the admin is society deletion, not membership management.
func (h *Handler) HandleRemoveMember(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	var req removeMemberRequest
	if !inputval.DecodeJSON(w, r, &req) {
		return
	}

	memberID, err := primitive.ObjectIDFromHex(req.MemberID)
	if err != nil {
		respond.BadRequest(w, "Invalid user ID provided")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	member, err := h.Users.GetMemberOfSociety(ctx, memberID, res.SocietyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			respond.NotFound(w, "No member found for this id under your society.")
			return
		}
		h.Log.Error("member lookup failed", zap.Error(err))
		respond.Internal(w, "Could not load member.")
		return
	}
	if !member.IsActive {
		respond.BadRequest(w, "This member is deactivated.")
		return
	}

	if _, err := h.Users.Delete(ctx, member.ID); err != nil {
		h.Log.Error("member delete failed", zap.Error(err))
		respond.Internal(w, "Could not remove member.")
		return
	}
	if err := h.Societies.PullMemberID(ctx, res.SocietyID, member.ID); err != nil {
		h.Log.Error("roster pull failed", zap.Error(err))
		respond.Internal(w, "Could not remove member.")
		return
	}

	h.Audit.AdminAction(ctx, r, audit.EventMemberRemoved, res.UserID, &member.ID, &res.SocietyID, nil)

	respond.OK(w, "Member removed successfully.", nil)
}

// HandleListMembers handles GET /society/members. Returns every member of
// the caller's society, without password hashes.
func (h *Handler) HandleListMembers(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireSocietyAdmin(w, r, "Unauthorized to access this resource")
	if !res.OK {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	members, err := h.Users.ListBySociety(ctx, res.SocietyID)
	if err != nil {
		h.Log.Error("member list failed", zap.Error(err))
		respond.Internal(w, "Could not list members.")
		return
	}

	respond.OK(w, "Members retrieved successfully", members)
}
