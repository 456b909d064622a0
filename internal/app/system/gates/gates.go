// Package gates provides authorization gate functions for HTTP handlers.
// Gates check authentication and role, writing the JSON error envelope when
// a check fails.
//
// Checks run in a fixed order so status codes stay deterministic:
// authentication (401) -> role (403) -> resource existence (404, in the
// handler) -> ownership (403, via internal/app/policy).
//
// Handlers mounted behind the bearer middleware always have a user in
// context; gates exist for the role part and for returning the user context
// in one call.
package gates

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/authz"
	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Result contains the outcome of a gate check.
type Result struct {
	Role      string
	UserID    primitive.ObjectID
	SocietyID primitive.ObjectID
	OK        bool
}

// RequireAuth ensures a user is authenticated. On failure it writes a 401
// envelope and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Unauthorized")
		return Result{OK: false}
	}
	return Result{Role: role, UserID: uid, SocietyID: authz.UserSocietyID(r), OK: true}
}

// RequireRole ensures the user is authenticated and holds one of the allowed
// roles. On a role miss it writes a 403 envelope with the given message.
func RequireRole(w http.ResponseWriter, r *http.Request, forbiddenMsg string, allowed ...string) Result {
	role, uid, ok := authz.UserCtx(r)
	if !ok {
		respond.Unauthorized(w, "Unauthorized")
		return Result{OK: false}
	}
	for _, want := range allowed {
		if role == want {
			return Result{Role: role, UserID: uid, SocietyID: authz.UserSocietyID(r), OK: true}
		}
	}
	respond.Forbidden(w, forbiddenMsg)
	return Result{OK: false}
}

// RequireSocietyAdmin ensures the user is a society admin with a society
// reference. Admins without a linked society cannot act on any resource.
func RequireSocietyAdmin(w http.ResponseWriter, r *http.Request, forbiddenMsg string) Result {
	res := RequireRole(w, r, forbiddenMsg, models.RoleSocietyAdmin)
	if !res.OK {
		return res
	}
	if res.SocietyID == primitive.NilObjectID {
		respond.NotFound(w, "Society not found.")
		return Result{OK: false}
	}
	return res
}
