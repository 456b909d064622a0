// Package authz provides role and scope helpers over the authenticated user
// in the request context. Resource-specific checks that need database reads
// live in internal/app/policy.
package authz

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserCtx returns the current user's role, id, and a found flag. ok=true
// means a valid, authenticated user loaded by the bearer middleware.
func UserCtx(r *http.Request) (role string, userID primitive.ObjectID, ok bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		return "", primitive.NilObjectID, false
	}
	return u.Role, u.ID, true
}

// IsSuperAdmin reports whether the current request's user is the superadmin.
func IsSuperAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleSuperAdmin
}

// IsSocietyAdmin reports whether the current request's user is a society admin.
func IsSocietyAdmin(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleSocietyAdmin
}

// IsMember reports whether the current request's user is a member.
func IsMember(r *http.Request) bool {
	role, _, ok := UserCtx(r)
	return ok && role == models.RoleMember
}

// HasAnyRole reports whether the current user holds any of the given roles.
func HasAnyRole(r *http.Request, roles ...string) bool {
	role, _, ok := UserCtx(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if role == want {
			return true
		}
	}
	return false
}

// UserSocietyID returns the current user's society reference.
// Returns NilObjectID if there is no user or the user has no society.
func UserSocietyID(r *http.Request) primitive.ObjectID {
	u, ok := auth.CurrentUser(r)
	if !ok || u.SocietyID == nil {
		return primitive.NilObjectID
	}
	return *u.SocietyID
}
