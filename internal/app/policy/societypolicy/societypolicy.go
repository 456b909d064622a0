// Package societypolicy provides authorization policies for society
// management.
//
// Authorization rules:
//   - The superadmin can view and manage all societies
//   - A society admin can only manage the society they run
//   - Members can view their own society but never manage it
package societypolicy

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/authz"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// CanManage reports whether the current request user may modify the society.
func CanManage(r *http.Request, soc models.Society) bool {
	role, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleSuperAdmin {
		return true
	}
	return role == models.RoleSocietyAdmin && soc.AdminID == uid
}

// CanView reports whether the current request user may read the society.
// Members see only the society they belong to.
func CanView(r *http.Request, soc models.Society) bool {
	if CanManage(r, soc) {
		return true
	}
	role, _, ok := authz.UserCtx(r)
	if !ok || role != models.RoleMember {
		return false
	}
	return authz.UserSocietyID(r) == soc.ID
}
