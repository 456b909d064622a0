// Package complaintpolicy provides authorization policies for complaints.
//
// Authorization rules:
//   - The superadmin can view all complaints
//   - A society admin reviews complaints raised within their own society
//   - A member can view only the complaints they raised
package complaintpolicy

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/authz"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// CanReview reports whether the current request user may resolve or forward
// the complaint.
func CanReview(r *http.Request, c models.Complaint) bool {
	role, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleSuperAdmin {
		return true
	}
	return role == models.RoleSocietyAdmin && authz.UserSocietyID(r) == c.SocietyID
}

// CanView reports whether the current request user may read the complaint.
func CanView(r *http.Request, c models.Complaint) bool {
	if CanReview(r, c) {
		return true
	}
	_, uid, ok := authz.UserCtx(r)
	return ok && c.MemberID == uid
}
