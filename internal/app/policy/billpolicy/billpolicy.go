// Package billpolicy provides authorization policies for bills.
//
// Authorization rules:
//   - The superadmin can view all bills
//   - A society admin manages bills within their own society only
//   - A member can view and pay only their own bills
package billpolicy

import (
	"net/http"

	"github.com/draj-max/society-backend/internal/app/system/authz"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// CanManage reports whether the current request user may create, edit, or
// settle the bill. Settlement decisions belong to the owning society's admin.
func CanManage(r *http.Request, bill models.Bill) bool {
	role, _, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	if role == models.RoleSuperAdmin {
		return true
	}
	return role == models.RoleSocietyAdmin && authz.UserSocietyID(r) == bill.SocietyID
}

// CanPay reports whether the current request user may submit payment for the
// bill. Only the member the bill was raised against can pay it.
func CanPay(r *http.Request, bill models.Bill) bool {
	role, uid, ok := authz.UserCtx(r)
	if !ok {
		return false
	}
	return role == models.RoleMember && bill.MemberID == uid
}

// CanView reports whether the current request user may read the bill.
func CanView(r *http.Request, bill models.Bill) bool {
	return CanManage(r, bill) || CanPay(r, bill)
}
