package authz_test

import (
	"net/http/httptest"
	"testing"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/app/system/authz"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserCtx_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)

	role, uid, ok := authz.UserCtx(req)
	if ok {
		t.Error("expected ok=false without a user")
	}
	if role != "" || uid != primitive.NilObjectID {
		t.Errorf("expected zero values, got role=%q uid=%v", role, uid)
	}
}

func TestRoleHelpers(t *testing.T) {
	socID := primitive.NewObjectID()
	tests := []struct {
		role       string
		superAdmin bool
		societyAdm bool
		member     bool
	}{
		{models.RoleSuperAdmin, true, false, false},
		{models.RoleSocietyAdmin, false, true, false},
		{models.RoleMember, false, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
				ID:        primitive.NewObjectID(),
				Role:      tt.role,
				SocietyID: &socID,
				IsActive:  true,
			})

			if got := authz.IsSuperAdmin(req); got != tt.superAdmin {
				t.Errorf("IsSuperAdmin = %v, want %v", got, tt.superAdmin)
			}
			if got := authz.IsSocietyAdmin(req); got != tt.societyAdm {
				t.Errorf("IsSocietyAdmin = %v, want %v", got, tt.societyAdm)
			}
			if got := authz.IsMember(req); got != tt.member {
				t.Errorf("IsMember = %v, want %v", got, tt.member)
			}
		})
	}
}

func TestHasAnyRole(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:       primitive.NewObjectID(),
		Role:     models.RoleSocietyAdmin,
		IsActive: true,
	})

	if !authz.HasAnyRole(req, models.RoleSuperAdmin, models.RoleSocietyAdmin) {
		t.Error("expected societyAdmin to match")
	}
	if authz.HasAnyRole(req, models.RoleMember) {
		t.Error("expected member-only check to fail")
	}
	if authz.HasAnyRole(httptest.NewRequest("GET", "/", nil), models.RoleMember) {
		t.Error("expected no-user request to fail")
	}
}

func TestUserSocietyID(t *testing.T) {
	socID := primitive.NewObjectID()

	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:        primitive.NewObjectID(),
		Role:      models.RoleMember,
		SocietyID: &socID,
	})
	if got := authz.UserSocietyID(req); got != socID {
		t.Errorf("UserSocietyID = %v, want %v", got, socID)
	}

	noSoc := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:   primitive.NewObjectID(),
		Role: models.RoleSuperAdmin,
	})
	if got := authz.UserSocietyID(noSoc); got != primitive.NilObjectID {
		t.Errorf("UserSocietyID = %v, want NilObjectID", got)
	}
}
