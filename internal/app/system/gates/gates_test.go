package gates_test

import (
	"net/http/httptest"
	"testing"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/app/system/gates"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRequireAuth_NoUser(t *testing.T) {
	rec := httptest.NewRecorder()
	res := gates.RequireAuth(rec, httptest.NewRequest("GET", "/", nil))

	if res.OK {
		t.Error("expected OK=false")
	}
	if rec.Code != 401 {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
}

func TestRequireAuth_WithUser(t *testing.T) {
	socID := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:        primitive.NewObjectID(),
		Role:      models.RoleMember,
		SocietyID: &socID,
		IsActive:  true,
	})

	rec := httptest.NewRecorder()
	res := gates.RequireAuth(rec, req)
	if !res.OK {
		t.Fatal("expected OK=true")
	}
	if res.Role != models.RoleMember || res.SocietyID != socID {
		t.Errorf("result: got %+v", res)
	}
}

func TestRequireRole(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:       primitive.NewObjectID(),
		Role:     models.RoleMember,
		IsActive: true,
	})

	rec := httptest.NewRecorder()
	if res := gates.RequireRole(rec, req, "nope", models.RoleSuperAdmin); res.OK {
		t.Error("expected role miss")
	}
	if rec.Code != 403 {
		t.Errorf("status: got %d, want 403", rec.Code)
	}

	rec = httptest.NewRecorder()
	if res := gates.RequireRole(rec, req, "nope", models.RoleSuperAdmin, models.RoleMember); !res.OK {
		t.Error("expected role match")
	}
}

func TestRequireSocietyAdmin_Allows(t *testing.T) {
	socID := primitive.NewObjectID()
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:        primitive.NewObjectID(),
		Role:      models.RoleSocietyAdmin,
		SocietyID: &socID,
		IsActive:  true,
	})

	rec := httptest.NewRecorder()
	res := gates.RequireSocietyAdmin(rec, req, "nope")
	if !res.OK {
		t.Fatal("expected OK=true")
	}
	if res.Role != models.RoleSocietyAdmin || res.SocietyID != socID {
		t.Errorf("result: got %+v", res)
	}
}

func TestRequireSocietyAdmin_NoSociety(t *testing.T) {
	req := auth.WithTestUser(httptest.NewRequest("GET", "/", nil), &models.User{
		ID:       primitive.NewObjectID(),
		Role:     models.RoleSocietyAdmin,
		IsActive: true,
	})

	rec := httptest.NewRecorder()
	if res := gates.RequireSocietyAdmin(rec, req, "nope"); res.OK {
		t.Error("expected failure for admin without a society")
	}
	if rec.Code != 404 {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}
