package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// WithUser adds a user to the request context for testing authenticated
// handlers. This bypasses the token middleware and injects the user directly.
func WithUser(r *http.Request, u *models.User) *http.Request {
	return auth.WithTestUser(r, u)
}

// MemberUser returns an in-memory member for handler tests that never touch
// the database. societyID may be nil for an unassigned member.
func MemberUser(societyID *primitive.ObjectID) *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		Username:  "testmember",
		Email:     "member@test.com",
		Role:      models.RoleMember,
		SocietyID: societyID,
		IsActive:  true,
	}
}

// SocietyAdminUser returns an in-memory societyAdmin for handler tests.
func SocietyAdminUser(societyID primitive.ObjectID) *models.User {
	return &models.User{
		ID:        primitive.NewObjectID(),
		Username:  "testadmin",
		Email:     "admin@test.com",
		Role:      models.RoleSocietyAdmin,
		SocietyID: &societyID,
		IsActive:  true,
	}
}

// SuperAdminUser returns an in-memory superAdmin for handler tests.
func SuperAdminUser() *models.User {
	return &models.User{
		ID:       primitive.NewObjectID(),
		Username: "testsuper",
		Email:    "super@test.com",
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}
}

// NewJSONRequest creates a test request with a JSON body.
func NewJSONRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// ResponseEnvelope mirrors the wire shape handlers respond with.
type ResponseEnvelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// DecodeEnvelope parses the recorded response body.
func DecodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) ResponseEnvelope {
	t.Helper()
	var env ResponseEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response envelope: %v (body: %s)", err, rec.Body.String())
	}
	return env
}

// DecodeData unmarshals the envelope's data payload into dst.
func DecodeData(t *testing.T, env ResponseEnvelope, dst any) {
	t.Helper()
	if len(env.Data) == 0 {
		t.Fatal("envelope has no data payload")
	}
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode envelope data: %v (data: %s)", err, string(env.Data))
	}
}
