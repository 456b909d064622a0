package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func newManager() *auth.TokenManager {
	return auth.NewTokenManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func TestTokenRoundTrip(t *testing.T) {
	m := newManager()
	userID := primitive.NewObjectID().Hex()

	for _, kind := range []auth.TokenKind{auth.AccessToken, auth.RefreshToken} {
		tok, err := m.Issue(userID, kind)
		if err != nil {
			t.Fatalf("Issue(%s): %v", kind, err)
		}
		got, err := m.Verify(tok, kind)
		if err != nil {
			t.Fatalf("Verify(%s): %v", kind, err)
		}
		if got != userID {
			t.Errorf("Verify(%s): got %q, want %q", kind, got, userID)
		}
	}
}

func TestVerify_KindMismatch(t *testing.T) {
	m := newManager()
	refresh, err := m.IssueRefresh(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}

	if _, err := m.Verify(refresh, auth.AccessToken); err != auth.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid for refresh-as-access, got %v", err)
	}
}

func TestVerify_Expired(t *testing.T) {
	m := auth.NewTokenManager("s1", "s2", -time.Minute, -time.Minute)
	tok, err := m.IssueAccess(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if _, err := m.Verify(tok, auth.AccessToken); err != auth.ErrTokenExpired {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_Garbage(t *testing.T) {
	m := newManager()
	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		if _, err := m.Verify(tok, auth.AccessToken); err != auth.ErrTokenInvalid {
			t.Errorf("Verify(%q): expected ErrTokenInvalid, got %v", tok, err)
		}
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	m := newManager()
	other := auth.NewTokenManager("different", "different", time.Hour, time.Hour)

	tok, err := m.IssueAccess(primitive.NewObjectID().Hex())
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}
	if _, err := other.Verify(tok, auth.AccessToken); err != auth.ErrTokenInvalid {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

/* ------------------------------ middleware ------------------------------ */

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func runMiddleware(t *testing.T, load auth.LoadUserFunc, authorize string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	m := newManager()
	a := auth.NewAuthenticator(m, load, zap.NewNop())

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest("GET", "/user/me", nil)
	if authorize != "" {
		req.Header.Set("Authorization", authorize)
	}
	rec := httptest.NewRecorder()
	a.Middleware(next).ServeHTTP(rec, req)
	return rec, called
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestMiddleware_MissingHeader(t *testing.T) {
	rec, called := runMiddleware(t, nil, "")
	if called {
		t.Error("next should not be called")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Missing token" {
		t.Errorf("message: got %q", env.Message)
	}
}

func TestMiddleware_BadScheme(t *testing.T) {
	rec, _ := runMiddleware(t, nil, "Token abc")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid token format" {
		t.Errorf("message: got %q", env.Message)
	}
}

func TestMiddleware_InvalidToken(t *testing.T) {
	rec, _ := runMiddleware(t, nil, "Bearer garbage")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "Invalid token" {
		t.Errorf("message: got %q", env.Message)
	}
}

func TestMiddleware_DeactivatedUser(t *testing.T) {
	uid := primitive.NewObjectID()
	m := newManager()
	tok, _ := m.IssueAccess(uid.Hex())

	load := func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		return &models.User{ID: id, IsActive: false}, nil
	}
	a := auth.NewAuthenticator(m, load, zap.NewNop())

	req := httptest.NewRequest("GET", "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	rec := httptest.NewRecorder()
	a.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("next should not be called for a deactivated user")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Message != "User not found or deactived" {
		t.Errorf("message: got %q", env.Message)
	}
}

func TestMiddleware_MissingUser(t *testing.T) {
	// A valid token for a since-deleted account must read as unauthenticated,
	// whether the loader signals absence with (nil, nil) or ErrNoDocuments.
	loaders := map[string]auth.LoadUserFunc{
		"nil-nil": func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, nil
		},
		"no-documents": func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
			return nil, mongo.ErrNoDocuments
		},
	}

	for name, load := range loaders {
		t.Run(name, func(t *testing.T) {
			uid := primitive.NewObjectID()
			m := newManager()
			tok, _ := m.IssueAccess(uid.Hex())
			a := auth.NewAuthenticator(m, load, zap.NewNop())

			req := httptest.NewRequest("GET", "/user/me", nil)
			req.Header.Set("Authorization", "Bearer "+tok)
			rec := httptest.NewRecorder()
			a.Middleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
				t.Error("next should not be called for a missing user")
			})).ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Errorf("status: got %d, want 401", rec.Code)
			}
			if env := decodeEnvelope(t, rec); env.Message != "User not found or deactived" {
				t.Errorf("message: got %q", env.Message)
			}
		})
	}
}

func TestMiddleware_Success(t *testing.T) {
	uid := primitive.NewObjectID()
	m := newManager()
	tok, _ := m.IssueAccess(uid.Hex())

	load := func(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
		return &models.User{ID: id, Username: "ravi", Role: models.RoleMember, IsActive: true}, nil
	}
	a := auth.NewAuthenticator(m, load, zap.NewNop())

	var got *models.User
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	})

	req := httptest.NewRequest("GET", "/user/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	a.Middleware(next).ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != uid || got.Username != "ravi" {
		t.Errorf("context user: got %+v", got)
	}
}
