// internal/app/system/auth/middleware.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/draj-max/society-backend/internal/app/system/respond"
	"github.com/draj-max/society-backend/internal/app/system/timeouts"
	"github.com/draj-max/society-backend/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// LoadUserFunc loads the user record behind a verified token. Returning
// (nil, nil) or mongo.ErrNoDocuments means the record does not exist;
// either way the request is rejected as unauthenticated, not failed.
type LoadUserFunc func(ctx context.Context, id primitive.ObjectID) (*models.User, error)

// Authenticator turns bearer headers into context users. It is the single
// choke point for request identity: verify token, load a fresh user record,
// reject missing or deactivated accounts.
type Authenticator struct {
	Tokens *TokenManager
	Load   LoadUserFunc
	Log    *zap.Logger
}

// NewAuthenticator wires the token manager to a user loader.
func NewAuthenticator(tokens *TokenManager, load LoadUserFunc, logger *zap.Logger) *Authenticator {
	return &Authenticator{Tokens: tokens, Load: load, Log: logger}
}

// Middleware authenticates every request passing through it. Failure
// messages follow the API contract exactly: clients distinguish a missing
// header, a malformed header, an expired token, and an invalid one.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respond.BadRequest(w, "Missing token")
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		if token == header || token == "" {
			respond.Unauthorized(w, "Invalid token format")
			return
		}

		userID, err := a.Tokens.Verify(token, AccessToken)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				respond.Unauthorized(w, "Access token expired")
				return
			}
			respond.Unauthorized(w, "Invalid token")
			return
		}

		oid, err := primitive.ObjectIDFromHex(userID)
		if err != nil {
			respond.Unauthorized(w, "Invalid token")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
		defer cancel()

		u, err := a.Load(ctx, oid)
		if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
			a.Log.Error("auth user load failed", zap.String("user_id", userID), zap.Error(err))
			respond.Internal(w, "Could not load user for this token.")
			return
		}
		if u == nil || !u.IsActive {
			respond.Unauthorized(w, "User not found or deactived")
			return
		}

		next.ServeHTTP(w, withUser(r, u))
	})
}
