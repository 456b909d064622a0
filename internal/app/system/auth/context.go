// internal/app/system/auth/context.go
package auth

import (
	"context"
	"net/http"

	"github.com/draj-max/society-backend/internal/domain/models"
)

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the authenticated user and a found flag. The user is
// the freshly loaded store record, so role changes and deactivation take
// effect on the next request.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(currentUserKey).(*models.User)
	return u, ok
}

func withUser(r *http.Request, u *models.User) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context, bypassing the bearer
// middleware. Test helper only.
func WithTestUser(r *http.Request, u *models.User) *http.Request {
	return withUser(r, u)
}
