// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	userstore "github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/domain/models"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// SocietyHub uses it to bootstrap the superadmin account: society creation
// is a superadmin-only operation, so a fresh deployment needs one account
// that exists before any request is served.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureSuperAdmin(ctx, appCfg, deps, logger)
}

// ensureSuperAdmin creates the configured superadmin account if it does not
// already exist. It is idempotent: an existing account (matched by email)
// is left untouched, including its password.
func ensureSuperAdmin(ctx context.Context, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.SuperAdminEmail == "" {
		logger.Info("superadmin bootstrap skipped (superadmin_email not set)")
		return nil
	}
	if appCfg.SuperAdminUsername == "" || appCfg.SuperAdminPassword == "" {
		return fmt.Errorf("superadmin_email is set but superadmin_username or superadmin_password is missing")
	}

	users := userstore.New(deps.SocietyHubMongoDatabase)
	users.SetBcryptCost(appCfg.BcryptCost)

	existing, err := users.GetByIdentifierWithPassword(ctx, appCfg.SuperAdminEmail)
	switch {
	case err == nil:
		if existing.Role != models.RoleSuperAdmin {
			return fmt.Errorf("superadmin bootstrap: account %s exists with role %q", appCfg.SuperAdminEmail, existing.Role)
		}
		logger.Info("superadmin account already exists",
			zap.String("email", existing.Email))
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		// fall through to create
	default:
		return fmt.Errorf("superadmin bootstrap lookup: %w", err)
	}

	created, err := users.Create(ctx, models.User{
		Username: appCfg.SuperAdminUsername,
		Email:    appCfg.SuperAdminEmail,
		Role:     models.RoleSuperAdmin,
	}, appCfg.SuperAdminPassword)
	if err != nil {
		// Another instance may have created it between the lookup and
		// the insert. Treat a duplicate as success.
		if errors.Is(err, userstore.ErrDuplicateEmail) || errors.Is(err, userstore.ErrDuplicateUsername) {
			logger.Info("superadmin account created concurrently")
			return nil
		}
		return fmt.Errorf("superadmin bootstrap create: %w", err)
	}

	logger.Info("superadmin account created",
		zap.String("email", created.Email),
		zap.String("username", created.Username))
	return nil
}
