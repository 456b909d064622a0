// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// appConfigKeys defines the configuration keys for SocietyHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, jwt_access_secret, etc.
//   - Environment variables: SOCIETYHUB_MONGO_URI, SOCIETYHUB_JWT_ACCESS_SECRET, etc.
//   - Command-line flags: --mongo_uri, --jwt_access_secret, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "society_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size (default: 100)"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size (default: 10)"},

	// JWT configuration
	{Name: "jwt_access_secret", Default: "dev-only-access-secret-change-me", Desc: "HMAC secret for access tokens (must be strong in production)"},
	{Name: "jwt_refresh_secret", Default: "dev-only-refresh-secret-change-me", Desc: "HMAC secret for refresh tokens (must be strong in production)"},
	{Name: "jwt_access_ttl", Default: "168h", Desc: "Access token lifetime (e.g., 168h for 7 days)"},
	{Name: "jwt_refresh_ttl", Default: "720h", Desc: "Refresh token lifetime (e.g., 720h for 30 days)"},

	// Password hashing
	{Name: "bcrypt_cost", Default: bcrypt.DefaultCost, Desc: "bcrypt cost factor for password hashing"},

	// Media storage for proof images
	{Name: "media_dir", Default: "./uploads", Desc: "Local directory for uploaded proof images"},
	{Name: "media_url_prefix", Default: "/uploads", Desc: "URL prefix for serving uploaded proof images"},

	// Audit logging settings
	{Name: "audit_log_auth", Default: "all", Desc: "Auth event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_admin", Default: "all", Desc: "Admin event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	// SuperAdmin bootstrap
	{Name: "superadmin_username", Default: "", Desc: "Username of the superadmin account (created on startup if missing)"},
	{Name: "superadmin_email", Default: "", Desc: "Email of the superadmin account (created on startup if missing)"},
	{Name: "superadmin_password", Default: "", Desc: "Password of the superadmin account (only used when creating it)"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, SOCIETYHUB_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "SOCIETYHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		// JWT
		JWTAccessSecret:  appValues.String("jwt_access_secret"),
		JWTRefreshSecret: appValues.String("jwt_refresh_secret"),
		JWTAccessTTL:     appValues.Duration("jwt_access_ttl", 168*time.Hour),
		JWTRefreshTTL:    appValues.Duration("jwt_refresh_ttl", 720*time.Hour),

		// Password hashing
		BcryptCost: appValues.Int("bcrypt_cost"),

		// Media storage
		MediaDir:       appValues.String("media_dir"),
		MediaURLPrefix: appValues.String("media_url_prefix"),

		// Audit logging
		AuditLogAuth:  appValues.String("audit_log_auth"),
		AuditLogAdmin: appValues.String("audit_log_admin"),

		// SuperAdmin
		SuperAdminUsername: appValues.String("superadmin_username"),
		SuperAdminEmail:    appValues.String("superadmin_email"),
		SuperAdminPassword: appValues.String("superadmin_password"),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
//
// SocietyHub validates the MongoDB URI format and the signing material
// early, before attempting to connect.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if appCfg.JWTAccessSecret == "" || appCfg.JWTRefreshSecret == "" {
		return fmt.Errorf("jwt_access_secret and jwt_refresh_secret must be set")
	}
	if appCfg.JWTAccessSecret == appCfg.JWTRefreshSecret {
		return fmt.Errorf("jwt_access_secret and jwt_refresh_secret must differ")
	}
	if appCfg.JWTAccessTTL <= 0 || appCfg.JWTRefreshTTL <= 0 {
		return fmt.Errorf("jwt token lifetimes must be positive")
	}

	if appCfg.BcryptCost < bcrypt.MinCost || appCfg.BcryptCost > bcrypt.MaxCost {
		return fmt.Errorf("bcrypt_cost %d out of range [%d, %d]", appCfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}

	return nil
}
