// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like:
//   - HTTP/HTTPS ports and TLS configuration
//   - Logging level and format
//   - CORS settings
//   - Request body size limits
//   - Database connection timeouts
//
// AppConfig is where everything specific to SocietyHub lives: the Mongo
// connection, JWT signing material, password hashing cost, where payment
// and complaint proof images are stored, and the superadmin bootstrap
// account created on first startup.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWT configuration. Access and refresh tokens are signed with
	// separate secrets so a leaked access secret cannot mint refresh
	// tokens.
	JWTAccessSecret  string        // HMAC secret for access tokens
	JWTRefreshSecret string        // HMAC secret for refresh tokens
	JWTAccessTTL     time.Duration // Access token lifetime (default 168h = 7 days)
	JWTRefreshTTL    time.Duration // Refresh token lifetime (default 720h = 30 days)

	// Password hashing
	BcryptCost int // bcrypt cost factor

	// Media storage for payment proofs and complaint images
	MediaDir       string // Local directory for uploaded images (e.g., "./uploads")
	MediaURLPrefix string // URL prefix for serving uploaded images (e.g., "/uploads")

	// Audit logging settings: 'all' (db+log), 'db', 'log', or 'off'
	AuditLogAuth  string // Auth events (login, logout, refresh, password reset)
	AuditLogAdmin string // Admin events (user/society/bill/complaint changes)

	// SuperAdmin bootstrap. When all three are set, Startup creates the
	// account if it does not already exist.
	SuperAdminUsername string
	SuperAdminEmail    string
	SuperAdminPassword string
}
