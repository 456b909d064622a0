// internal/app/bootstrap/routes.go
package bootstrap

import (
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authfeature "github.com/draj-max/society-backend/internal/app/features/auth"
	billsfeature "github.com/draj-max/society-backend/internal/app/features/bills"
	complaintsfeature "github.com/draj-max/society-backend/internal/app/features/complaints"
	healthfeature "github.com/draj-max/society-backend/internal/app/features/health"
	societiesfeature "github.com/draj-max/society-backend/internal/app/features/societies"
	usersfeature "github.com/draj-max/society-backend/internal/app/features/users"
	"github.com/draj-max/society-backend/internal/app/store/audit"
	billstore "github.com/draj-max/society-backend/internal/app/store/bills"
	complaintstore "github.com/draj-max/society-backend/internal/app/store/complaints"
	societystore "github.com/draj-max/society-backend/internal/app/store/societies"
	userstore "github.com/draj-max/society-backend/internal/app/store/users"
	"github.com/draj-max/society-backend/internal/app/system/auditlog"
	"github.com/draj-max/society-backend/internal/app/system/auth"
	"github.com/draj-max/society-backend/internal/app/system/media"
	"github.com/draj-max/society-backend/internal/app/system/respond"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: any DB or backend clients bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// SocietyHub builds the stores, the JWT token manager and authenticator,
// the audit logger, and the media store, then mounts feature routers for
// the API areas: auth, user, society, bill, and complain. Uploaded proof
// images are served under the media URL prefix, and /health answers load
// balancer probes.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.SocietyHubMongoDatabase

	// Stores
	users := userstore.New(db)
	users.SetBcryptCost(appCfg.BcryptCost)
	societies := societystore.New(db)
	bills := billstore.New(db)
	complaints := complaintstore.New(db)

	// Audit logging to MongoDB + zap, gated per category by config.
	auditLog := auditlog.New(audit.New(db), logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// Proof image storage (payment proofs, complaint photos).
	mediaStore, err := media.New(appCfg.MediaDir, appCfg.MediaURLPrefix)
	if err != nil {
		logger.Error("media store init failed", zap.Error(err))
		return nil, err
	}

	// JWT token manager and the middleware that turns a bearer token
	// into a context user. The loader re-reads the user on every request
	// so deactivations and role changes take effect immediately.
	tokens := auth.NewTokenManager(
		appCfg.JWTAccessSecret, appCfg.JWTRefreshSecret,
		appCfg.JWTAccessTTL, appCfg.JWTRefreshTTL,
	)
	authn := auth.NewAuthenticator(tokens, users.GetByID, logger)

	r := chi.NewRouter()

	// Request logging, matching the rest of the app's structured logs.
	r.Use(requestLogger(logger))

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.SocietyHubMongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Uploaded proof images
	r.Mount(appCfg.MediaURLPrefix, mediaStore.Handler())

	// API routes
	r.Route("/api", func(api chi.Router) {
		authHandler := authfeature.NewHandler(users, tokens, auditLog, logger)
		api.Mount("/auth", authfeature.Routes(authHandler, authn))

		usersHandler := usersfeature.NewHandler(users, auditLog, logger)
		api.Mount("/user", usersfeature.Routes(usersHandler, authn))

		societiesHandler := societiesfeature.NewHandler(users, societies, bills, complaints, auditLog, logger)
		api.Mount("/society", societiesfeature.Routes(societiesHandler, authn))

		billsHandler := billsfeature.NewHandler(users, bills, mediaStore, auditLog, logger)
		api.Mount("/bill", billsfeature.Routes(billsHandler, authn))

		complaintsHandler := complaintsfeature.NewHandler(complaints, mediaStore, auditLog, logger)
		api.Mount("/complain", complaintsfeature.Routes(complaintsHandler, authn))
	})

	// Unknown routes get the standard envelope naming the requested path.
	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		respond.JSON(w, http.StatusNotFound,
			fmt.Sprintf("The requiested api route=> %s is not found to be exist.", req.URL.Path),
			map[string]string{"requested_route": req.URL.Path})
	})

	return r, nil
}

// requestLogger logs one line per request with status and duration.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Info("request",
				zap.String("method", req.Method),
				zap.String("url", req.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)))
		})
	}
}
