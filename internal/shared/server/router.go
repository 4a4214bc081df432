package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"dms-backend/internal/documents"
	"dms-backend/internal/services/health"
	"dms-backend/internal/shared/auth"
	"dms-backend/internal/shared/config"
	"dms-backend/internal/shared/metrics"
	"dms-backend/internal/shared/server/middleware"
	"dms-backend/internal/shared/server/respond"
	"dms-backend/internal/users"
)

// RouterDeps carries the pieces the router wires together.
type RouterDeps struct {
	Config          config.Config
	Signer          auth.Signer
	Health          *health.Service
	UserHandler     *users.Handler
	DocumentHandler *documents.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
//
// Route tiers: public (register/login/password reset), token-protected
// (self-service and document CRUD), and an /admin group behind the
// administrator role gate.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.RateLimit(deps.Config.RateLimitRPS, deps.Config.RateLimitBurst),
	)

	api := r.Group("/api/v1")
	api.GET("/", func(c *gin.Context) {
		respond.Success(c, "You are welcome to the DMS api", nil)
	})
	api.GET("/health", func(c *gin.Context) {
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
	api.GET("/metrics", metrics.Handler())

	deps.UserHandler.RegisterPublicRoutes(api)

	authed := api.Group("", middleware.Auth(deps.Signer))
	deps.UserHandler.RegisterRoutes(authed)
	deps.DocumentHandler.RegisterRoutes(authed)

	admin := authed.Group("/admin", middleware.RequireRole(auth.RoleAdministrator))
	deps.UserHandler.RegisterAdminRoutes(admin)
	deps.DocumentHandler.RegisterAdminRoutes(admin)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
