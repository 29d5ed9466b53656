package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/openclass/courseware-backend/internal/authz"
	"github.com/openclass/courseware-backend/internal/config"
	"github.com/openclass/courseware-backend/internal/handler"
	"github.com/openclass/courseware-backend/internal/middleware"
	"github.com/openclass/courseware-backend/internal/model"
	"github.com/openclass/courseware-backend/internal/response"
	"github.com/openclass/courseware-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Group      *handler.GroupHandler
	Course     *handler.CourseHandler
	Content    *handler.ContentHandler
	Enrollment *handler.EnrollmentHandler
}

// ─── Rule tables ────────────────────────────────────────────────────────────
// Each collection declares which groups may perform which actions. Adding a
// capability is a table edit, not new middleware. A user in no group matches
// no rule and is denied everything.

var userRules = []authz.Rule{
	{Groups: []string{model.GroupOfficer}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve, authz.ActionCreate,
		authz.ActionUpdate, authz.ActionPartialUpdate, authz.ActionDestroy,
	}},
}

var groupRules = []authz.Rule{
	{Groups: []string{model.GroupOfficer}, Actions: []string{authz.ActionList}},
}

var courseRules = []authz.Rule{
	{Groups: []string{model.GroupOfficer, model.GroupTeacher}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve, authz.ActionCreate,
		authz.ActionUpdate, authz.ActionPartialUpdate, authz.ActionDestroy,
		authz.ActionOwned,
	}},
	{Groups: []string{model.GroupStudent}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve, authz.ActionOwned,
	}},
}

var contentRules = []authz.Rule{
	{Groups: []string{model.GroupOfficer, model.GroupTeacher}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve, authz.ActionCreate,
		authz.ActionUpdate, authz.ActionPartialUpdate, authz.ActionDestroy,
	}},
	{Groups: []string{model.GroupStudent}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve,
	}},
}

var enrollmentRules = []authz.Rule{
	{Groups: []string{model.GroupOfficer, model.GroupTeacher}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve, authz.ActionCreate,
		authz.ActionDestroy, authz.ActionReject,
	}},
	{Groups: []string{model.GroupStudent}, Actions: []string{
		authz.ActionList, authz.ActionRetrieve, authz.ActionCreate,
		authz.ActionByKey,
	}},
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	resolver middleware.GroupResolver,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for unauthenticated routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Public Group (Rate Limited) ────────────────────────────────
	public := router.Group("/api/v1")
	public.Use(authLimiter.Middleware())
	{
		public.POST("/register", handlers.User.Register)
		public.POST("/auth/login", handlers.Auth.Login)
	}

	// ─── 2. Auth Group (JWT + Session) ─────────────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
	)
	{
		auth.POST("/logout", handlers.Auth.Logout)
		auth.GET("/me", handlers.Auth.Me)
	}

	// ─── 3. API Group (JWT + Session + Rule Tables) ────────────────────
	api := router.Group("/api/v1")
	api.Use(
		middleware.RequireJWT(authService),
		middleware.CheckSession(authService),
	)
	{
		// User management
		api.GET("/users",
			middleware.RequireAction(resolver, userRules, authz.ActionList),
			handlers.User.GetAll,
		)
		api.GET("/users/:id",
			middleware.RequireAction(resolver, userRules, authz.ActionRetrieve),
			handlers.User.Get,
		)
		api.POST("/users",
			middleware.RequireAction(resolver, userRules, authz.ActionCreate),
			handlers.User.Create,
		)
		api.PUT("/users/:id",
			middleware.RequireAction(resolver, userRules, authz.ActionUpdate),
			handlers.User.Update,
		)
		api.PATCH("/users/:id/groups",
			middleware.RequireAction(resolver, userRules, authz.ActionPartialUpdate),
			handlers.User.UpdateGroups,
		)
		api.DELETE("/users/:id",
			middleware.RequireAction(resolver, userRules, authz.ActionDestroy),
			handlers.User.Delete,
		)
		api.POST("/users/:id/reset-session",
			middleware.RequireAction(resolver, userRules, authz.ActionPartialUpdate),
			handlers.User.ResetSession,
		)

		// Groups
		api.GET("/groups",
			middleware.RequireAction(resolver, groupRules, authz.ActionList),
			handlers.Group.GetAll,
		)

		// Courses
		api.GET("/courses",
			middleware.RequireAction(resolver, courseRules, authz.ActionList),
			handlers.Course.GetAll,
		)
		api.GET("/courses/owned",
			middleware.RequireAction(resolver, courseRules, authz.ActionOwned),
			handlers.Course.GetOwned,
		)
		api.GET("/courses/:id",
			middleware.RequireAction(resolver, courseRules, authz.ActionRetrieve),
			handlers.Course.Get,
		)
		api.POST("/courses",
			middleware.RequireAction(resolver, courseRules, authz.ActionCreate),
			handlers.Course.Create,
		)
		api.PUT("/courses/:id",
			middleware.RequireAction(resolver, courseRules, authz.ActionUpdate),
			handlers.Course.Update,
		)
		api.PATCH("/courses/:id",
			middleware.RequireAction(resolver, courseRules, authz.ActionPartialUpdate),
			handlers.Course.Update,
		)
		api.DELETE("/courses/:id",
			middleware.RequireAction(resolver, courseRules, authz.ActionDestroy),
			handlers.Course.Delete,
		)

		// Course contents
		api.GET("/courses/:id/contents",
			middleware.RequireAction(resolver, contentRules, authz.ActionList),
			handlers.Content.GetAll,
		)
		api.POST("/courses/:id/contents",
			middleware.RequireAction(resolver, contentRules, authz.ActionCreate),
			handlers.Content.Create,
		)
		api.PUT("/contents/:id",
			middleware.RequireAction(resolver, contentRules, authz.ActionUpdate),
			handlers.Content.Update,
		)
		api.PATCH("/contents/:id",
			middleware.RequireAction(resolver, contentRules, authz.ActionPartialUpdate),
			handlers.Content.Update,
		)
		api.DELETE("/contents/:id",
			middleware.RequireAction(resolver, contentRules, authz.ActionDestroy),
			handlers.Content.Delete,
		)

		// Enrollment requests
		api.GET("/enroll-requests",
			middleware.RequireAction(resolver, enrollmentRules, authz.ActionList),
			handlers.Enrollment.GetAll,
		)
		api.POST("/enroll-requests",
			middleware.RequireAction(resolver, enrollmentRules, authz.ActionCreate),
			handlers.Enrollment.Create,
		)
		api.POST("/enroll-requests/bykey",
			middleware.RequireAction(resolver, enrollmentRules, authz.ActionByKey),
			handlers.Enrollment.ByKey,
		)
		api.DELETE("/enroll-requests/:id",
			middleware.RequireAction(resolver, enrollmentRules, authz.ActionDestroy),
			handlers.Enrollment.Approve,
		)
		api.POST("/enroll-requests/:id/reject",
			middleware.RequireAction(resolver, enrollmentRules, authz.ActionReject),
			handlers.Enrollment.Reject,
		)
	}

	return router
}
