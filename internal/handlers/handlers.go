package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"commentboard/api/internal/config"
	"commentboard/api/internal/middleware"
	"commentboard/api/internal/models"
	"commentboard/api/internal/repository"
	"commentboard/api/internal/security"
	"commentboard/api/internal/service"
)

type HandlerSet struct {
	log      zerolog.Logger
	cfg      *config.AppConfig
	db       *pgxpool.Pool
	cache    *redis.Client
	tokens   *security.TokenService
	auth     *service.AuthService
	comments *service.CommentService
	perms    *service.PermissionService
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	tokens := security.NewTokenService(cfg.Security)
	auth := service.NewAuthService(userRepo, sessionRepo, permissionRepo, tokens, log)
	comments := service.NewCommentService(commentRepo, userRepo, log)
	perms := service.NewPermissionService(permissionRepo, cache, log)

	return HandlerSet{
		log:      log,
		cfg:      cfg,
		db:       db,
		cache:    cache,
		tokens:   tokens,
		auth:     auth,
		comments: comments,
		perms:    perms,
	}
}

// Register wires the routes. Protected routes authenticate first, then check
// the capability; that order makes 401 win over 403 when both gates would
// fail.
func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	auth := router.Group("/auth")
	auth.POST("/signup", h.Signup)
	auth.POST("/login", h.Login)
	auth.POST("/refresh-token", h.Refresh)
	auth.POST("/logout", h.Logout)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)

	comments := router.Group("/comments")
	comments.Use(middleware.Authenticate(h.tokens))
	comments.GET("", middleware.RequirePermission(models.CapabilityRead, h.perms), h.ListComments)
	comments.POST("", middleware.RequirePermission(models.CapabilityWrite, h.perms), h.CreateComment)
	comments.DELETE("/:id", middleware.RequirePermission(models.CapabilityDelete, h.perms), h.DeleteComment)

	users := router.Group("/users")
	users.Use(middleware.Authenticate(h.tokens))
	users.PUT("/permissions/:userId", h.UpdatePermissions)
}
