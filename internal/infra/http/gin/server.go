package gin

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/moura95/account-auth/docs"
	"github.com/moura95/account-auth/internal/domain/avatar"
	"github.com/moura95/account-auth/internal/infra/config"
	"github.com/moura95/account-auth/internal/infra/metrics"
	"github.com/moura95/account-auth/internal/interfaces/http/handlers"
	"github.com/moura95/account-auth/internal/interfaces/http/middlewares"
)

const (
	readHeaderTimeout = 5 * time.Second
	readTimeout       = 15 * time.Second
	writeTimeout      = 30 * time.Second

	// Room for the JSON fields around a base64 avatar.
	bodyHeadroom = 64 << 10
)

// Dependencies are the application services the router exposes.
type Dependencies struct {
	AuthService   handlers.AuthService
	UserService   handlers.UserService
	TokenVerifier middlewares.TokenVerifier
	Metrics       *metrics.Metrics
	// AvatarDir is served under /avatars when set.
	AvatarDir string
}

type Server struct {
	router *gin.Engine
	http   *http.Server
	config *config.Config
	logger *zap.SugaredLogger
}

// @title           Account Auth
// @version         1.0
// @description     Account registration and authentication API

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func NewServer(cfg config.Config, deps Dependencies, log *zap.SugaredLogger) *Server {
	server := &Server{
		config: &cfg,
		logger: log,
	}

	router := gin.New()
	router.Use(middlewares.Recovery(log), middlewares.RequestLogger(log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware())
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AddAllowHeaders("Authorization")
	corsConfig.AddAllowHeaders("Content-Type")
	router.Use(cors.New(corsConfig))

	router.GET("/healthz", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	if deps.Metrics != nil {
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	if deps.AvatarDir != "" {
		router.Static("/avatars", deps.AvatarDir)
	}

	createRoutes(router, deps, maxBodyBytes(cfg.AvatarMaxBytes))

	server.router = router
	server.http = &http.Server{
		Addr:              cfg.HTTPServerAddress,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
	}
	return server
}

// maxBodyBytes is the largest body an avatar of avatarMaxBytes can arrive
// in: base64 grows it by 4/3.
func maxBodyBytes(avatarMaxBytes int) int64 {
	if avatarMaxBytes <= 0 {
		avatarMaxBytes = avatar.DefaultMaxBytes
	}
	return int64(avatarMaxBytes)*4/3 + bodyHeadroom
}

func createRoutes(router *gin.Engine, deps Dependencies, bodyLimit int64) {
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	userHandler := handlers.NewUserHandler(deps.UserService)

	// Public routes
	api := router.Group("/api")
	api.Use(middlewares.BodyLimit(bodyLimit))
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", authHandler.Register)
			authRoutes.POST("/login", authHandler.Login)
		}
	}

	// Protected routes
	protected := api.Group("")
	protected.Use(middlewares.AuthMiddleware(deps.TokenVerifier))
	{
		account := protected.Group("/account")
		{
			account.GET("/me", userHandler.GetProfile)
			account.PUT("/me", userHandler.UpdateProfile)
			account.PUT("/me/avatar", userHandler.UpdateAvatar)
			account.DELETE("/me", userHandler.DeleteProfile)
		}

		protected.GET("/users", userHandler.ListUsers)
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. A graceful Shutdown is not an error.
func (s *Server) Start() error {
	s.logger.Infow("starting http server", "address", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.http.Shutdown(ctx)
}
