package api

import (
	"context"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/cinevault/catalog-api/internal/api/handler"
	"github.com/cinevault/catalog-api/internal/api/middleware"
	"github.com/cinevault/catalog-api/internal/core/domain"
	"github.com/cinevault/catalog-api/internal/core/ports"
	"github.com/cinevault/catalog-api/internal/core/service"
	mongostore "github.com/cinevault/catalog-api/internal/infrastructure/db/mongo"
	redisstore "github.com/cinevault/catalog-api/internal/infrastructure/db/redis"
	"github.com/cinevault/catalog-api/internal/infrastructure/session"
)

// RouterConfig carries the settings the router needs beyond its store handles.
type RouterConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg RouterConfig, audit ports.AuditSink, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("cinevault"))
	e.Use(middleware.Session())

	// --- Dependencies ---
	revocations := redisstore.NewRevocationStore(rdb)
	sessions := session.NewJWTProvider(cfg.JWTSecret, cfg.SessionTTL, revocations)

	identities := mongostore.NewIdentityRepository(db)
	authz := service.NewAuthzService(sessions, identities, audit, log)

	allowlistSvc := service.NewAllowlistService(mongostore.NewAllowlistRepository(db), log)
	authSvc := service.NewAuthService(identities, allowlistSvc, sessions, log)

	movieRepo := mongostore.NewMovieRepository(db)
	movieSvc := service.NewMovieService(movieRepo, authz, log)
	genreSvc := service.NewGenreService(mongostore.NewGenreRepository(db), log)
	favoriteSvc := service.NewFavoriteService(mongostore.NewFavoriteRepository(db), movieRepo, authz, log)

	authHandler := handler.NewAuthHandler(authSvc, authz)
	allowlistHandler := handler.NewAllowlistHandler(allowlistSvc)
	movieHandler := handler.NewMovieHandler(movieSvc)
	genreHandler := handler.NewGenreHandler(genreSvc)
	favoriteHandler := handler.NewFavoriteHandler(favoriteSvc)

	// --- Auth routes ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/logout", authHandler.Logout)
	e.GET("/v1/me", authHandler.Me)
	e.GET("/v1/me/permissions", authHandler.MyPermissions)

	// --- Catalog: public reads, guarded writes ---
	e.GET("/v1/movies", movieHandler.List)
	e.GET("/v1/movies/:id", movieHandler.Get)
	e.POST("/v1/movies", middleware.WithGuard("movie_create", permissionGuard(authz, domain.ActionCreate, domain.ResourceMovie), movieHandler.Create))
	e.PUT("/v1/movies/:id", middleware.WithGuard("movie_update", permissionGuard(authz, domain.ActionUpdate, domain.ResourceMovie), movieHandler.Update))
	e.DELETE("/v1/movies/:id", middleware.WithGuard("movie_delete", permissionGuard(authz, domain.ActionDelete, domain.ResourceMovie), movieHandler.Delete))

	e.GET("/v1/genres", genreHandler.List)
	e.POST("/v1/genres", middleware.WithGuard("genre_create", permissionGuard(authz, domain.ActionCreate, domain.ResourceGenre), genreHandler.Create))
	e.DELETE("/v1/genres/:id", middleware.WithGuard("genre_delete", permissionGuard(authz, domain.ActionDelete, domain.ResourceGenre), genreHandler.Delete))

	// --- Favorites: identity and ownership enforced in the service ---
	e.GET("/v1/favorites", favoriteHandler.List)
	e.POST("/v1/favorites", favoriteHandler.Add)
	e.DELETE("/v1/favorites/:id", favoriteHandler.Remove)

	// --- Admin surface ---
	admin := e.Group("/v1/admin", middleware.Guard("admin", authz.RequireAdmin))
	admin.GET("/allowlist", allowlistHandler.List)
	admin.POST("/allowlist", allowlistHandler.Add)
	admin.DELETE("/allowlist", allowlistHandler.Remove)

	// --- Observability (no auth required) ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	return e
}

// permissionGuard adapts a matrix permission check to the guard middleware.
func permissionGuard(authz ports.Authorizer, action, resource string) middleware.GuardFunc {
	return func(ctx context.Context) (*domain.Principal, error) {
		return authz.RequirePermission(ctx, action, resource)
	}
}
