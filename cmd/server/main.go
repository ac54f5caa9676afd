package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcatalog "github.com/shop/backend/internal/application/catalog"
	appexternal "github.com/shop/backend/internal/application/external"
	appidentity "github.com/shop/backend/internal/application/identity"
	"github.com/shop/backend/internal/infrastructure/auth"
	"github.com/shop/backend/internal/infrastructure/cache"
	"github.com/shop/backend/internal/infrastructure/config"
	"github.com/shop/backend/internal/infrastructure/logger"
	"github.com/shop/backend/internal/infrastructure/persistence"
	"github.com/shop/backend/internal/infrastructure/upstream"
	"github.com/shop/backend/internal/interfaces/http/handler"
	"github.com/shop/backend/internal/interfaces/http/middleware"
	"github.com/shop/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)

	// Upstream fetch layer with its response cache
	var upstreamCache cache.Store
	if cfg.Redis.Enabled {
		redisStore := cache.NewRedisStore(cfg.Redis, cfg.Upstream.CacheTTL, log)
		defer func() { _ = redisStore.Close() }()
		upstreamCache = redisStore
		log.Info("Using Redis upstream cache", zap.String("addr", cfg.Redis.Addr()))
	} else {
		upstreamCache = cache.NewMemoryStore(
			cache.WithTTL(cfg.Upstream.CacheTTL),
			cache.WithLogger(log),
		)
	}

	fetcher := upstream.NewFetcher(cfg.Upstream, upstreamCache, log)
	fakeStore := upstream.NewFakeStoreClient(fetcher, cfg.Upstream.FakeStoreBaseURL, log)
	dummyJSON := upstream.NewDummyJSONClient(fetcher, cfg.Upstream.DummyJSONBaseURL, log)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := appidentity.NewAuthService(userRepo, jwtService, log)
	userService := appidentity.NewUserService(userRepo, log)
	productService := appcatalog.NewProductService(productRepo, log)
	externalService := appexternal.NewService(fakeStore, dummyJSON, upstreamCache, log)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	productHandler := handler.NewProductHandler(productService)
	externalHandler := handler.NewExternalProductHandler(externalService, cfg.IsProduction(), log)
	systemHandler := handler.NewSystemHandler(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	middleware.SetupValidator()

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	jwtConfig := middleware.DefaultJWTConfig(jwtService)
	jwtConfig.Logger = log
	engine.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))

	r := router.NewRouter(engine)
	r.Register(authRoutes(authHandler))
	r.Register(userRoutes(userHandler))
	r.Register(productRoutes(productHandler))
	r.Register(adminRoutes(productHandler))
	r.Register(externalRoutes(externalHandler))
	r.Register(systemRoutes(systemHandler))
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

func authRoutes(h *handler.AuthHandler) router.RouteRegistrar {
	g := router.NewDomainGroup("auth", "/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	return g
}

func userRoutes(h *handler.UserHandler) router.RouteRegistrar {
	g := router.NewDomainGroup("users", "/users")
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	return g
}

func productRoutes(h *handler.ProductHandler) router.RouteRegistrar {
	g := router.NewDomainGroup("products", "/products")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", middleware.RequireRole("seller", "admin"), h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}

func adminRoutes(h *handler.ProductHandler) router.RouteRegistrar {
	g := router.NewDomainGroup("admin", "/admin")
	g.Use(middleware.RequireRole("admin"))
	g.GET("/products", h.List)
	g.PUT("/products/:id/status", h.UpdateStatus)
	return g
}

func externalRoutes(h *handler.ExternalProductHandler) router.RouteRegistrar {
	g := router.NewDomainGroup("external", "/external")
	g.GET("/products", h.Facet("all"))
	for _, name := range appexternal.Facets() {
		if name == "all" {
			continue
		}
		g.GET("/products/"+name, h.Facet(name))
	}
	g.GET("/products/:id", h.ProductByID)
	return g
}

func systemRoutes(h *handler.SystemHandler) router.RouteRegistrar {
	g := router.NewDomainGroup("system", "/health")
	g.GET("", h.Health)
	return g
}
