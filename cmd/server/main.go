package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	backupapp "github.com/debtledger/backend/internal/application/backup"
	identityapp "github.com/debtledger/backend/internal/application/identity"
	ledgerapp "github.com/debtledger/backend/internal/application/ledger"
	reportapp "github.com/debtledger/backend/internal/application/report"
	settingsapp "github.com/debtledger/backend/internal/application/settings"
	"github.com/debtledger/backend/internal/domain/identity"
	"github.com/debtledger/backend/internal/domain/ledger"
	"github.com/debtledger/backend/internal/infrastructure/auth"
	"github.com/debtledger/backend/internal/infrastructure/config"
	"github.com/debtledger/backend/internal/infrastructure/event"
	"github.com/debtledger/backend/internal/infrastructure/logger"
	"github.com/debtledger/backend/internal/infrastructure/persistence"
	"github.com/debtledger/backend/internal/interfaces/http/handler"
	"github.com/debtledger/backend/internal/interfaces/http/middleware"
	"github.com/debtledger/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const sessionCleanupInterval = time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Debt Ledger Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database connection with a GORM logger backed by zap
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db)
	sessionRepo := persistence.NewGormSessionRepository(db)
	entityRepo := persistence.NewGormEntityRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	settingsRepo := persistence.NewGormSettingsRepository(db)
	auditRepo := persistence.NewGormAuditRepository(db)

	// Event bus with the SSE broadcaster as a wildcard subscriber
	eventBus := event.NewInMemoryEventBus(log)
	broadcaster := event.NewBroadcaster(cfg.Events.BufferSize, cfg.Events.MaxClients, log)
	eventBus.Subscribe(broadcaster)

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, sessionRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, sessionRepo, auditRepo, db, eventBus, log)
	ledgerService := ledgerapp.NewService(entityRepo, transactionRepo, auditRepo, db, eventBus, log)
	settingsService := settingsapp.NewService(settingsRepo, auditRepo, db, eventBus, log)
	reportService := reportapp.NewService(entityRepo, transactionRepo, log)
	backupService := backupapp.NewService(userRepo, entityRepo, transactionRepo, settingsRepo, auditRepo, db, eventBus, log)

	// Optional Redis token blacklist so logout revokes tokens immediately
	if cfg.RedisEnabled() {
		blacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		authService.SetTokenBlacklist(blacklist)
		userService.SetTokenBlacklist(blacklist, cfg.JWT.TokenExpiration)
		log.Info("Redis token blacklist enabled", zap.String("addr", cfg.Redis.RedisAddr()))
	}

	// Bootstrap the first administrator when none exists
	if err := ensureAdminUser(context.Background(), userRepo, cfg, log); err != nil {
		log.Fatal("Failed to bootstrap admin user", zap.Error(err))
	}

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	// Middleware stack, outermost first
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		defer limiter.Stop()
		engine.Use(middleware.RateLimit(limiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Handlers
	handlers := router.Handlers{
		System:    handler.NewSystemHandler(db),
		Auth:      handler.NewAuthHandler(authService, cfg.Cookie),
		Users:     handler.NewUserHandler(userService),
		Suppliers: handler.NewEntityHandler(ledgerService, ledger.EntityKindSupplier),
		Customers: handler.NewEntityHandler(ledgerService, ledger.EntityKindCustomer),
		Settings:  handler.NewSettingsHandler(settingsService),
		Reports:   handler.NewReportHandler(reportService),
		Backup:    handler.NewBackupHandler(backupService),
		Events:    handler.NewEventsHandler(broadcaster, cfg.Events.HeartbeatInterval, log),
	}

	opts := []router.RouterOption{router.WithAPIVersion("v1")}
	if cfg.HTTP.AuthRateLimitEnabled {
		authLimiter := middleware.NewRateLimiter(cfg.HTTP.AuthRateLimitRequests, cfg.HTTP.AuthRateLimitWindow)
		defer authLimiter.Stop()
		opts = append(opts, router.WithAuthRateLimiter(authLimiter))
		log.Info("Login rate limiting enabled",
			zap.Int("requests", cfg.HTTP.AuthRateLimitRequests),
			zap.Duration("window", cfg.HTTP.AuthRateLimitWindow),
		)
	}
	router.NewRouter(engine, handlers, authService, opts...).Setup()

	// Periodic cleanup of expired session rows
	cleanupCtx, stopCleanup := context.WithCancel(context.Background())
	defer stopCleanup()
	go runSessionCleanup(cleanupCtx, authService, log)

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// ensureAdminUser creates the configured bootstrap administrator when no
// active admin exists. Without configured credentials it only logs a
// warning, since a fresh deployment cannot be used until one is created.
func ensureAdminUser(ctx context.Context, userRepo identity.UserRepository, cfg *config.Config, log *zap.Logger) error {
	count, err := userRepo.CountActiveAdmins(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if cfg.App.AdminEmail == "" || cfg.App.AdminPassword == "" {
		log.Warn("No active admin user exists and no bootstrap credentials are configured")
		return nil
	}

	admin, err := identity.NewUser(cfg.App.AdminEmail, "Administrator", cfg.App.AdminPassword, identity.RoleAdmin)
	if err != nil {
		return err
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Info("Bootstrap admin user created", zap.String("email", admin.Email))
	return nil
}

// runSessionCleanup deletes expired session rows on a fixed interval.
func runSessionCleanup(ctx context.Context, authService *identityapp.AuthService, log *zap.Logger) {
	ticker := time.NewTicker(sessionCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := authService.CleanupExpiredSessions(ctx)
			if err != nil {
				log.Error("Session cleanup failed", zap.Error(err))
				continue
			}
			if removed > 0 {
				log.Info("Expired sessions removed", zap.Int64("count", removed))
			}
		}
	}
}
