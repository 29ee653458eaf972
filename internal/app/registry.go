package app

import (
	"context"
	"database/sql"

	"go-directory/internal/admin"
	"go-directory/internal/asset"
	"go-directory/internal/auth"
	"go-directory/internal/company"
	"go-directory/internal/config"
	"go-directory/internal/credential"
	"go-directory/internal/messaging/kafka"
	"go-directory/internal/middleware"
	"go-directory/internal/provisioning"
	"go-directory/internal/rbac"
	"go-directory/internal/rbac/infra"
	"go-directory/internal/shared/database"
	"go-directory/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type modules struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	redis  *redis.Client
	store  asset.BlobStore
}

func registerModules(ctx context.Context, router *gin.Engine, cfg *config.Config, m modules) error {
	logger := zap.L()

	// --- Shared Infrastructure ---
	hasher := credential.NewHasher(cfg.BcryptCost)
	tx := database.NewTransactor(m.gormDB, cfg.ProvisioningTx)
	resolver := asset.NewResolver(cfg.BaseURL)
	uploader := asset.NewUploader(m.store, logger)

	tokens, err := auth.NewTokenManager(cfg.SigningKeys)
	if err != nil {
		return err
	}

	// --- Repositories ---
	adminRepo := admin.NewRepository(m.gormDB)
	companyRepo := company.NewRepository(m.gormDB)
	userRepo := user.NewRepository(m.gormDB)
	outboxRepo := kafka.NewOutboxRepository(m.sqlDB)

	if err := admin.EnsureSuperAdmin(ctx, adminRepo, hasher, cfg.SuperAdminEmail, cfg.SuperAdminPassword, logger.Named("admin.seed")); err != nil {
		return err
	}

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer()
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(enforcer, logger)

	// --- Services ---
	authService := auth.NewService(adminRepo, userRepo, companyRepo, hasher, tokens, cfg.TokenTTL, logger)
	companyService := company.NewService(tx, companyRepo, adminRepo, outboxRepo, uploader, resolver, logger)
	userService := user.NewService(tx, userRepo, companyRepo, outboxRepo, hasher, uploader, resolver, logger)
	provisioningService := provisioning.NewService(tx, companyRepo, adminRepo, userRepo, outboxRepo, hasher, uploader, resolver, logger)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService, logger)
	userHandler := user.NewHandler(userService, logger)
	provisioningHandler := provisioning.NewHandler(provisioningService, logger)
	rbacHandler := rbac.NewHandler(rbacService)
	assetHandler := asset.NewHandler(m.store, logger)

	// Idempotency needs a live client; a nil pointer must not become a
	// non-nil interface.
	var idempotencyStore redis.Cmdable
	if m.redis != nil {
		idempotencyStore = m.redis
	}

	// --- Routes Registration ---
	router.Use(middleware.RequestID())
	router.Static("/uploads", cfg.StaticDir)

	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, tokens)
		provisioning.RegisterRoutes(api, provisioningHandler, tokens, rbacService, idempotencyStore, cfg.IdempotencyTTL, logger)
		company.RegisterRoutes(api, companyHandler, tokens, rbacService)
		user.RegisterRoutes(api, userHandler, tokens, rbacService, logger)
		rbac.RegisterRoutes(api, rbacHandler, tokens)
		asset.RegisterRoutes(api, assetHandler)
	}

	return nil
}
