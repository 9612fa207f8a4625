package main

import (
	"context"
	"log"
	"net/http"

	_ "gymgate/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"gymgate/internal/auth"
	"gymgate/internal/cache"
	"gymgate/internal/config"
	"gymgate/internal/handler"
	"gymgate/internal/repository"
	"gymgate/internal/router"
	"gymgate/internal/service"
	"gymgate/internal/storage"
)

const (
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// @title Gym Management API
// @version 1.0
// @description Gym management API with member subscriptions, barcode check-in, equipment tracking, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	ctx := context.Background()

	e := echo.New()
	e.Use(middleware.RequestID())

	store, err := storage.Open(ctx, cfg.DatabasePath, cfg.PoolSize)
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		log.Fatalf("schema migration: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	memberRepo := repository.NewMemberRepository()
	planRepo := repository.NewPlanRepository()
	equipmentRepo := repository.NewEquipmentRepository()
	visitRepo := repository.NewVisitRepository()
	reportRepo := repository.NewReportRepository()

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Initialize services
	authService := service.NewAuthService(store, userRepo, jwtService, tokenStore)
	memberService := service.NewMemberService(store, memberRepo, planRepo)
	visitService := service.NewVisitService(store, memberRepo, visitRepo)
	planService := service.NewPlanService(store, planRepo)
	equipmentService := service.NewEquipmentService(store, equipmentRepo)
	reportService := service.NewReportService(store, reportRepo)
	backupService := service.NewBackupService(store, cfg.BackupDir)

	// A fresh database gets a default admin so the first login is possible.
	created, err := authService.EnsureDefaultAdmin(ctx, defaultAdminUsername, defaultAdminPassword)
	if err != nil {
		log.Fatalf("ensure default admin: %v", err)
	}
	if created {
		log.Printf("created default admin account %q, change its password after first login", defaultAdminUsername)
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	memberHandler := handler.NewMemberHandler(memberService)
	visitHandler := handler.NewVisitHandler(visitService)
	planHandler := handler.NewPlanHandler(planService)
	equipmentHandler := handler.NewEquipmentHandler(equipmentService)
	reportHandler := handler.NewReportHandler(reportService)
	backupHandler := handler.NewBackupHandler(backupService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenStore,
		authHandler,
		memberHandler,
		visitHandler,
		planHandler,
		equipmentHandler,
		reportHandler,
		backupHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
