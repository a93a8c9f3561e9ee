package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"painel-conto/internal/auth"
	"painel-conto/internal/automation"
	"painel-conto/internal/cache"
	"painel-conto/internal/config"
	"painel-conto/internal/database"
	"painel-conto/internal/db"
	"painel-conto/internal/handlers"
	"painel-conto/internal/health"
	h "painel-conto/internal/http"
	"painel-conto/internal/middleware"
	"painel-conto/internal/monitoring"
	"painel-conto/internal/realtime"
	"painel-conto/internal/repositories"
	"painel-conto/internal/services"
)

func main() {
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Connect to PostgreSQL
	pool := db.Connect(cfg)
	defer pool.Close()

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (lists served from database)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Run database migrations
	migrator := database.NewMigrator(pool)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := migrator.RunMigrations(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(pool)

	// Start monitoring stats server in background
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	// Initialize JWT manager
	jwtManager := auth.NewJWTManager(cfg)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(pool)
	permRepo := repositories.NewPermissionRepository(pool)
	spaceRepo := repositories.NewSpaceRepository(pool)
	leadRepo := repositories.NewLeadRepository(pool)
	clientRepo := repositories.NewClientRepository(pool)
	objectiveRepo := repositories.NewObjectiveRepository(pool)

	// Realtime change feed
	hub := realtime.NewHub()
	defer hub.Close()

	// Initialize services
	listTTL := time.Duration(cfg.Cache.ListTTLSeconds) * time.Second
	userService := services.NewUserService(userRepo, permRepo, jwtManager)
	spaceService := services.NewSpaceService(spaceRepo, hub, time.Duration(cfg.Cache.SpaceTTLSeconds)*time.Second)
	leadService := services.NewLeadService(leadRepo, hub, listTTL)
	clientService := services.NewClientService(clientRepo, hub, listTTL)
	objectiveService := services.NewObjectiveService(objectiveRepo, leadRepo, clientRepo, hub, listTTL)
	reportService := services.NewReportService(spaceService, leadService, clientService, objectiveService)

	// Start the proposal follow-up scheduler
	scheduler := automation.NewScheduler(
		leadRepo,
		hub,
		time.Duration(cfg.Automation.ProposalToFollowupHours)*time.Hour,
		time.Duration(cfg.Automation.CheckIntervalMinutes)*time.Minute,
	)
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, permRepo)
	spaceMiddleware := middleware.NewSpaceMiddleware(userService)
	corsMiddleware := middleware.NewCORS(cfg)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	spaceHandler := handlers.NewSpaceHandler(spaceService)
	leadHandler := handlers.NewLeadHandler(leadService)
	clientHandler := handlers.NewClientHandler(clientService)
	objectiveHandler := handlers.NewObjectiveHandler(objectiveService)
	dashboardHandler := handlers.NewDashboardHandler(leadService, clientService, objectiveService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(healthChecker)

	router := h.NewRouter(
		authHandler,
		userHandler,
		spaceHandler,
		leadHandler,
		clientHandler,
		objectiveHandler,
		dashboardHandler,
		reportHandler,
		healthHandler,
		hub,
		authMiddleware,
		spaceMiddleware,
	)

	// Wrap with panic recovery and metrics middleware
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
