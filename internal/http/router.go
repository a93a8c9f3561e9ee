package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"painel-conto/internal/handlers"
	"painel-conto/internal/middleware"
	"painel-conto/internal/models"
	"painel-conto/internal/realtime"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	spaceHandler *handlers.SpaceHandler,
	leadHandler *handlers.LeadHandler,
	clientHandler *handlers.ClientHandler,
	objectiveHandler *handlers.ObjectiveHandler,
	dashboardHandler *handlers.DashboardHandler,
	reportHandler *handlers.ReportHandler,
	healthHandler *handlers.HealthHandler,
	hub *realtime.Hub,
	authMiddleware *middleware.AuthMiddleware,
	spaceMiddleware *middleware.SpaceMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Spaces (create/delete is admin only)
	spacesAPI := r.PathPrefix("/api/spaces").Subrouter()
	spacesAPI.Use(authMiddleware.Authenticate)
	spacesAPI.HandleFunc("", spaceHandler.ListSpaces).Methods("GET")

	adminSpacesAPI := r.PathPrefix("/api/spaces").Subrouter()
	adminSpacesAPI.Use(authMiddleware.RequireAdmin)
	adminSpacesAPI.HandleFunc("", spaceHandler.CreateSpace).Methods("POST")
	adminSpacesAPI.HandleFunc("/{space_id}", spaceHandler.DeleteSpace).Methods("DELETE")

	// Protected API routes - per-space data. Every route below carries the
	// space id in the path and passes the access check before touching data.
	spaceAPI := r.PathPrefix("/api/spaces/{space_id}").Subrouter()
	spaceAPI.Use(authMiddleware.Authenticate, spaceMiddleware.RequireSpaceAccess)

	// Leads (crm module)
	leadsAPI := spaceAPI.PathPrefix("/leads").Subrouter()
	leadsAPI.Use(spaceMiddleware.RequireModule(models.ModuleCRM))
	leadsAPI.HandleFunc("", leadHandler.ListLeads).Methods("GET")
	leadsAPI.HandleFunc("", leadHandler.CreateLead).Methods("POST")
	leadsAPI.HandleFunc("/stats", leadHandler.PipelineStats).Methods("GET")
	leadsAPI.HandleFunc("/{lead_id}", leadHandler.UpdateLead).Methods("PUT")
	leadsAPI.HandleFunc("/{lead_id}/stage", leadHandler.MoveLead).Methods("PATCH")
	leadsAPI.HandleFunc("/{lead_id}", leadHandler.DeleteLead).Methods("DELETE")

	// Clients and NPS
	clientsAPI := spaceAPI.PathPrefix("/clients").Subrouter()
	clientsAPI.Use(spaceMiddleware.RequireModule(models.ModuleClients))
	clientsAPI.HandleFunc("", clientHandler.ListClients).Methods("GET")
	clientsAPI.HandleFunc("", clientHandler.CreateClient).Methods("POST")
	clientsAPI.HandleFunc("/stats", clientHandler.ClientStats).Methods("GET")
	clientsAPI.HandleFunc("/{client_id}", clientHandler.UpdateClient).Methods("PUT")
	clientsAPI.HandleFunc("/{client_id}", clientHandler.DeleteClient).Methods("DELETE")
	clientsAPI.HandleFunc("/{client_id}/nps", clientHandler.SaveNPS).Methods("POST")
	clientsAPI.HandleFunc("/{client_id}/nps/{record_id}", clientHandler.DeleteNPS).Methods("DELETE")

	// Objectives and progress logs
	objectivesAPI := spaceAPI.PathPrefix("/objectives").Subrouter()
	objectivesAPI.Use(spaceMiddleware.RequireModule(models.ModuleObjectives))
	objectivesAPI.HandleFunc("", objectiveHandler.ListObjectives).Methods("GET")
	objectivesAPI.HandleFunc("", objectiveHandler.CreateObjective).Methods("POST")
	objectivesAPI.HandleFunc("/stats", objectiveHandler.ObjectiveStats).Methods("GET")
	objectivesAPI.HandleFunc("/{objective_id}", objectiveHandler.UpdateObjective).Methods("PUT")
	objectivesAPI.HandleFunc("/{objective_id}", objectiveHandler.DeleteObjective).Methods("DELETE")
	objectivesAPI.HandleFunc("/{objective_id}/progress", objectiveHandler.SaveProgressLog).Methods("POST")
	objectivesAPI.HandleFunc("/{objective_id}/progress/{year}/{month}", objectiveHandler.DeleteProgressLog).Methods("DELETE")

	// Dashboard and reports
	dashboardAPI := spaceAPI.PathPrefix("/dashboard").Subrouter()
	dashboardAPI.Use(spaceMiddleware.RequireModule(models.ModuleDashboard))
	dashboardAPI.HandleFunc("/stats", dashboardHandler.GetStats).Methods("GET")

	reportsAPI := spaceAPI.PathPrefix("/reports").Subrouter()
	reportsAPI.Use(spaceMiddleware.RequireModule(models.ModuleDashboard))
	reportsAPI.HandleFunc("/pipeline.pdf", reportHandler.SpaceReportPDF).Methods("GET")
	reportsAPI.HandleFunc("/pipeline.csv", reportHandler.SpaceReportCSV).Methods("GET")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireRole(models.RoleAdmin))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{user_id}/role", userHandler.SetRole).Methods("PUT")
	usersAPI.HandleFunc("/{user_id}/permissions", userHandler.SetPermissions).Methods("PUT")

	// Realtime change feed
	wsAPI := r.PathPrefix("/ws").Subrouter()
	wsAPI.Use(authMiddleware.Authenticate)
	wsAPI.HandleFunc("", hub.HandleWS).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
