package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"painel-conto/internal/models"
	"painel-conto/internal/services"
)

// DashboardHandler serves the combined stats payload the dashboard renders
// in one request.
type DashboardHandler struct {
	Leads      *services.LeadService
	Clients    *services.ClientService
	Objectives *services.ObjectiveService
}

func NewDashboardHandler(leads *services.LeadService, clients *services.ClientService, objectives *services.ObjectiveService) *DashboardHandler {
	return &DashboardHandler{
		Leads:      leads,
		Clients:    clients,
		Objectives: objectives,
	}
}

type dashboardStats struct {
	Objectives models.ObjectiveStats `json:"objectives"`
	Pipeline   models.PipelineStats  `json:"pipeline"`
	Clients    models.ClientStats    `json:"clients"`
}

func (h *DashboardHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]

	objStats, err := h.Objectives.Stats(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	pipeline, err := h.Leads.Stats(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	clients, err := h.Clients.Stats(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(dashboardStats{
		Objectives: objStats,
		Pipeline:   pipeline,
		Clients:    clients,
	})
}
