package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"painel-conto/internal/middleware"
	"painel-conto/internal/models"
	"painel-conto/internal/services"
)

type ObjectiveHandler struct {
	Service *services.ObjectiveService
}

func NewObjectiveHandler(service *services.ObjectiveService) *ObjectiveHandler {
	return &ObjectiveHandler{Service: service}
}

func (h *ObjectiveHandler) ListObjectives(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]

	objectives, err := h.Service.List(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(objectives)
}

func (h *ObjectiveHandler) CreateObjective(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]

	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "User ID not found in context", http.StatusUnauthorized)
		return
	}

	var req models.CreateObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	objective, err := h.Service.Create(r.Context(), spaceID, userID, &req)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(objective)
}

func (h *ObjectiveHandler) UpdateObjective(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["objective_id"])
	if err != nil {
		http.Error(w, "Invalid objective ID", http.StatusBadRequest)
		return
	}

	var req models.UpdateObjectiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	objective, err := h.Service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Objective not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(objective)
}

func (h *ObjectiveHandler) DeleteObjective(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["objective_id"])
	if err != nil {
		http.Error(w, "Invalid objective ID", http.StatusBadRequest)
		return
	}

	if err := h.Service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Objective not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}

// SaveProgressLog records or overwrites the manual value for one month.
func (h *ObjectiveHandler) SaveProgressLog(w http.ResponseWriter, r *http.Request) {
	objectiveID, err := uuid.Parse(mux.Vars(r)["objective_id"])
	if err != nil {
		http.Error(w, "Invalid objective ID", http.StatusBadRequest)
		return
	}

	var req models.SaveProgressLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	entry, err := h.Service.SaveProgressLog(r.Context(), objectiveID, &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Objective not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(entry)
}

func (h *ObjectiveHandler) DeleteProgressLog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	objectiveID, err := uuid.Parse(vars["objective_id"])
	if err != nil {
		http.Error(w, "Invalid objective ID", http.StatusBadRequest)
		return
	}
	month, err := strconv.Atoi(vars["month"])
	if err != nil || month < 1 || month > 12 {
		http.Error(w, "Invalid month", http.StatusBadRequest)
		return
	}
	year, err := strconv.Atoi(vars["year"])
	if err != nil {
		http.Error(w, "Invalid year", http.StatusBadRequest)
		return
	}

	if err := h.Service.DeleteProgressLog(r.Context(), objectiveID, month, year); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			http.Error(w, "Progress log not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}

func (h *ObjectiveHandler) ObjectiveStats(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]

	stats, err := h.Service.Stats(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
