package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5"

	"painel-conto/internal/models"
	"painel-conto/internal/services"
)

type SpaceHandler struct {
	Service *services.SpaceService
}

func NewSpaceHandler(service *services.SpaceService) *SpaceHandler {
	return &SpaceHandler{Service: service}
}

func (h *SpaceHandler) ListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := h.Service.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(spaces)
}

func (h *SpaceHandler) CreateSpace(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSpaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	space, err := h.Service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateSpace) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(space)
}

func (h *SpaceHandler) DeleteSpace(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["space_id"]

	if err := h.Service.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, services.ErrLastSpace):
			http.Error(w, err.Error(), http.StatusConflict)
		case errors.Is(err, pgx.ErrNoRows):
			http.Error(w, "Space not found", http.StatusNotFound)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "deleted"})
}
