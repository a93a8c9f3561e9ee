package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"painel-conto/internal/services"
	"painel-conto/internal/timeutil"
)

type ReportHandler struct {
	Service *services.ReportService
}

func NewReportHandler(service *services.ReportService) *ReportHandler {
	return &ReportHandler{Service: service}
}

func (h *ReportHandler) SpaceReportPDF(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]

	pdf, err := h.Service.GenerateSpacePDF(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("report-%s-%s.pdf", spaceID, timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(pdf)
}

func (h *ReportHandler) SpaceReportCSV(w http.ResponseWriter, r *http.Request) {
	spaceID := mux.Vars(r)["space_id"]

	data, err := h.Service.GenerateSpaceCSV(r.Context(), spaceID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("report-%s-%s.csv", spaceID, timeutil.Now().Format(timeutil.DateLayout))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(data)
}
