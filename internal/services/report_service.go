package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"painel-conto/internal/models"
	"painel-conto/internal/timeutil"
	"painel-conto/internal/tracking"
)

// SpaceReportData gathers everything the space report renders.
type SpaceReportData struct {
	Space      *models.Space
	Pipeline   models.PipelineStats
	Objectives []*models.Objective
	ObjStats   models.ObjectiveStats
	Clients    models.ClientStats
	ClientList []*models.Client
}

// ReportService renders the space performance report as PDF or CSV.
type ReportService struct {
	Spaces     *SpaceService
	Leads      *LeadService
	Clients    *ClientService
	Objectives *ObjectiveService
}

func NewReportService(spaces *SpaceService, leads *LeadService, clients *ClientService, objectives *ObjectiveService) *ReportService {
	return &ReportService{
		Spaces:     spaces,
		Leads:      leads,
		Clients:    clients,
		Objectives: objectives,
	}
}

// GetSpaceReportData fetches pipeline, objective and client summaries for
// one space.
func (s *ReportService) GetSpaceReportData(ctx context.Context, spaceID string) (*SpaceReportData, error) {
	space, err := s.Spaces.Get(ctx, spaceID)
	if err != nil {
		return nil, fmt.Errorf("space not found: %w", err)
	}

	pipeline, err := s.Leads.Stats(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	objectives, err := s.Objectives.List(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	clientList, err := s.Clients.List(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	return &SpaceReportData{
		Space:      space,
		Pipeline:   pipeline,
		Objectives: objectives,
		ObjStats:   tracking.ObjectiveStatsFor(objectives),
		Clients:    tracking.ClientStatsFor(clientList),
		ClientList: clientList,
	}, nil
}

var statusLabels = map[models.ObjectiveStatus]string{
	models.StatusOnTrack: "On track",
	models.StatusAtRisk:  "At risk",
	models.StatusBehind:  "Behind",
}

// GenerateSpacePDF renders the space report.
func (s *ReportService) GenerateSpacePDF(ctx context.Context, spaceID string) ([]byte, error) {
	data, err := s.GetSpaceReportData(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("Performance Report - %s", data.Space.Label), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.Now().Format(timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Pipeline section
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Sales Pipeline", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Active leads: %d", data.Pipeline.TotalLeads), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Pipeline value: %.2f", data.Pipeline.TotalValue), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Proposals sent: %d", data.Pipeline.ProposalsSent), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Conversion rate: %d%%", data.Pipeline.ConversionRate), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Deals won: %d", data.Pipeline.WonCount), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Won value: %.2f", data.Pipeline.WonValue), "RB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Objectives table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, fmt.Sprintf("Objectives (%d on track / %d at risk / %d behind)",
		data.ObjStats.OnTrack, data.ObjStats.AtRisk, data.ObjStats.Behind), "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(75, 7, "Objective", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Current", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Target", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Progress", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Status", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, o := range data.Objectives {
		name := o.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		pdf.CellFormat(75, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", o.CurrentValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%.2f", o.TargetValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d%%", tracking.ProgressPercent(o)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, statusLabels[o.Status], "1", 1, "C", false, 0, "")
	}
	pdf.Ln(5)

	// Client base section
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Client Base", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Active: %d", data.Clients.ActiveCount), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("MRR: %.2f", data.Clients.TotalMRR), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Avg NPS: %.1f", data.Clients.AvgNPS), "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(75, 7, "Client", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Monthly Value", "1", 0, "C", true, 0, "")
	pdf.CellFormat(40, 7, "Avg NPS", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Latest NPS", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, c := range data.ClientList {
		name := c.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		latest := "-"
		if score, ok := tracking.LatestNPS(c.NPSHistory); ok {
			latest = fmt.Sprintf("%d", score)
		}
		pdf.CellFormat(75, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.2f", c.MonthlyValue), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, fmt.Sprintf("%.1f", tracking.AverageNPS(c.NPSHistory)), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, latest, "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateSpaceCSV renders the same report as CSV rows.
func (s *ReportService) GenerateSpaceCSV(ctx context.Context, spaceID string) ([]byte, error) {
	data, err := s.GetSpaceReportData(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{
		{"section", "metric", "value"},
		{"pipeline", "active_leads", fmt.Sprintf("%d", data.Pipeline.TotalLeads)},
		{"pipeline", "pipeline_value", fmt.Sprintf("%.2f", data.Pipeline.TotalValue)},
		{"pipeline", "proposals_sent", fmt.Sprintf("%d", data.Pipeline.ProposalsSent)},
		{"pipeline", "conversion_rate", fmt.Sprintf("%d", data.Pipeline.ConversionRate)},
		{"pipeline", "won_count", fmt.Sprintf("%d", data.Pipeline.WonCount)},
		{"pipeline", "won_value", fmt.Sprintf("%.2f", data.Pipeline.WonValue)},
		{"clients", "active", fmt.Sprintf("%d", data.Clients.ActiveCount)},
		{"clients", "inactive", fmt.Sprintf("%d", data.Clients.InactiveCount)},
		{"clients", "churn", fmt.Sprintf("%d", data.Clients.ChurnCount)},
		{"clients", "total_mrr", fmt.Sprintf("%.2f", data.Clients.TotalMRR)},
		{"clients", "avg_ticket", fmt.Sprintf("%.2f", data.Clients.AvgTicket)},
		{"clients", "avg_nps", fmt.Sprintf("%.1f", data.Clients.AvgNPS)},
	}
	for _, o := range data.Objectives {
		records = append(records, []string{
			"objective", o.Name,
			fmt.Sprintf("%.2f/%.2f (%s)", o.CurrentValue, o.TargetValue, o.Status),
		})
	}
	for _, c := range data.ClientList {
		records = append(records, []string{
			"client", c.Name,
			fmt.Sprintf("%.2f (nps %.1f)", c.MonthlyValue, tracking.AverageNPS(c.NPSHistory)),
		})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}
