package models

import (
	"time"

	"github.com/google/uuid"
)

type LeadStage string

const (
	StageNew         LeadStage = "new"
	StageContact     LeadStage = "contact"
	StageProposal    LeadStage = "proposal"
	StageNegotiation LeadStage = "negotiation"
	StageFollowup    LeadStage = "followup"
	StageWon         LeadStage = "won"
	StageLost        LeadStage = "lost"
)

// ValidStage reports whether s is one of the pipeline stages.
func ValidStage(s LeadStage) bool {
	switch s {
	case StageNew, StageContact, StageProposal, StageNegotiation, StageFollowup, StageWon, StageLost:
		return true
	}
	return false
}

type LeadTemperature string

const (
	TemperatureHot  LeadTemperature = "hot"
	TemperatureWarm LeadTemperature = "warm"
	TemperatureCold LeadTemperature = "cold"
)

type Lead struct {
	ID             uuid.UUID       `json:"id"`
	SpaceID        string          `json:"space_id"`
	UserID         uuid.UUID       `json:"user_id"`
	Name           string          `json:"name"`
	Email          string          `json:"email"`
	Phone          string          `json:"phone"`
	Company        string          `json:"company"`
	Value          float64         `json:"value"`
	Temperature    LeadTemperature `json:"temperature"`
	Stage          LeadStage       `json:"stage"`
	Source         string          `json:"source"`
	Notes          string          `json:"notes"`
	StageChangedAt time.Time       `json:"stage_changed_at"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type CreateLeadRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Company     string          `json:"company"`
	Value       float64         `json:"value"`
	Temperature LeadTemperature `json:"temperature"`
	Stage       LeadStage       `json:"stage"`
	Source      string          `json:"source"`
	Notes       string          `json:"notes"`
}

type UpdateLeadRequest struct {
	Name        string          `json:"name"`
	Email       string          `json:"email"`
	Phone       string          `json:"phone"`
	Company     string          `json:"company"`
	Value       float64         `json:"value"`
	Temperature LeadTemperature `json:"temperature"`
	Source      string          `json:"source"`
	Notes       string          `json:"notes"`
}

type MoveLeadRequest struct {
	Stage LeadStage `json:"stage"`
}

// PipelineStats summarizes the CRM funnel for a space.
type PipelineStats struct {
	TotalLeads     int     `json:"total_leads"`
	TotalValue     float64 `json:"total_value"`
	ProposalsSent  int     `json:"proposals_sent"`
	ConversionRate int     `json:"conversion_rate"`
	InNegotiation  int     `json:"in_negotiation"`
	WonCount       int     `json:"won_count"`
	WonValue       float64 `json:"won_value"`
}
