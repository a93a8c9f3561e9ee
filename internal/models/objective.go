package models

import (
	"time"

	"github.com/google/uuid"
)

type ObjectiveValueType string

const (
	ValueFinancial  ObjectiveValueType = "financial"
	ValueQuantity   ObjectiveValueType = "quantity"
	ValuePercentage ObjectiveValueType = "percentage"
)

func ValidValueType(v ObjectiveValueType) bool {
	switch v {
	case ValueFinancial, ValueQuantity, ValuePercentage:
		return true
	}
	return false
}

type ObjectiveStatus string

const (
	StatusOnTrack ObjectiveStatus = "on_track"
	StatusAtRisk  ObjectiveStatus = "at_risk"
	StatusBehind  ObjectiveStatus = "behind"
)

// DataSource tags a commercial objective to the collections its current
// value is aggregated from.
type DataSource string

const (
	SourceCRM     DataSource = "crm"
	SourceClients DataSource = "clients"
)

// Objective is a strategic goal. When IsCommercial is set, CurrentValue is
// derived from the declared data sources on every read and manual progress
// logs are ignored for it; otherwise CurrentValue follows the latest manual
// log. Status is stored for convenience but recomputed on every read - the
// stored copy is never the source of truth.
type Objective struct {
	ID           uuid.UUID          `json:"id"`
	SpaceID      string             `json:"space_id"`
	UserID       uuid.UUID          `json:"user_id"`
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	ValueType    ObjectiveValueType `json:"value_type"`
	TargetValue  float64            `json:"target_value"`
	CurrentValue float64            `json:"current_value"`
	Deadline     time.Time          `json:"deadline"`
	Status       ObjectiveStatus    `json:"status"`
	IsCommercial bool               `json:"is_commercial"`
	DataSources  []string           `json:"data_sources"`
	CreatedAt    time.Time          `json:"created_at"`
	ProgressLogs []*ProgressLog     `json:"progress_logs"`
}

// ProgressLog is a monthly manual entry recording an objective's value at a
// point in time. Unique per (objective_id, month, year); a second submission
// for the same month overwrites.
type ProgressLog struct {
	ID          uuid.UUID `json:"id"`
	ObjectiveID uuid.UUID `json:"objective_id"`
	Month       int       `json:"month"`
	Year        int       `json:"year"`
	Value       float64   `json:"value"`
	Description string    `json:"description"`
	RecordedAt  time.Time `json:"recorded_at"`
}

type CreateObjectiveRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	ValueType    ObjectiveValueType `json:"value_type"`
	TargetValue  float64            `json:"target_value"`
	Deadline     time.Time          `json:"deadline"`
	IsCommercial bool               `json:"is_commercial"`
	DataSources  []string           `json:"data_sources"`
}

type UpdateObjectiveRequest struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	ValueType    ObjectiveValueType `json:"value_type"`
	TargetValue  float64            `json:"target_value"`
	Deadline     time.Time          `json:"deadline"`
	IsCommercial bool               `json:"is_commercial"`
	DataSources  []string           `json:"data_sources"`
}

type SaveProgressLogRequest struct {
	Month       int     `json:"month"`
	Year        int     `json:"year"`
	Value       float64 `json:"value"`
	Description string  `json:"description"`
}

// ObjectiveStats counts objectives per derived status for a space.
type ObjectiveStats struct {
	Total   int `json:"total"`
	OnTrack int `json:"on_track"`
	AtRisk  int `json:"at_risk"`
	Behind  int `json:"behind"`
}
