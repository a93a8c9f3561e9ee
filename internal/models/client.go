package models

import (
	"time"

	"github.com/google/uuid"
)

type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
	ClientChurn    ClientStatus = "churn"
)

func ValidClientStatus(s ClientStatus) bool {
	switch s {
	case ClientActive, ClientInactive, ClientChurn:
		return true
	}
	return false
}

type Client struct {
	ID           uuid.UUID    `json:"id"`
	SpaceID      string       `json:"space_id"`
	UserID       uuid.UUID    `json:"user_id"`
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Company      string       `json:"company"`
	MonthlyValue float64      `json:"monthly_value"`
	Status       ClientStatus `json:"status"`
	StartDate    time.Time    `json:"start_date"`
	CreatedAt    time.Time    `json:"created_at"`
	NPSHistory   []*NPSRecord `json:"nps_history"`
}

// NPSRecord is one monthly satisfaction score for a client. At most one
// record per (client_id, month, year); saving the same month again overwrites.
type NPSRecord struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"client_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	Score      int       `json:"score"`
	Comment    string    `json:"comment"`
	RecordedAt time.Time `json:"recorded_at"`
}

type CreateClientRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Company      string       `json:"company"`
	MonthlyValue float64      `json:"monthly_value"`
	Status       ClientStatus `json:"status"`
	StartDate    time.Time    `json:"start_date"`
}

type UpdateClientRequest struct {
	Name         string       `json:"name"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Company      string       `json:"company"`
	MonthlyValue float64      `json:"monthly_value"`
	Status       ClientStatus `json:"status"`
	StartDate    time.Time    `json:"start_date"`
}

type SaveNPSRequest struct {
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Score   int    `json:"score"`
	Comment string `json:"comment"`
}

// ClientStats summarizes the client base for a space.
type ClientStats struct {
	ActiveCount   int     `json:"active_count"`
	InactiveCount int     `json:"inactive_count"`
	ChurnCount    int     `json:"churn_count"`
	TotalMRR      float64 `json:"total_mrr"`
	AvgTicket     float64 `json:"avg_ticket"`
	AvgNPS        float64 `json:"avg_nps"`
}
