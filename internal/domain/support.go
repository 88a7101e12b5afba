package domain

import (
	"time"

	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "open"
	TicketStatusInProgress TicketStatus = "in_progress"
	TicketStatusResolved   TicketStatus = "resolved"
	TicketStatusClosed     TicketStatus = "closed"
)

type TicketPriority string

const (
	TicketPriorityLow    TicketPriority = "low"
	TicketPriorityMedium TicketPriority = "medium"
	TicketPriorityHigh   TicketPriority = "high"
)

type SupportTicket struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string         `gorm:"size:140" json:"name"`
	Email         string         `gorm:"size:140;index" json:"email"`
	Phone         string         `gorm:"size:50" json:"phone"`
	Subject       string         `gorm:"size:180" json:"subject"`
	Message       string         `gorm:"type:text" json:"message"`
	Category      string         `gorm:"size:60;index" json:"category"`
	Status        TicketStatus   `gorm:"type:varchar(20);index" json:"status"`
	Priority      TicketPriority `gorm:"type:varchar(10);index" json:"priority"`
	CustomerID    *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	AdminResponse string         `gorm:"type:text" json:"admin_response,omitempty"`
	RespondedAt   *time.Time     `json:"responded_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (t *SupportTicket) Validate() error {
	if t.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if t.Email == "" {
		return &ValidationError{Field: "email", Reason: "required"}
	}
	if t.Message == "" {
		return &ValidationError{Field: "message", Reason: "required"}
	}
	switch t.Priority {
	case "", TicketPriorityLow, TicketPriorityMedium, TicketPriorityHigh:
	default:
		return &ValidationError{Field: "priority", Reason: "unknown priority"}
	}
	return nil
}
