package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sparkkart/storefront/internal/domain"
	"github.com/sparkkart/storefront/internal/messaging"
)

type SupportUC struct {
	Tickets   domain.SupportRepo
	Publisher messaging.Publisher
}

func (uc *SupportUC) Create(ctx context.Context, t *domain.SupportTicket) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	t.Status = domain.TicketStatusOpen
	if t.Priority == "" {
		t.Priority = domain.TicketPriorityMedium
	}
	return uc.Tickets.Save(ctx, t)
}

// Respond records the admin reply and closes out the given status. A linked
// customer gets a notification through the event pipeline.
func (uc *SupportUC) Respond(ctx context.Context, id uuid.UUID, response string, status domain.TicketStatus) (*domain.SupportTicket, error) {
	if response == "" {
		return nil, &domain.ValidationError{Field: "response", Reason: "required"}
	}
	switch status {
	case domain.TicketStatusInProgress, domain.TicketStatusResolved, domain.TicketStatusClosed:
	default:
		return nil, &domain.ValidationError{Field: "status", Reason: "unknown status"}
	}
	t, err := uc.Tickets.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	t.AdminResponse = response
	t.RespondedAt = &now
	t.Status = status
	if err := uc.Tickets.Save(ctx, t); err != nil {
		return nil, err
	}
	if t.CustomerID != nil && uc.Publisher != nil {
		event := domain.SupportRepliedEvent{TicketID: t.ID, CustomerID: *t.CustomerID, Subject: t.Subject, RepliedAt: now}
		if err := uc.Publisher.PublishEvent(ctx, messaging.TopicSupportReplied, t.ID.String(), event); err != nil {
			log.Error().Err(err).Str("ticket_id", t.ID.String()).Msg("publish support reply")
		}
	}
	return t, nil
}

func (uc *SupportUC) Get(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	return uc.Tickets.FindByID(ctx, id)
}

func (uc *SupportUC) List(ctx context.Context, f domain.TicketFilter) ([]domain.SupportTicket, int64, error) {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	return uc.Tickets.List(ctx, f)
}

func (uc *SupportUC) Mine(ctx context.Context, customerID uuid.UUID) ([]domain.SupportTicket, error) {
	return uc.Tickets.ListByCustomer(ctx, customerID)
}
