package usecase

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sparkkart/storefront/internal/domain"
	"github.com/sparkkart/storefront/internal/messaging"
)

type fakeSupportRepo struct {
	tickets map[uuid.UUID]*domain.SupportTicket
}

func newFakeSupportRepo() *fakeSupportRepo {
	return &fakeSupportRepo{tickets: map[uuid.UUID]*domain.SupportTicket{}}
}

func (r *fakeSupportRepo) Save(ctx context.Context, t *domain.SupportTicket) error {
	cp := *t
	r.tickets[t.ID] = &cp
	return nil
}

func (r *fakeSupportRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.SupportTicket, error) {
	t, ok := r.tickets[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeSupportRepo) List(ctx context.Context, f domain.TicketFilter) ([]domain.SupportTicket, int64, error) {
	out := []domain.SupportTicket{}
	for _, t := range r.tickets {
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSupportRepo) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]domain.SupportTicket, error) {
	out := []domain.SupportTicket{}
	for _, t := range r.tickets {
		if t.CustomerID != nil && *t.CustomerID == customerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func validTicket() *domain.SupportTicket {
	return &domain.SupportTicket{
		Name:    "Asha",
		Email:   "asha@example.com",
		Message: "Order arrived damaged",
		Subject: "Damaged delivery",
	}
}

func TestSupportCreate(t *testing.T) {
	uc := &SupportUC{Tickets: newFakeSupportRepo()}

	ticket := validTicket()
	require.NoError(t, uc.Create(context.Background(), ticket))
	assert.NotEqual(t, uuid.Nil, ticket.ID)
	assert.Equal(t, domain.TicketStatusOpen, ticket.Status)
	assert.Equal(t, domain.TicketPriorityMedium, ticket.Priority)

	high := validTicket()
	high.Priority = domain.TicketPriorityHigh
	require.NoError(t, uc.Create(context.Background(), high))
	assert.Equal(t, domain.TicketPriorityHigh, high.Priority)

	bad := validTicket()
	bad.Email = ""
	assert.Error(t, uc.Create(context.Background(), bad))
}

func TestSupportRespond(t *testing.T) {
	customerID := uuid.New()

	t.Run("linked customer gets an event", func(t *testing.T) {
		repo := newFakeSupportRepo()
		pub := &fakePublisher{}
		uc := &SupportUC{Tickets: repo, Publisher: pub}

		ticket := validTicket()
		ticket.CustomerID = &customerID
		require.NoError(t, uc.Create(context.Background(), ticket))

		got, err := uc.Respond(context.Background(), ticket.ID, "Replacement on the way", domain.TicketStatusResolved)
		require.NoError(t, err)
		assert.Equal(t, domain.TicketStatusResolved, got.Status)
		assert.Equal(t, "Replacement on the way", got.AdminResponse)
		require.NotNil(t, got.RespondedAt)

		require.Len(t, pub.events, 1)
		assert.Equal(t, messaging.TopicSupportReplied, pub.events[0].Topic)
		event := pub.events[0].Event.(domain.SupportRepliedEvent)
		assert.Equal(t, customerID, event.CustomerID)
	})

	t.Run("anonymous ticket publishes nothing", func(t *testing.T) {
		repo := newFakeSupportRepo()
		pub := &fakePublisher{}
		uc := &SupportUC{Tickets: repo, Publisher: pub}

		ticket := validTicket()
		require.NoError(t, uc.Create(context.Background(), ticket))

		_, err := uc.Respond(context.Background(), ticket.ID, "Noted", domain.TicketStatusClosed)
		require.NoError(t, err)
		assert.Empty(t, pub.events)
	})

	t.Run("rejects bad status and empty response", func(t *testing.T) {
		repo := newFakeSupportRepo()
		uc := &SupportUC{Tickets: repo}
		ticket := validTicket()
		require.NoError(t, uc.Create(context.Background(), ticket))

		_, err := uc.Respond(context.Background(), ticket.ID, "x", domain.TicketStatusOpen)
		assert.Error(t, err)

		_, err = uc.Respond(context.Background(), ticket.ID, "", domain.TicketStatusResolved)
		assert.Error(t, err)
	})
}
